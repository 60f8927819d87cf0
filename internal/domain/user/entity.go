package user

import (
	"encoding/json"
	"strconv"
)

// Record represents a user payload exchanged with the remote API. The remote
// service owns the schema; this client passes keys and values through
// untouched.
type Record map[string]any

// ID extracts the server-assigned identifier from the record and renders it
// as a path segment. Depending on how the response was decoded the id may
// arrive as a JSON number, a json.Number, an integer, or a string. The second
// return is false when no usable id is present.
func (r Record) ID() (string, bool) {
	switch id := r["id"].(type) {
	case string:
		return id, id != ""
	case json.Number:
		return id.String(), true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	default:
		return "", false
	}
}
