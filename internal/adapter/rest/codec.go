package rest

import "encoding/json"

// Codec converts request and response bodies to and from the wire encoding.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec is the default wire encoding.
type JSONCodec struct{}

// ContentType implements Codec
func (JSONCodec) ContentType() string { return "application/json" }

// Marshal implements Codec
func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal implements Codec
func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
