package errors

import (
	"errors"
	"fmt"
)

// HTTPError represents a failed HTTP exchange: a non-success status, a
// transport-level failure (connection refused, DNS), or an undecodable
// response body. The client does not distinguish these further.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int    // 0 when no response was received
	Body       string // raw response text, where available
	Err        error
}

// NewHTTPError creates an HTTP error for a non-success status.
func NewHTTPError(method, url string, statusCode int, body string) *HTTPError {
	return &HTTPError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       body,
	}
}

// WrapHTTPError creates an HTTP error around a lower-level failure.
// statusCode is 0 when the failure happened before a response arrived.
func WrapHTTPError(method, url string, statusCode int, err error) *HTTPError {
	return &HTTPError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
}

// Unwrap returns the wrapped error
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status carried by err when an HTTPError is in
// its chain. The second return is false otherwise.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// FileError represents a filesystem-level failure from the file store.
type FileError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	return &FileError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the wrapped error
func (e *FileError) Unwrap() error {
	return e.Err
}
