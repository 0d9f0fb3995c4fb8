package binder

import "net/http"

// bindError is a binding failure that carries its HTTP status.
type bindError struct {
	status int
	msg    string
}

func (e *bindError) Error() string   { return e.msg }
func (e *bindError) StatusCode() int { return e.status }

// Error variables define common binding failures that can occur during request processing.
// All of them answer 400 except ErrUnsupportedMediaType, which answers 415.
var (
	// ErrUnsupportedMediaType indicates the Content-Type header specifies a media type
	// that the binder doesn't support (e.g., text/plain for JSON binder).
	ErrUnsupportedMediaType error = &bindError{http.StatusUnsupportedMediaType, "unsupported media type"}

	// ErrFailedToParseJSON indicates the request body contains invalid JSON
	// or doesn't match the target struct schema.
	ErrFailedToParseJSON error = &bindError{http.StatusBadRequest, "failed to parse JSON request body"}

	// ErrFailedToParseForm indicates form data parsing failed due to malformed
	// multipart boundaries, invalid URL-encoded data or values of the wrong type.
	ErrFailedToParseForm error = &bindError{http.StatusBadRequest, "failed to parse form data"}

	// ErrFailedToParseQuery indicates query parameter parsing failed,
	// typically due to type conversion errors.
	ErrFailedToParseQuery error = &bindError{http.StatusBadRequest, "failed to parse query parameters"}

	// ErrFailedToParsePath indicates path parameter extraction or conversion failed.
	ErrFailedToParsePath error = &bindError{http.StatusBadRequest, "failed to parse path parameters"}

	// ErrMissingContentType indicates the request lacks a Content-Type header
	// when one is required for parsing.
	ErrMissingContentType error = &bindError{http.StatusBadRequest, "missing content type"}

	// ErrMissingField indicates a field tagged as required was absent.
	ErrMissingField error = &bindError{http.StatusBadRequest, "missing required field"}
)
