// Package binder binds HTTP request data to Go structs: JSON bodies, URL-encoded
// and multipart forms, query strings and route parameters.
//
// Every binder has the same shape:
//
//	type Binder func(r *http.Request, v any) error
//
// # Struct Tags
//
// Each source reads its own tag: `json`, `form`, `file`, `query` or `path`.
// The `required` option makes an absent value an error:
//
//	type Person struct {
//		Name string `json:"name,required" form:"name,required"`
//		Age  uint8  `json:"age,required" form:"age,required"`
//	}
//
// A required JSON field must be present and non-null. Unknown fields are ignored
// by every binder.
//
// # Type Conversion
//
// Form, query and path values are converted with strconv using the bit size of
// the target, so "999" does not fit a uint8 and fails to bind. Slices accept
// repeated keys as well as comma-separated values, and pointers mark optional
// fields.
//
// # Sanitization
//
// Bound strings have NUL bytes, line breaks and other control characters removed
// and are normalized to Unicode NFC. Uploaded file names are reduced to their
// base name.
//
// # Errors
//
// All errors wrap one of the package sentinels and implement StatusCode():
//
//	ErrUnsupportedMediaType  415
//	ErrMissingContentType    400
//	ErrFailedToParseJSON     400
//	ErrFailedToParseForm     400
//	ErrFailedToParseQuery    400
//	ErrFailedToParsePath     400
//	ErrMissingField          400, wrapped together with the source error
//
//	if errors.Is(err, binder.ErrMissingField) {
//		// a required field was absent
//	}
package binder
