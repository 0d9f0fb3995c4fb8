package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20 // 1 MB

// JSON creates a JSON binder function.
//
// Fields tagged `json:"name,required"` must be present and non-null.
// Unknown fields are ignored. Values that do not fit the target type,
// such as 999 for a uint8, are rejected.
//
// Example:
//
//	type Person struct {
//		Name string `json:"name,required"`
//		Age  uint8  `json:"age,required"`
//	}
//
//	var p Person
//	if err := binder.JSON()(r, &p); err != nil {
//		return response.Error(err)
//	}
func JSON() Binder {
	return func(r *http.Request, v any) error {
		// Fail fast if request context is already cancelled to avoid processing doomed requests
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: missing content-type header, expected application/json", ErrMissingContentType)
		}

		mediaType := mediaTypeOf(contentType)
		if mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
		}

		rv, err := structValue(v, ErrFailedToParseJSON)
		if err != nil {
			return err
		}

		// Read entire body with +1 byte to detect oversized requests efficiently
		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, DefaultMaxJSONSize)
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		// Reject trailing data after the first JSON value
		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		if err := checkRequiredJSON(rv.Type(), body); err != nil {
			return err
		}

		sanitizeReflectValue(rv)
		return nil
	}
}

// checkRequiredJSON verifies that every `json:",required"` field is present
// in the object and not null. Keys match case-insensitively, as in encoding/json.
func checkRequiredJSON(rt reflect.Type, body []byte) error {
	var required []string
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := parseFieldTag(f, "json")
		if tag.required && !tag.skip {
			required = append(required, tag.name)
		}
	}
	if len(required) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	for _, name := range required {
		if !presentJSON(fields, name) {
			return fmt.Errorf("%w: %w: %s", ErrFailedToParseJSON, ErrMissingField, name)
		}
	}
	return nil
}

func presentJSON(fields map[string]json.RawMessage, name string) bool {
	for key, raw := range fields {
		if strings.EqualFold(key, name) {
			return !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
		}
	}
	return false
}

// sanitizeReflectValue recursively sanitizes every settable string.
func sanitizeReflectValue(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(sanitizeStringValue(rv.String()))
		}

	case reflect.Struct:
		for i := range rv.NumField() {
			if field := rv.Field(i); field.CanSet() {
				sanitizeReflectValue(field)
			}
		}

	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			sanitizeReflectValue(rv.Index(i))
		}

	case reflect.Pointer:
		if !rv.IsNil() {
			sanitizeReflectValue(rv.Elem())
		}
	}
}
