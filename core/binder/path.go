package binder

import (
	"fmt"
	"net/http"
)

// Path creates a path parameter binder function using the provided extractor.
// The extractor is called for each struct field to get its parameter value.
//
// Struct tags:
//   - `path:"name"`          - binds to path parameter "name"
//   - `path:"name,required"` - fails with ErrMissingField when "name" is empty
//   - `path:"-"`             - skips the field
//
// Example with the router context:
//
//	type ItemRequest struct {
//		ID uint64 `path:"id,required"`
//	}
//
//	extract := func(r *http.Request, key string) string { return ctx.Param(key) }
//	var req ItemRequest
//	if err := binder.Path(extract)(ctx.Request(), &req); err != nil {
//		return response.Error(err)
//	}
func Path(extractor func(r *http.Request, fieldName string) string) Binder {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv, err := structValue(v, ErrFailedToParsePath)
		if err != nil {
			return err
		}

		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)

			// Skip unexported fields that reflection cannot modify
			if !field.CanSet() {
				continue
			}

			tag := parseFieldTag(fieldType, "path")
			if tag.skip {
				continue
			}

			value := extractor(r, tag.name)
			if value == "" {
				if tag.required {
					return fmt.Errorf("%w: %w: %s", ErrFailedToParsePath, ErrMissingField, tag.name)
				}
				continue // Leave field as zero value when parameter is missing
			}

			if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, fieldType.Name, err)
			}
		}

		return nil
	}
}
