package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// The router provides a default implementation; applications may embed it
// to add their own request-scoped helpers.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Param returns the percent-decoded value of a path or query parameter.
	Param(key string) string
	// RawParam returns the parameter exactly as it appeared in the request URL.
	RawParam(key string) string
	SetValue(key, val any)
}
