package health

import (
	"github.com/dmitrymomot/landing/core/handler"
	"github.com/dmitrymomot/landing/core/response"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent returns HTTP 204 without body.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}
