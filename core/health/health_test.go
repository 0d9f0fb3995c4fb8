package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/landing/core/health"
	"github.com/dmitrymomot/landing/core/response"
	"github.com/dmitrymomot/landing/core/router"
)

func newRouter(checks ...func(context.Context) error) http.Handler {
	r := router.New[*router.Context](router.WithErrorHandler(response.ErrorHandler[*router.Context]))
	r.Get("/live", health.Liveness[*router.Context])
	r.Get("/ping", health.NoContent[*router.Context])
	r.Get("/ready", health.Readiness[*router.Context](nil, checks...))
	return r
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	h := newRouter()

	w := serve(h, "/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())

	assert.Equal(t, http.StatusNoContent, serve(h, "/ping").Code)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("disk gone") }

	tests := []struct {
		name   string
		checks []func(context.Context) error
		status int
		body   string
	}{
		{"no checks", nil, http.StatusOK, "READY"},
		{"all pass", []func(context.Context) error{ok, ok}, http.StatusOK, "READY"},
		{"one fails", []func(context.Context) error{ok, failing}, http.StatusServiceUnavailable, "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(newRouter(tt.checks...), "/ready")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}
