package response_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/core/handler"
	"github.com/dmitrymomot/landing/core/response"
)

func render(t *testing.T, resp handler.Response) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, resp(w, httptest.NewRequest(http.MethodGet, "/", nil)))
	return w
}

func TestTextResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		resp        handler.Response
		status      int
		body        string
		contentType string
	}{
		{"string", response.String("Hello, world!"), http.StatusOK, "Hello, world!", "text/plain; charset=utf-8"},
		{"string with status", response.StringWithStatus("nope", http.StatusTeapot), http.StatusTeapot, "nope", "text/plain; charset=utf-8"},
		{"string with zero status", response.StringWithStatus("ok", 0), http.StatusOK, "ok", "text/plain; charset=utf-8"},
		{"accepted", response.Accepted("Hello 7"), http.StatusAccepted, "Hello 7", "text/plain; charset=utf-8"},
		{"html", response.HTML("<p>hi</p>"), http.StatusOK, "<p>hi</p>", "text/html; charset=utf-8"},
		{"bytes", response.Bytes([]byte{1, 2}, "application/octet-stream"), http.StatusOK, "\x01\x02", "application/octet-stream"},
		{"no content", response.NoContent(), http.StatusNoContent, "", ""},
		{"status", response.Status(http.StatusCreated), http.StatusCreated, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := render(t, tt.resp)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
		})
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()

	w := render(t, response.JSON(map[string]int{"age": 30}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"age":30}`, w.Body.String())

	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	w = render(t, response.JSONWithStatus(nil, 0))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = render(t, response.JSONWithStatus(nil, http.StatusBadRequest))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "null\n", w.Body.String())
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	w := render(t, response.Redirect("/form"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/form", w.Header().Get("Location"))

	w = render(t, response.RedirectSeeOther("/done"))
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = render(t, response.RedirectWithStatus("/x", http.StatusOK))
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestWithCache(t *testing.T) {
	t.Parallel()

	w := render(t, response.WithCache(response.String("ok"), time.Hour))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Equal(t, "ok", w.Body.String())

	w = render(t, response.WithCache(response.String("ok"), 0))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	err := response.WithCache(response.Error(response.ErrNotFound), time.Hour)(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, response.ErrNotFound, err)
	assert.Empty(t, w.Header().Get("Cache-Control"))

	assert.Nil(t, response.WithCache(nil, time.Minute))
}

func TestErrorPropagates(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	err := response.Error(response.ErrUnauthorized)(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, response.ErrUnauthorized, err)
	assert.Zero(t, w.Body.Len())
}

func TestHTTPErrorCopies(t *testing.T) {
	t.Parallel()

	base := response.ErrBadRequest.WithDetails(map[string]any{"field": "age"})
	withCause := base.WithError(assert.AnError)

	assert.NotContains(t, base.Details, "cause")
	assert.Equal(t, assert.AnError.Error(), withCause.Details["cause"])
	assert.Equal(t, http.StatusBadRequest, withCause.StatusCode())

	var doc map[string]any
	raw, err := json.Marshal(response.ErrNotFound.WithMessage("no such page"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "not_found", doc["code"])
	assert.Equal(t, "no such page", doc["message"])
	assert.NotContains(t, doc, "status")
}

// testContext is a simple test implementation of handler.Context
type testContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

func (tc *testContext) Request() *http.Request              { return tc.r }
func (tc *testContext) ResponseWriter() http.ResponseWriter { return tc.w }
func (tc *testContext) Param(string) string                 { return "" }
func (tc *testContext) RawParam(string) string              { return "" }
func (tc *testContext) SetValue(key, val any)               {}

func newTestContext() (*testContext, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/resource", nil)
	return &testContext{Context: r.Context(), w: w, r: r}, w
}
