package response_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/core/response"
)

// customStatusError is a test error that implements StatusCode() int
type customStatusError struct {
	message string
	status  int
}

func (e customStatusError) Error() string   { return e.message }
func (e customStatusError) StatusCode() int { return e.status }

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"http error", response.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"http error with message", response.ErrUnauthorized.WithMessage("user_id cookie missing"), http.StatusUnauthorized, "user_id cookie missing"},
		{"status code error", customStatusError{"bad age", http.StatusBadRequest}, http.StatusBadRequest, "bad age"},
		{"wrapped status code error", fmt.Errorf("bind: %w", customStatusError{"bad age", http.StatusBadRequest}), http.StatusBadRequest, "bad age"},
		{"decoder detail stays out of the body", fmt.Errorf("%w: json: cannot unmarshal number 999 into Go struct field person.age of type uint8", customStatusError{"failed to parse JSON request body", http.StatusBadRequest}), http.StatusBadRequest, "failed to parse JSON request body"},
		{"unmapped status", customStatusError{"slow down", http.StatusTooManyRequests}, http.StatusTooManyRequests, "slow down"},
		{"plain error hides cause", errors.New("db password is hunter2"), http.StatusInternalServerError, "Internal Server Error"},
		{"5xx status code error hides cause", customStatusError{"disk on fire", http.StatusServiceUnavailable}, http.StatusServiceUnavailable, "Service Unavailable"},
		{"5xx http error hides message", response.NewHTTPError("secret detail"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, w := newTestContext()
			response.ErrorHandler(ctx, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
			assert.Equal(t, tt.status, response.StatusOf(tt.err))
		})
	}
}

func TestJSONErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("client error", func(t *testing.T) {
		t.Parallel()

		ctx, w := newTestContext()
		response.JSONErrorHandler(ctx, response.ErrUnprocessableEntity.WithDetails(map[string]any{"field": "age"}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "unprocessable_entity", doc["code"])
		assert.Equal(t, map[string]any{"field": "age"}, doc["details"])
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		ctx, w := newTestContext()
		response.JSONErrorHandler(ctx, errors.New("connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestLoggingErrorHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	h := response.LoggingErrorHandler[*testContext](log, nil)

	ctx, w := newTestContext()
	h(ctx, errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "status_code=500")

	buf.Reset()
	ctx, w = newTestContext()
	h(ctx, response.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, buf.String())
}
