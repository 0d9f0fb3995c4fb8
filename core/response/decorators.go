package response

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/landing/core/handler"
)

// WithCache sets Cache-Control on a successful response. A positive maxAge lets
// browsers and proxies keep the response for that long; zero or less forbids
// storing it at all, which suits responses that depend on cookies.
//
// The header is dropped again when the wrapped response fails, so error pages
// are never cached.
func WithCache(resp handler.Response, maxAge time.Duration) handler.Response {
	if resp == nil {
		return nil
	}

	value := "no-store"
	if maxAge > 0 {
		value = "public, max-age=" + strconv.FormatInt(int64(maxAge/time.Second), 10)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Cache-Control", value)
		if err := resp(w, r); err != nil {
			w.Header().Del("Cache-Control")
			return err
		}
		return nil
	}
}
