package middleware

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/docker/go-units"

	"github.com/dmitrymomot/landing/core/handler"
	"github.com/dmitrymomot/landing/core/response"
)

// ErrBodyTooLarge is returned by reads past the configured body limit.
var ErrBodyTooLarge = errors.New("request body too large")

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// MaxSize is the maximum allowed size in bytes (default: 4MB)
	MaxSize int64

	// ContentTypeLimit allows setting different limits per media type
	// Example: {"application/json": 1MB, "multipart/form-data": 10MB}
	ContentTypeLimit map[string]int64

	// ErrorHandler builds the response for requests whose declared length exceeds the limit
	ErrorHandler func(ctx handler.Context, contentLength int64, maxSize int64) handler.Response
}

// BodyLimit creates a body limit middleware with default configuration (4MB limit).
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize creates a body limit middleware with a specified size limit.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{
		MaxSize: maxSize,
	})
}

// BodyLimitWithConfig restricts the size of incoming request bodies.
// A declared Content-Length over the limit is rejected before the handler runs;
// bodies without one fail with ErrBodyTooLarge once the limit is read.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 * units.MiB
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, contentLength int64, maxSize int64) handler.Response {
			return response.Error(response.ErrRequestEntityTooLarge.
				WithMessage(fmt.Sprintf("Request body too large. Size: %s, Maximum allowed: %s",
					units.BytesSize(float64(contentLength)), units.BytesSize(float64(maxSize)))).
				WithDetails(map[string]any{"size": contentLength, "limit": maxSize}))
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()

			maxSize := cfg.MaxSize
			if cfg.ContentTypeLimit != nil {
				if mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type")); err == nil {
					if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
						maxSize = limit
					}
				}
			}

			if req.ContentLength > maxSize {
				return cfg.ErrorHandler(ctx, req.ContentLength, maxSize)
			}

			if req.Body != nil && req.Body != http.NoBody {
				req.Body = &limitedReader{reader: req.Body, limit: maxSize}
			}

			return next(ctx)
		}
	}
}

// limitedReader wraps an io.ReadCloser to enforce a size limit
type limitedReader struct {
	reader io.ReadCloser
	limit  int64
	read   int64
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read > lr.limit {
		return 0, ErrBodyTooLarge
	}

	// One extra byte distinguishes a body of exactly limit bytes from a longer one.
	if remaining := lr.limit - lr.read + 1; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := lr.reader.Read(p)
	lr.read += int64(n)
	if lr.read > lr.limit {
		return n - int(lr.read-lr.limit), ErrBodyTooLarge
	}
	return n, err
}

func (lr *limitedReader) Close() error {
	return lr.reader.Close()
}
