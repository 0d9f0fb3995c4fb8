package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/landing/core/handler"
	"github.com/dmitrymomot/landing/core/logger"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// convertToHTTPError converts any error to an HTTPError.
// A client error answers with the message of the error that carries the status,
// not the chain wrapped around it, so decoder details stay out of the body.
// Server errors never expose a message.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= http.StatusInternalServerError {
			return httpErr.WithMessage(http.StatusText(httpErr.Status)).WithDetails(nil)
		}
		return httpErr
	}

	status := http.StatusInternalServerError
	msg := err.Error()
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
		if e, ok := sc.(error); ok {
			msg = e.Error()
		}
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = HTTPError{Status: status, Code: "error", Message: http.StatusText(status)}
		if baseErr.Message == "" || status < http.StatusBadRequest {
			baseErr = ErrInternalServerError
		}
	}

	if baseErr.Status >= http.StatusInternalServerError {
		return baseErr
	}
	return baseErr.WithMessage(msg)
}

// ErrorHandler is the default error handler that returns plain text errors.
// It checks for HTTPError type first, then statusCode interface, and defaults to 500.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler returns errors as JSON responses.
// It checks for HTTPError type first (to get structured data), then statusCode interface, and defaults to 500.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}

// StatusOf returns the HTTP status an error handler in this package would answer with.
func StatusOf(err error) int {
	return convertToHTTPError(err).Status
}

// LoggingErrorHandler logs every error before delegating to next.
// Server errors are logged at error level with the full cause, client errors at debug.
func LoggingErrorHandler[C handler.Context](log *slog.Logger, next handler.ErrorHandler[C]) handler.ErrorHandler[C] {
	if next == nil {
		next = ErrorHandler[C]
	}
	return func(ctx C, err error) {
		r := ctx.Request()
		status := StatusOf(err)
		attrs := []any{
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(status),
			logger.Error(err),
		}

		if status >= http.StatusInternalServerError {
			log.ErrorContext(ctx, "request failed", attrs...)
		} else {
			log.DebugContext(ctx, "request rejected", attrs...)
		}
		next(ctx, err)
	}
}
