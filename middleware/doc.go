// Package middleware provides generic HTTP middleware for handler.Context based routers.
//
// Every middleware follows the same shape: a default constructor, a WithConfig
// constructor taking a configuration struct with an optional Skip func, and
// helpers for reading values the middleware stored in the request context.
//
//	r := router.New[*app.Context](router.WithContextFactory(app.NewContext))
//	r.Use(
//		middleware.RequestID[*app.Context](),
//		middleware.LoggingWithLogger[*app.Context](log),
//		middleware.SecurityHeaders[*app.Context](),
//		middleware.BodyLimitWithSize[*app.Context](1*units.MiB),
//	)
//
// # Request ID
//
// RequestID assigns each request an identifier (UUID v4 by default), stores it in
// the context and echoes it in the X-Request-ID response header. With UseExisting
// a printable client-supplied ID of at most 128 bytes is reused.
//
//	id, ok := middleware.GetRequestID(ctx)
//
// # Logging
//
// Logging writes one structured line per request after its response has been
// rendered: method, path, status, bytes written, duration, client address and the
// request ID when present. Server errors are logged at error level, client
// errors and slow requests at warning level.
//
// # Body Limit
//
// BodyLimit rejects requests whose Content-Length exceeds the limit with 413 and
// wraps the body so that reading past the limit fails with ErrBodyTooLarge.
// Limits can differ per media type:
//
//	middleware.BodyLimitWithConfig[*app.Context](middleware.BodyLimitConfig{
//		MaxSize:          1 * units.MiB,
//		ContentTypeLimit: map[string]int64{"multipart/form-data": 8 * units.MiB},
//	})
//
// # Security Headers
//
// SecurityHeaders sets nosniff, frame, referrer, CSP and HSTS headers.
// DevelopmentSecurity drops HSTS and the stricter policies.
package middleware
