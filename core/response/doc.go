// Package response provides handler.Response constructors and error handlers.
//
// Handlers return a Response instead of writing to the connection:
//
//	func hello(ctx *router.Context) handler.Response {
//		return response.String("Hello, world!")
//	}
//
//	func create(ctx *router.Context) handler.Response {
//		return response.Accepted("Hello " + ctx.Param("id"))
//	}
//
// # Errors
//
// Error(err) hands an error to the router's error handler. ErrorHandler writes
// plain text and JSONErrorHandler writes an HTTPError document. The status comes
// from HTTPError or from any wrapped error implementing StatusCode() int, and
// defaults to 500. Client errors carry the error message; server errors only
// carry the status text.
//
//	return response.Error(response.ErrUnauthorized.WithMessage("no user_id cookie"))
//
// LoggingErrorHandler wraps either handler and logs server errors with their cause.
//
// # Caching
//
// WithCache wraps a Response with Cache-Control. Failed responses never keep it.
//
//	return response.WithCache(root.Serve("hello.txt"), time.Hour)
package response
