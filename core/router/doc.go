// Package router provides an HTTP router with typed route parameters, trailing
// wildcards, declared query parameters and middleware support.
//
// # Patterns
//
//	r := router.New[*router.Context]()
//
//	r.Get("/earth", earth)                       // literal
//	r.Get("/earth/{continent}", continent)       // single non-empty segment
//	r.Post("/{id:uint}", accepted)               // typed: string (default), int, uint
//	r.Get("/page/{path...}", page)               // trailing wildcard, zero or more segments
//	r.Get("/auth?{username}&{password}", auth)   // required query parameters
//
// Patterns are compiled when registered. Malformed patterns and routes that
// would accept exactly the same requests as an existing route panic at startup,
// so the route table is known to be unambiguous before the first request.
// Overlapping routes are ordered by specificity: at each position a literal
// beats a parameter and a parameter beats a wildcard.
//
// The table is frozen by the first request it serves; registering afterwards
// panics. A frozen table is only read, so no locking happens on the hot path.
//
// # Parameters
//
// Param returns the percent-decoded value. RawParam returns the value exactly as
// sent, which is useful when the handler wants to echo the client's spelling.
// Typed parameters are checked before the handler runs: a request for /abc
// against /{id:uint} fails with ErrInvalidParam (400) and never reaches it.
//
// Wildcard values are normalized with CleanPath: ".." cannot climb above the
// captured root, hidden segments are rejected, and the result is always relative.
//
// # Errors
//
// Dispatch failures are passed to the error handler and carry a status code:
//
//	ErrNotFound          404
//	ErrMissingQuery      400
//	ErrInvalidParam      400
//	ErrMethodNotAllowed  405 (only with WithMethodNotAllowed)
//
// Panics in handlers are recovered and reported as PanicError.
package router
