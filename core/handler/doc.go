// Package handler provides the types shared by the router, middleware and
// response packages: a type-safe handler signature, a deferred Response renderer,
// error handlers and middleware.
//
// # Core Types
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//	type ErrorHandler[C Context] func(ctx C, err error)
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// Handlers do not write to the connection directly. They return a Response that
// the router executes after the middleware chain has unwound, which lets middleware
// decorate the output (headers, cookies, logging) without buffering it.
//
// # Context
//
// Context extends context.Context with access to the request, the response writer
// and route parameters:
//
//	func continentHandler(ctx handler.Context) handler.Response {
//		raw := ctx.RawParam("continent")   // as sent by the client
//		name := ctx.Param("continent")     // percent-decoded
//		return response.String(raw + " / " + name)
//	}
//
// # Middleware
//
//	func Timing[C handler.Context]() handler.Middleware[C] {
//		return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//			return func(ctx C) handler.Response {
//				start := time.Now()
//				resp := next(ctx)
//				return func(w http.ResponseWriter, r *http.Request) error {
//					w.Header().Set("X-Elapsed", time.Since(start).String())
//					return resp(w, r)
//				}
//			}
//		}
//	}
package handler
