package landing

import (
	"net/http"

	"github.com/dmitrymomot/landing/core/binder"
	"github.com/dmitrymomot/landing/core/cookie"
	"github.com/dmitrymomot/landing/core/handler"
	"github.com/dmitrymomot/landing/core/router"
)

// Context is the request context handed to every landing handler.
type Context struct {
	*router.Context

	cookies *cookie.Manager
	jar     *cookie.Jar
}

// Cookies returns the request's cookie jar. Changes are written to the
// response by the app's cookie middleware.
func (c *Context) Cookies() *cookie.Jar {
	if c.jar == nil {
		c.jar = c.cookies.Jar(c.Request())
	}
	return c.jar
}

// BindForm decodes an urlencoded or multipart body into v.
func (c *Context) BindForm(v any) error {
	return binder.Form()(c.Request(), v)
}

// BindJSON decodes a JSON body into v.
func (c *Context) BindJSON(v any) error {
	return binder.JSON()(c.Request(), v)
}

// BindQuery decodes the query string into v.
func (c *Context) BindQuery(v any) error {
	return binder.Query()(c.Request(), v)
}

// BindPath decodes route parameters into v.
func (c *Context) BindPath(v any) error {
	return binder.Path(func(_ *http.Request, key string) string {
		return c.Param(key)
	})(c.Request(), v)
}

// flushCookies writes queued cookie changes before the response renders.
func flushCookies(next handler.HandlerFunc[*Context]) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		resp := next(ctx)
		if resp == nil || ctx.jar == nil {
			return resp
		}
		return func(w http.ResponseWriter, r *http.Request) error {
			ctx.jar.Flush(w)
			return resp(w, r)
		}
	}
}
