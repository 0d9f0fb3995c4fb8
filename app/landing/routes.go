package landing

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/dmitrymomot/landing/core/handler"
	"github.com/dmitrymomot/landing/core/response"
	"github.com/dmitrymomot/landing/core/static"
)

// route is one row of the route table. Rows with a checkpoint above
// Config.Checkpoint are not registered, and their build is never called, so a
// handler that checks files on construction only runs when it is mounted.
type route struct {
	checkpoint int
	method     string
	pattern    string
	build      func() handler.HandlerFunc[*Context]
}

func (a *App) routes() []route {
	maxAge := a.config.StaticMaxAge

	return []route{
		{CheckpointBasics, http.MethodGet, "/", fixed(hello)},
		{CheckpointBasics, http.MethodGet, "/earth", fixed(earth)},
		{CheckpointBasics, http.MethodGet, "/earth/{continent}", fixed(earthContinent)},
		{CheckpointBasics, http.MethodGet, "/page/{path...}", fixed(page)},
		{CheckpointBasics, http.MethodGet, "/secured/{path...}", func() handler.HandlerFunc[*Context] {
			return cached(static.Dir[*Context](a.files, "path"), maxAge)
		}},

		{CheckpointCookies, http.MethodGet, "/resource/{id}", fixed(cached(setUserID, 0))},
		{CheckpointCookies, http.MethodGet, "/resource", fixed(cached(getUserID, 0))},

		{CheckpointBodies, http.MethodGet, "/form", func() handler.HandlerFunc[*Context] {
			return cached(static.File[*Context](filepath.Join(a.files.Dir(), formFile)), maxAge)
		}},
		{CheckpointBodies, http.MethodPost, "/doSomething", fixed(doSomething)},
		{CheckpointBodies, http.MethodPost, "/json", fixed(echoJSON)},

		{CheckpointQuery, http.MethodGet, "/auth?{username}&{password}", fixed(auth)},
		{CheckpointQuery, http.MethodPost, "/{id:uint}", fixed(accept)},
	}
}

func fixed(h handler.HandlerFunc[*Context]) func() handler.HandlerFunc[*Context] {
	return func() handler.HandlerFunc[*Context] { return h }
}

// cached sets Cache-Control on the responses of h. A zero maxAge marks them
// no-store.
func cached(h handler.HandlerFunc[*Context], maxAge time.Duration) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.WithCache(h(ctx), maxAge)
	}
}
