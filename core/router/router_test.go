package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/core/handler"
	"github.com/dmitrymomot/landing/core/router"
)

func text(s string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, err := w.Write([]byte(s))
		return err
	}
}

func serve(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterImplementsHTTPHandler(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	var _ http.Handler = r

	assert.Empty(t, r.Routes())
}

func TestRouterMatching(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/", func(ctx *router.Context) handler.Response { return text("root") })
	r.Get("/earth", func(ctx *router.Context) handler.Response { return text("earth") })
	r.Get("/earth/{continent}", func(ctx *router.Context) handler.Response {
		return text("raw=" + ctx.RawParam("continent") + " decoded=" + ctx.Param("continent"))
	})
	r.Get("/page/{path...}", func(ctx *router.Context) handler.Response {
		return text("page=" + ctx.Param("path"))
	})
	r.Post("/json", func(ctx *router.Context) handler.Response { return text("json") })
	r.Post("/{id:uint}", func(ctx *router.Context) handler.Response { return text("id=" + ctx.Param("id")) })
	r.Get("/auth?{username}&{password}", func(ctx *router.Context) handler.Response {
		return text(ctx.Param("username") + ":" + ctx.Param("password"))
	})

	tests := []struct {
		name   string
		method string
		target string
		status int
		body   string
	}{
		{"root", http.MethodGet, "/", http.StatusOK, "root"},
		{"literal", http.MethodGet, "/earth", http.StatusOK, "earth"},
		{"param raw and decoded", http.MethodGet, "/earth/South%20America", http.StatusOK, "raw=South%20America decoded=South America"},
		{"empty param does not match", http.MethodGet, "/earth/", http.StatusNotFound, ""},
		{"wildcard", http.MethodGet, "/page/docs/intro.html", http.StatusOK, "page=docs/intro.html"},
		{"wildcard empty", http.MethodGet, "/page/", http.StatusOK, "page="},
		{"wildcard none", http.MethodGet, "/page", http.StatusOK, "page="},
		{"wildcard dotdot", http.MethodGet, "/page/a/../../b", http.StatusOK, "page=b"},
		{"wildcard hidden", http.MethodGet, "/page/.env", http.StatusBadRequest, ""},
		{"literal beats param", http.MethodPost, "/json", http.StatusOK, "json"},
		{"typed param", http.MethodPost, "/7", http.StatusOK, "id=7"},
		{"typed param mismatch", http.MethodPost, "/abc", http.StatusBadRequest, ""},
		{"negative uint", http.MethodPost, "/-1", http.StatusBadRequest, ""},
		{"query", http.MethodGet, "/auth?username=ann%20lee&password=p%26w", http.StatusOK, "ann lee:p&w"},
		{"query missing", http.MethodGet, "/auth?username=ann", http.StatusBadRequest, ""},
		{"wrong method", http.MethodDelete, "/earth", http.StatusNotFound, ""},
		{"unknown path", http.MethodGet, "/mars", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(t, r, tt.method, tt.target)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRouterRegistrationPanics(t *testing.T) {
	t.Parallel()

	noop := func(ctx *router.Context) handler.Response { return text("") }

	tests := []struct {
		name    string
		pattern string
		err     error
	}{
		{"no leading slash", "earth", router.ErrInvalidPattern},
		{"empty segment", "/a//b", router.ErrInvalidPattern},
		{"mixed segment", "/file.{ext}", router.ErrInvalidPattern},
		{"wildcard not last", "/{path...}/tail", router.ErrWildcardPosition},
		{"duplicate key", "/{id}/{id}", router.ErrDuplicateParam},
		{"duplicate query key", "/{id}?{id}", router.ErrDuplicateParam},
		{"unknown type", "/{id:float}", router.ErrInvalidParamType},
		{"wildcard in query", "/a?{rest...}", router.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := router.New[*router.Context]()
			assertPanicsWith(t, tt.err, func() { r.Get(tt.pattern, noop) })
		})
	}

	t.Run("ambiguous routes", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/users/{id}", noop)
		assertPanicsWith(t, router.ErrAmbiguousRoute, func() { r.Get("/users/{name:string}", noop) })

		// Same shape on another method or with different literals is fine.
		assert.NotPanics(t, func() { r.Post("/users/{id}", noop) })
		assert.NotPanics(t, func() { r.Get("/teams/{id}", noop) })
		assert.NotPanics(t, func() { r.Get("/users/{id}?{expand}", noop) })
	})

	t.Run("invalid method", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		assertPanicsWith(t, router.ErrInvalidMethod, func() { r.Method("/", noop, "FETCH") })
		assertPanicsWith(t, router.ErrInvalidMethod, func() { r.Method("/", noop) })
	})

	t.Run("frozen after first request", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/", noop)
		serve(t, r, http.MethodGet, "/")
		assertPanicsWith(t, router.ErrRouterFrozen, func() { r.Get("/late", noop) })
	})
}

func assertPanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		p := recover()
		require.NotNil(t, p, "expected panic")
		err, ok := p.(error)
		require.True(t, ok, "panic value is not an error: %v", p)
		assert.True(t, errors.Is(err, target), "got %v, want %v", err, target)
	}()
	fn()
}

func TestRouterRoutes(t *testing.T) {
	t.Parallel()

	noop := func(ctx *router.Context) handler.Response { return text("") }

	r := router.New[*router.Context]()
	r.Get("/", noop)
	r.Method("/items/{id:uint}", noop, "get", "PUT", "GET")

	assert.Equal(t, []router.Route{
		{Method: http.MethodGet, Pattern: "/"},
		{Method: http.MethodGet, Pattern: "/items/{id:uint}"},
		{Method: http.MethodPut, Pattern: "/items/{id:uint}"},
	}, r.Routes())
}

func TestRouterMethodNotAllowed(t *testing.T) {
	t.Parallel()

	noop := func(ctx *router.Context) handler.Response { return text("") }

	r := router.New(router.WithMethodNotAllowed[*router.Context]())
	r.Get("/things", noop)
	r.Post("/things", noop)

	w := serve(t, r, http.MethodDelete, "/things")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, POST", w.Header().Get("Allow"))

	w = serve(t, r, http.MethodDelete, "/other")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterMiddleware(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) handler.Middleware[*router.Context] {
		return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	r := router.New(router.WithMiddleware(mw("global")))
	r.Use(mw("use"))
	r.Get("/plain", func(ctx *router.Context) handler.Response { return text("plain") })
	r.Group(func(g router.Router[*router.Context]) {
		g.Use(mw("group"))
		g.With(mw("with")).Get("/nested", func(ctx *router.Context) handler.Response { return text("nested") })
	})

	serve(t, r, http.MethodGet, "/nested")
	assert.Equal(t, []string{"global", "use", "group", "with"}, order)

	order = nil
	serve(t, r, http.MethodGet, "/plain")
	assert.Equal(t, []string{"global", "use"}, order)

	assert.Panics(t, func() { r.Use(mw("late")) })
}

func TestRouterErrorHandling(t *testing.T) {
	t.Parallel()

	t.Run("panic is recovered", func(t *testing.T) {
		t.Parallel()

		var got error
		r := router.New(router.WithErrorHandler(func(ctx *router.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusInternalServerError)
		}))
		r.Get("/boom", func(ctx *router.Context) handler.Response { panic("boom") })

		w := serve(t, r, http.MethodGet, "/boom")
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var pe router.PanicError
		require.True(t, errors.As(got, &pe))
		assert.Equal(t, "boom", pe.Value())
		assert.NotEmpty(t, pe.Stack())
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/nil", func(ctx *router.Context) handler.Response { return nil })

		w := serve(t, r, http.MethodGet, "/nil")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "nil response")
	})

	t.Run("render error uses status code", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/missing", func(ctx *router.Context) handler.Response {
			return func(w http.ResponseWriter, r *http.Request) error { return router.ErrNotFound }
		})

		w := serve(t, r, http.MethodGet, "/missing")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("custom context requires factory", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, router.ErrNoContextFactory, func() {
			router.New[*customContext]()
		})
	})
}

type customContext struct {
	*router.Context
}

func TestRouterCustomContext(t *testing.T) {
	t.Parallel()

	r := router.New(router.WithContextFactory(func(w http.ResponseWriter, r *http.Request, p router.Params) *customContext {
		return &customContext{Context: router.NewContext(w, r, p)}
	}))
	r.Get("/hello/{name}", func(ctx *customContext) handler.Response {
		return text("hello " + ctx.Param("name"))
	})

	w := serve(t, r, http.MethodGet, "/hello/gopher")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello gopher", w.Body.String())
}
