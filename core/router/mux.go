package router

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/dmitrymomot/landing/core/handler"
)

var methods = []string{
	http.MethodConnect,
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
	http.MethodTrace,
}

// mux is the private implementation of Router interface.
type mux[C handler.Context] struct {
	table            *table[C]
	middlewares      []handler.Middleware[C]
	errorHandler     handler.ErrorHandler[C]
	newContext       func(http.ResponseWriter, *http.Request, Params) C
	logger           *slog.Logger
	methodNotAllowed bool
	frozen           *atomic.Bool
	hasRoutes        bool
	parent           *mux[C] // for inline groups
	inline           bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		table:        newTable[C](),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
		frozen:       &atomic.Bool{},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.newContext = func(w http.ResponseWriter, r *http.Request, params Params) C {
			return any(NewContext(w, r, params)).(C)
		}
	}

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.frozen.Store(true)

	ww := newResponseWriter(w)
	segs := splitPath(r.URL.EscapedPath())

	rt, params, err := m.table.find(r.Method, segs, r.URL.RawQuery)
	ctx := m.newContext(ww, r, params)

	// Recover from panics to prevent server crashes
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	if err != nil {
		if errors.Is(err, ErrNotFound) && m.methodNotAllowed {
			if allowed := m.table.allowed(segs); len(allowed) > 0 {
				ww.Header().Set("Allow", strings.Join(allowed, ", "))
				err = ErrMethodNotAllowed
			}
		}
		m.logger.Debug("dispatch failed", "method", r.Method, "path", r.URL.Path, "error", err)
		m.errorHandler(ctx, err)
		return
	}

	fn := rt.handler
	if len(m.middlewares) > 0 {
		fn = chain(m.middlewares, fn)
	}

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, r); err != nil {
		m.errorHandler(ctx, err)
	}
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodGet)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPost)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPut)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodDelete)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPatch)
}

// Head registers a handler for HEAD requests.
func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodHead)
}

// Options registers a handler for OPTIONS requests.
func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodOptions)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, methods...)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], ms ...string) {
	if len(ms) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(ms))
	normalized := make([]string, 0, len(ms))
	for _, method := range ms {
		method = strings.ToUpper(method)
		if !isMethod(method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		normalized = append(normalized, method)
	}
	m.handle(pattern, h, normalized...)
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates a new inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		inline:           true,
		parent:           m,
		table:            m.table,
		middlewares:      middlewares,
		errorHandler:     m.errorHandler,
		newContext:       m.newContext,
		logger:           m.logger,
		methodNotAllowed: m.methodNotAllowed,
		frozen:           m.frozen,
	}
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Routes returns all registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	return m.table.list()
}

// handle compiles the pattern and inserts it for every method.
// Inline routers bake their middleware chain in at registration time.
func (m *mux[C]) handle(raw string, fn handler.HandlerFunc[C], ms ...string) {
	if m.frozen.Load() {
		panic(fmt.Errorf("%w: '%s'", ErrRouterFrozen, raw))
	}

	p, err := parsePattern(raw)
	if err != nil {
		panic(err)
	}

	root := m
	if m.inline {
		var mws []handler.Middleware[C]
		for curr := m; curr != nil && curr.inline; curr = curr.parent {
			mws = append(slices.Clone(curr.middlewares), mws...)
			root = curr.parent
		}
		if len(mws) > 0 {
			fn = chain(mws, fn)
		}
	}
	root.hasRoutes = true

	for _, method := range ms {
		if err := m.table.insert(method, p, fn); err != nil {
			panic(err)
		}
	}
}

func isMethod(method string) bool {
	return slices.Contains(methods, method)
}
