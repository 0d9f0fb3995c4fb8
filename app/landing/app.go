package landing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/landing/core/cookie"
	"github.com/dmitrymomot/landing/core/health"
	"github.com/dmitrymomot/landing/core/logger"
	"github.com/dmitrymomot/landing/core/response"
	"github.com/dmitrymomot/landing/core/router"
	"github.com/dmitrymomot/landing/core/server"
	"github.com/dmitrymomot/landing/core/static"
	"github.com/dmitrymomot/landing/middleware"
)

const formFile = "form.html"

// App is the landing service: a frozen route table plus the server that runs it.
type App struct {
	config  Config
	router  router.Router[*Context]
	server  *server.Server
	cookies *cookie.Manager
	files   *static.Root
	logger  *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger used by the router, the server and the request log.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithCookieManager replaces the manager built from Config.Cookie.
func WithCookieManager(m *cookie.Manager) Option {
	return func(a *App) {
		if m != nil {
			a.cookies = m
		}
	}
}

// New validates cfg and builds the route table for cfg.Checkpoint.
// It does not bind any socket; see Listen and Run.
func New(cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.cookies == nil {
		m, err := a.newCookieManager()
		if err != nil {
			return nil, err
		}
		a.cookies = m
	}

	files, err := static.NewRoot(cfg.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("landing: static root: %w", err)
	}
	a.files = files

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(a.logger))
	if err != nil {
		_ = files.Close()
		return nil, err
	}
	a.server = srv

	if err := a.buildRouter(); err != nil {
		_ = files.Close()
		return nil, err
	}

	return a, nil
}

// newCookieManager uses the configured secrets, or an ephemeral one outside
// production. Ephemeral secrets invalidate every cookie on restart.
func (a *App) newCookieManager() (*cookie.Manager, error) {
	cfg := a.config.Cookie
	if len(cfg.SecretList()) == 0 {
		if a.config.IsProduction() {
			return nil, ErrMissingSecret
		}
		secret, err := cookie.GenerateSecret()
		if err != nil {
			return nil, err
		}
		cfg.Secrets = secret
		a.logger.Warn("COOKIE_SECRETS is empty, using an ephemeral secret",
			logger.Component("cookie"))
	}
	return cookie.NewFromConfig(cfg)
}

func (a *App) buildRouter() error {
	limit, err := a.config.BodyLimitBytes()
	if err != nil {
		return err
	}

	// static.File panics on a missing file; report it as a startup error instead.
	if a.config.Checkpoint >= CheckpointBodies {
		f, _, err := a.files.Open(formFile)
		if err != nil {
			return fmt.Errorf("landing: form page: %w", err)
		}
		_ = f.Close()
	}

	errorHandler := response.ErrorHandler[*Context]
	if a.config.ErrorFormat == ErrorFormatJSON {
		errorHandler = response.JSONErrorHandler[*Context]
	}

	security := middleware.BalancedSecurity
	if !a.config.IsProduction() {
		security = middleware.DevelopmentSecurity
	}

	a.router = router.New[*Context](
		router.WithContextFactory[*Context](a.newContext),
		router.WithErrorHandler[*Context](response.LoggingErrorHandler[*Context](a.logger, errorHandler)),
		router.WithLogger[*Context](a.logger),
		router.WithMiddleware[*Context](
			middleware.RequestID[*Context](),
			middleware.LoggingWithConfig[*Context](middleware.LoggingConfig{
				Logger:    a.logger,
				LogLevel:  slog.LevelInfo,
				Component: a.config.AppName,
			}),
			middleware.SecurityHeadersWithConfig[*Context](security),
			middleware.BodyLimitWithSize[*Context](limit),
			flushCookies,
		),
	)

	a.router.Get("/health/live", health.Liveness[*Context])
	a.router.Get("/health/ready", health.Readiness[*Context](a.logger, a.files.Ping))

	for _, rt := range a.routes() {
		if rt.checkpoint > a.config.Checkpoint {
			continue
		}
		a.router.Method(rt.pattern, rt.build(), rt.method)
	}
	return nil
}

func (a *App) newContext(w http.ResponseWriter, r *http.Request, params router.Params) *Context {
	return &Context{
		Context: router.NewContext(w, r, params),
		cookies: a.cookies,
	}
}

// Handler returns the app as an http.Handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Routes lists the registered routes.
func (a *App) Routes() []router.Route {
	return a.router.Routes()
}

// Listen binds the configured address.
func (a *App) Listen() error {
	return a.server.Listen()
}

// Addr returns the bound address once listening.
func (a *App) Addr() string {
	return a.server.Addr()
}

// Run serves requests until ctx is cancelled and releases the static root afterwards.
func (a *App) Run(ctx context.Context) error {
	defer a.files.Close()

	a.logger.InfoContext(ctx, "starting landing",
		slog.Int("checkpoint", a.config.Checkpoint),
		logger.Count("routes", len(a.Routes())),
	)
	return a.server.Serve(ctx, a.router)
}

// Close releases resources held by an app that was never run.
func (a *App) Close() error {
	return a.files.Close()
}
