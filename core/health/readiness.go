package health

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/landing/core/handler"
	"github.com/dmitrymomot/landing/core/logger"
	"github.com/dmitrymomot/landing/core/response"
)

// CheckTimeout bounds a single readiness probe.
const CheckTimeout = 5 * time.Second

// Readiness verifies that all dependencies are available.
// Returns "READY" if every check passes, 503 Service Unavailable otherwise.
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		checkCtx, cancel := context.WithTimeout(ctx, CheckTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(checkCtx)
		for _, check := range checks {
			g.Go(func() error { return check(gctx) })
		}

		if err := g.Wait(); err != nil {
			if log != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Component("health"), logger.Error(err))
			}
			return response.Error(response.ErrServiceUnavailable)
		}

		return response.String("READY")
	}
}
