package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/landing/app/landing"
	"github.com/dmitrymomot/landing/core/config"
	"github.com/dmitrymomot/landing/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg landing.Config
	config.MustLoad(&cfg) // panic on error

	log, err := landing.NewLogger(cfg)
	if err != nil {
		log = logger.New(logger.WithDevelopment(cfg.AppName))
		log.Warn("Invalid LOG_LEVEL, using defaults", logger.Error(err))
	}

	app, err := landing.New(cfg, landing.WithLogger(log))
	if err != nil {
		log.Error("Failed to create application", logger.Error(err))
		os.Exit(1)
	}

	if err := app.Listen(); err != nil {
		log.Error("Failed to bind address", logger.Component("server"), logger.Address(cfg.Server.Addr), logger.Error(err))
		_ = app.Close()
		os.Exit(1)
	}
	log.Info("Listening", logger.Component("server"), logger.Address(app.Addr()))

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return app.Run(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
