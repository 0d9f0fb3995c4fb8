package server

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/landing/core/logger"
)

// Server wraps http.Server with an explicit lifecycle: New only stores
// configuration, Listen binds the endpoint, Serve handles requests until
// its context is cancelled and then shuts down gracefully.
// Safe for concurrent use.
type Server struct {
	mu                sync.Mutex
	addr              string
	listener          net.Listener
	server            *http.Server
	logger            *slog.Logger
	shutdown          time.Duration
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	maxHeaderBytes    int
	tlsConfig         *tls.Config
	running           bool
	closed            bool
}

// New creates a new Server with the given address and options.
// It performs no I/O. Defaults to a 30-second graceful shutdown timeout and a no-op logger.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:              addr,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:          DefaultShutdownTimeout,
		readTimeout:       DefaultReadTimeout,
		readHeaderTimeout: DefaultReadHeaderTimeout,
		writeTimeout:      DefaultWriteTimeout,
		idleTimeout:       DefaultIdleTimeout,
		maxHeaderBytes:    DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Listen binds the configured address. Use "127.0.0.1:0" to pick a free port
// and Addr to learn which one was chosen.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenLocked()
}

func (s *Server) listenLocked() error {
	if s.closed {
		return ErrServerClosed
	}
	if s.listener != nil {
		return ErrAlreadyListening
	}
	if s.addr == "" {
		return ErrMissingAddress
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address once listening, and the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Serve handles requests with h until ctx is cancelled, then shuts down gracefully
// within the shutdown timeout. It calls Listen first if needed. A cancelled
// context is a clean exit and returns nil.
func (s *Server) Serve(ctx context.Context, h http.Handler) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServerClosed
	}
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	if s.listener == nil {
		if err := s.listenLocked(); err != nil {
			s.mu.Unlock()
			return err
		}
	}

	s.server = &http.Server{
		Handler:           h,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readHeaderTimeout,
		WriteTimeout:      s.writeTimeout,
		IdleTimeout:       s.idleTimeout,
		MaxHeaderBytes:    s.maxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.running = true
	srv, ln := s.server, s.listener
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "server started", logger.Component("server"), logger.Address(ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.markStopped()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		err := s.Stop()
		<-errCh
		return err
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
func (s *Server) Run(ctx context.Context, h http.Handler) func() error {
	return func() error {
		return s.Serve(ctx, h)
	}
}

// Stop gracefully shuts down the server using the configured timeout.
// Returns immediately if the server is not running.
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.server
	running := s.running
	s.mu.Unlock()

	if !running || srv == nil {
		s.markStopped()
		return nil
	}

	s.logger.Info("shutting down server", logger.Component("server"), logger.Duration(s.shutdown))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.markStopped()
	if err != nil {
		s.logger.Error("server shutdown error", logger.Component("server"), logger.Error(err))
		return err
	}

	s.logger.Info("server stopped", logger.Component("server"))
	return nil
}

func (s *Server) markStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.closed = true
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

// Run is a convenience function that creates and runs a server with default settings.
func Run(ctx context.Context, addr string, h http.Handler) error {
	return New(addr).Serve(ctx, h)
}
