// Package server runs an http.Handler with an explicit three-step lifecycle.
//
//	srv := server.New("127.0.0.1:0", server.WithLogger(log)) // no I/O
//	if err := srv.Listen(); err != nil {                    // bind, may fail
//		return err
//	}
//	log.Info("listening", "addr", srv.Addr())
//	return srv.Serve(ctx, handler)                          // until ctx is cancelled
//
// Serve calls Listen itself when it has not been called. When the context is
// cancelled the server stops accepting connections and waits for in-flight
// requests up to the shutdown timeout.
//
// Run adapts Serve to errgroup:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// # Configuration
//
// Config is loaded from the environment (SERVER_ADDR, SERVER_READ_TIMEOUT,
// SERVER_READ_HEADER_TIMEOUT, SERVER_WRITE_TIMEOUT, SERVER_IDLE_TIMEOUT,
// SERVER_SHUTDOWN_TIMEOUT, SERVER_MAX_HEADER_BYTES, SERVER_TLS_CERT_FILE,
// SERVER_TLS_KEY_FILE) and turned into a Server by NewFromConfig.
package server
