package server_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/landing/core/server"
)

var hello = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Hello, world!"))
})

func get(t *testing.T, addr string) string {
	t.Helper()
	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestServerLifecycle(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	require.NoError(t, srv.Listen())
	addr := srv.Addr()
	assert.NotEqual(t, "127.0.0.1:0", addr)
	assert.ErrorIs(t, srv.Listen(), server.ErrAlreadyListening)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, hello) }()

	assert.Equal(t, "Hello, world!", get(t, addr))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	_, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
	assert.Error(t, err)
	assert.ErrorIs(t, srv.Serve(context.Background(), hello), server.ErrServerClosed)
}

func TestServerListenFailure(t *testing.T) {
	t.Parallel()

	first := server.New("127.0.0.1:0")
	require.NoError(t, first.Listen())
	t.Cleanup(func() { _ = first.Stop() })

	second := server.New(first.Addr())
	assert.Error(t, second.Listen())

	assert.ErrorIs(t, server.New("").Listen(), server.ErrMissingAddress)
}

func TestServerRunWithErrgroup(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(gctx, hello))

	assert.Equal(t, "Hello, world!", get(t, srv.Addr()))

	cancel()
	assert.NoError(t, g.Wait())
}

func TestServerGracefulShutdown(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("done"))
	})

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(5*time.Second))
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, slow) }()

	result := make(chan string, 1)
	go func() {
		resp, err := http.Get("http://" + srv.Addr() + "/")
		if err != nil {
			result <- err.Error()
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		result <- string(body)
	}()

	<-started
	cancel()

	assert.Equal(t, "done", <-result)
	assert.NoError(t, <-done)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	srv, err := server.NewFromConfig(server.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ":8000", srv.Addr())

	_, err = server.NewFromConfig(server.Config{})
	assert.ErrorIs(t, err, server.ErrMissingAddress)

	_, err = server.NewFromConfig(server.Config{Addr: ":0", TLSCertFile: "missing.pem", TLSKeyFile: "missing.key"})
	assert.ErrorIs(t, err, server.ErrFailedLoadCert)
}
