package server

import "errors"

var (
	// ErrMissingAddress is returned when server address is not provided.
	ErrMissingAddress = errors.New("server address is required")

	// ErrAlreadyListening is returned by Listen when the endpoint is already bound.
	ErrAlreadyListening = errors.New("server is already listening")

	// ErrServerAlreadyRunning is returned by Serve when the server is already serving.
	ErrServerAlreadyRunning = errors.New("server is already running")

	// ErrServerClosed is returned by Serve after the server has been shut down.
	ErrServerClosed = errors.New("server is closed")

	// ErrFailedLoadCert indicates the TLS certificate or key could not be loaded.
	ErrFailedLoadCert = errors.New("failed to load certificate")
)
