package static

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/landing/core/handler"
)

// Root serves files from a single directory. Every lookup goes through os.Root,
// so neither ".." nor a symlink can reach outside the directory.
// Root is safe for concurrent use.
type Root struct {
	dir  string
	root *os.Root
}

// NewRoot opens dir as a static root. It fails if dir is missing or not a directory.
func NewRoot(dir string) (*Root, error) {
	dir = filepath.Clean(dir)
	if err := validateStartup(dir, true); err != nil {
		return nil, fmt.Errorf("static root: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("static root: %w", err)
	}
	return &Root{dir: dir, root: root}, nil
}

// Dir returns the directory the root was opened on.
func (sr *Root) Dir() string {
	return sr.dir
}

// Ping reports whether the root directory is still readable. It fits
// readiness probes.
func (sr *Root) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := sr.root.Stat("."); err != nil {
		return fmt.Errorf("static root %s: %w", sr.dir, err)
	}
	return nil
}

// Close releases the directory handle.
func (sr *Root) Close() error {
	return sr.root.Close()
}

// Open opens a regular file by its slash-separated path relative to the root.
// Missing files, directories and escaping paths all yield ErrFileNotFound.
func (sr *Root) Open(rel string) (*os.File, fs.FileInfo, error) {
	if rel == "" {
		return nil, nil, ErrFileNotFound
	}

	f, err := sr.root.Open(filepath.FromSlash(rel))
	if err != nil {
		return nil, nil, ErrFileNotFound
	}

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, nil, ErrFileNotFound
	}
	return f, info, nil
}

// Serve returns a response that streams the file at rel. Content type, ranges
// and conditional requests are handled by http.ServeContent.
func (sr *Root) Serve(rel string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		f, info, err := sr.Open(rel)
		if err != nil {
			return err
		}
		defer f.Close()

		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		return nil
	}
}

// Dir creates a handler that serves the file named by a route parameter,
// typically a trailing wildcard:
//
//	r.Get("/secured/{path...}", static.Dir[*router.Context](root, "path"))
func Dir[C handler.Context](sr *Root, param string) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		return sr.Serve(ctx.Param(param))
	}
}

// IsNotFound reports whether err means the file could not be served.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}
