package static

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/landing/core/handler"
)

// File creates a handler that always serves the one file at filePath.
// The file is checked once at startup and File panics if it is missing or a
// directory. A file removed later answers ErrFileNotFound.
func File[C handler.Context](filePath string) handler.HandlerFunc[C] {
	cleanPath := filepath.Clean(filePath)
	if err := validateStartup(cleanPath, false); err != nil {
		panic("static.File: " + err.Error())
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			f, err := os.Open(cleanPath)
			if err != nil {
				return ErrFileNotFound
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil || !info.Mode().IsRegular() {
				return ErrFileNotFound
			}

			http.ServeContent(w, r, info.Name(), info.ModTime(), f)
			return nil
		}
	}
}
