package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// validateStartup checks that a file or directory exists and is accessible at startup.
// This is used to fail-fast during initialization rather than at runtime.
func validateStartup(path string, mustBeDir bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if mustBeDir {
				return fmt.Errorf("directory does not exist: %s", path)
			}
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if mustBeDir && !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	if !mustBeDir && info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	return nil
}
