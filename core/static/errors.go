package static

import "net/http"

type staticError struct {
	status int
	msg    string
}

func (e *staticError) Error() string   { return e.msg }
func (e *staticError) StatusCode() int { return e.status }

// ErrFileNotFound is returned for missing files, directories and paths that
// would leave the root. It answers 404 and never reveals which case applied.
var ErrFileNotFound error = &staticError{http.StatusNotFound, "file not found"}
