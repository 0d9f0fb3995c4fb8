package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/landing/core/handler"
)

const contentTypeJSON = "application/json; charset=utf-8"

// JSON encodes v as a 200 response.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus encodes v straight to the connection with the given status.
// A zero status means 200, or 204 when v is nil. 204 and 304 carry no body.
func JSONWithStatus(v any, status int) handler.Response {
	if status == 0 {
		status = http.StatusOK
		if v == nil {
			status = http.StatusNoContent
		}
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(status)
		if status == http.StatusNoContent || status == http.StatusNotModified {
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}
