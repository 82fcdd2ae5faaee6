package handlers

import (
	"errors"
	"net/http"

	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/logger"
	"github.com/pudu/heartgate/internal/storage"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz probes the storage backend with a cheap read. A clean miss still
// means the backend answered.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _, err := d.Backend.Get(r.Context(), "readyz-probe")
		ready := err == nil || errors.Is(err, storage.ErrNotFound)
		if !ready {
			d.Logger.Warn("readiness probe failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
