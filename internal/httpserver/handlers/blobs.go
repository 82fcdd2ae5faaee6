package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/logger"
	"github.com/pudu/heartgate/internal/storage"
)

// Blobs serves stored bytes straight from the backend. Works identically for
// every backend variant since everything goes through the Backend contract.
func Blobs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")

		// Traversal guard: no dot-dot, no hidden/relative segments.
		for _, segment := range strings.Split(key, "/") {
			if strings.Contains(segment, "..") || strings.HasPrefix(segment, ".") {
				d.Logger.Warn("blob path rejected",
					logger.String("key", key),
					logger.String("remote_ip", r.RemoteAddr))
				http.Error(w, "Access Denied", http.StatusForbidden)
				return
			}
		}

		data, contentType, err := d.Backend.Get(r.Context(), key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			d.Logger.Error("failed to read blob",
				logger.String("key", key),
				logger.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		noStore(w)
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
