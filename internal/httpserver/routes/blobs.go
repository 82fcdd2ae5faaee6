package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/httpserver/handlers"
)

func init() { Register(registerBlobs) }

func registerBlobs(r chi.Router, d deps.Deps) {
	r.Get("/blobs/*", handlers.Blobs(d))
}
