package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/httpserver/handlers"
)

func init() { Register(registerUnlock) }

func registerUnlock(r chi.Router, d deps.Deps) {
	r.Post("/unlock", handlers.Unlock(d))
}
