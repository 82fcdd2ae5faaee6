package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/httpserver/handlers"
	"github.com/pudu/heartgate/internal/httpserver/mw"
)

func init() { Register(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.With(mw.AllowOnlyCIDRS(d.AdminCIDRS, d.TrustProxy, d.Logger)).
		Get("/readyz", handlers.Readyz(d))
}
