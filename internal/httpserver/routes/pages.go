package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/httpserver/handlers"
	"github.com/pudu/heartgate/internal/httpserver/mw"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Home(d))
	r.Get("/puzzle", handlers.Puzzle(d))
	r.Get("/puzzle/board", handlers.PuzzleBoard(d))
	r.With(mw.AllowOnlyCIDRS(d.AdminCIDRS, d.TrustProxy, d.Logger)).
		Get("/admin", handlers.Admin(d))
}
