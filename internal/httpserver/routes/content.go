package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pudu/heartgate/internal/content"
	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/httpserver/handlers"
	"github.com/pudu/heartgate/internal/httpserver/mw"
)

func init() { Register(registerContent) }

func registerContent(r chi.Router, d deps.Deps) {
	// Reads are open; mutations sit behind the admin CIDR filter, and
	// uploads additionally behind a per-IP rate limit.
	adminOnly := mw.AllowOnlyCIDRS(d.AdminCIDRS, d.TrustProxy, d.Logger)
	uploadLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.UploadBurst,
		RefillPerMin: d.UploadRefillPerMin,
		IdleTTL:      15 * time.Minute,
		TrustProxy:   d.TrustProxy,
	})

	r.Get("/content/memories", handlers.ListCollection(d, content.Memories))
	r.Get("/content/voices", handlers.ListCollection(d, content.Voices))
	r.Get("/content/puzzle-config", handlers.PuzzleConfig(d))

	admin := r.With(adminOnly)
	admin.Delete("/content/memories/{id}", handlers.DeleteCollection(d, content.Memories))
	admin.Delete("/content/voices/{id}", handlers.DeleteCollection(d, content.Voices))

	uploads := r.With(adminOnly, uploadLimit)
	uploads.Post("/content/memories", handlers.UploadCollection(d, content.Memories))
	uploads.Post("/content/voices", handlers.UploadCollection(d, content.Voices))
	uploads.Post("/content/puzzle", handlers.SetPuzzleImage(d))
}
