package handlers

import (
	"net/http"

	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/httpserver/mw"
)

// Unlock issues the unlock credential. The client calls this after solving
// the puzzle; the server takes its word for it.
func Unlock(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     mw.UnlockCookieName,
			Value:    mw.UnlockCookieValue,
			Path:     "/",
			MaxAge:   int(d.UnlockTTL.Seconds()),
			SameSite: http.SameSiteLaxMode,
		})

		d.Logger.Info("unlock credential issued")
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}
