package mw

import (
	"net/http"
	"strings"

	"github.com/pudu/heartgate/internal/logger"
)

// Canonical unlock credential scheme. The cookie is a novelty capability
// token, not a security boundary: the server trusts whoever presents it.
const (
	UnlockCookieName  = "puzzle_unlocked"
	UnlockCookieValue = "true"

	HomePath   = "/"
	PuzzlePath = "/puzzle"
)

// Diagnostic headers attached to gate redirects, for observability only.
const (
	headerGate       = "X-Gate"
	headerGatePath   = "X-Gate-Path"
	headerGateCookie = "X-Gate-Cookie"
)

// passPrefixes are never gated: the API surface, blob serving, the admin
// console and operational endpoints.
var passPrefixes = []string{
	"/content/",
	"/blobs/",
	"/unlock",
	"/admin",
	"/healthz",
	"/readyz",
	"/static/",
}

// Gate is the access gatekeeper. It classifies each request path in order,
// first match wins:
//
//  1. asset-like paths (excluded prefixes, or a "." in the last segment) pass;
//  2. the home path requires the unlock cookie, else 302 to the puzzle;
//  3. the puzzle path bounces already-unlocked visitors back home;
//  4. everything else passes.
//
// A missing or malformed cookie counts as locked. The puzzle path is never
// redirected to itself, so no loop is possible.
func Gate(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			if isAssetLike(path) {
				next.ServeHTTP(w, r)
				return
			}

			unlocked, present := readCredential(r)

			if path == HomePath {
				if !unlocked {
					log.Debug("gate: locked, redirecting to puzzle",
						logger.String("path", path),
						logger.Bool("cookie_present", present))
					redirectWithDiagnostics(w, r, PuzzlePath, path, present)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(path, PuzzlePath) {
				if unlocked {
					log.Debug("gate: already unlocked, redirecting home",
						logger.String("path", path))
					redirectWithDiagnostics(w, r, HomePath, path, present)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isAssetLike reports whether the path is exempt from gating: under an
// excluded prefix, or carrying a file extension in its last segment.
func isAssetLike(path string) bool {
	for _, prefix := range passPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	last := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		last = path[i+1:]
	}
	return strings.Contains(last, ".")
}

// readCredential reports whether the unlock cookie is valid, and whether any
// cookie under that name is present at all.
func readCredential(r *http.Request) (unlocked, present bool) {
	c, err := r.Cookie(UnlockCookieName)
	if err != nil || c == nil {
		return false, false
	}
	return c.Value == UnlockCookieValue, true
}

func redirectWithDiagnostics(w http.ResponseWriter, r *http.Request, target, path string, cookiePresent bool) {
	w.Header().Set(headerGate, "checked")
	w.Header().Set(headerGatePath, path)
	if cookiePresent {
		w.Header().Set(headerGateCookie, "present")
	} else {
		w.Header().Set(headerGateCookie, "missing")
	}
	http.Redirect(w, r, target, http.StatusFound)
}
