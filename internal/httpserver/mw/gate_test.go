package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pudu/heartgate/internal/logger"
)

func gateHandler(t *testing.T) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return Gate(logger.New("error", false))(next)
}

func doGet(t *testing.T, h http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func unlockedCookie() *http.Cookie {
	return &http.Cookie{Name: UnlockCookieName, Value: UnlockCookieValue}
}

func TestGateClassification(t *testing.T) {
	h := gateHandler(t)

	tests := []struct {
		name         string
		path         string
		cookie       *http.Cookie
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "home without cookie redirects to puzzle",
			path:         "/",
			wantStatus:   http.StatusFound,
			wantLocation: "/puzzle",
		},
		{
			name:       "home with valid cookie passes",
			path:       "/",
			cookie:     unlockedCookie(),
			wantStatus: http.StatusOK,
		},
		{
			name:         "home with wrong cookie value stays locked",
			path:         "/",
			cookie:       &http.Cookie{Name: UnlockCookieName, Value: "1"},
			wantStatus:   http.StatusFound,
			wantLocation: "/puzzle",
		},
		{
			name:       "puzzle without cookie passes",
			path:       "/puzzle",
			wantStatus: http.StatusOK,
		},
		{
			name:         "puzzle with valid cookie redirects home",
			path:         "/puzzle",
			cookie:       unlockedCookie(),
			wantStatus:   http.StatusFound,
			wantLocation: "/",
		},
		{
			name:       "api path never gated",
			path:       "/content/memories",
			wantStatus: http.StatusOK,
		},
		{
			name:       "blob path never gated",
			path:       "/blobs/memories/1-a.png",
			wantStatus: http.StatusOK,
		},
		{
			name:       "admin never gated",
			path:       "/admin",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unlock endpoint never gated",
			path:       "/unlock",
			wantStatus: http.StatusOK,
		},
		{
			name:       "file extension never gated",
			path:       "/favicon.ico",
			wantStatus: http.StatusOK,
		},
		{
			name:       "nested file extension never gated",
			path:       "/some/deep/asset.css",
			wantStatus: http.StatusOK,
		},
		{
			name:       "other page passes",
			path:       "/whatever",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, h, tt.path, tt.cookie)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if got := rec.Header().Get("Location"); got != tt.wantLocation {
					t.Errorf("Location = %q, want %q", got, tt.wantLocation)
				}
			}
		})
	}
}

func TestGateNoRedirectLoop(t *testing.T) {
	h := gateHandler(t)

	// Locked: home redirects to puzzle; the puzzle target itself must pass.
	rec := doGet(t, h, "/", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("locked home status = %d, want 302", rec.Code)
	}
	follow := doGet(t, h, rec.Header().Get("Location"), nil)
	if follow.Code != http.StatusOK {
		t.Errorf("puzzle after redirect status = %d, want 200 (no loop)", follow.Code)
	}

	// Unlocked: puzzle redirects home; the home target must pass.
	rec = doGet(t, h, "/puzzle", unlockedCookie())
	if rec.Code != http.StatusFound {
		t.Fatalf("unlocked puzzle status = %d, want 302", rec.Code)
	}
	follow = doGet(t, h, rec.Header().Get("Location"), unlockedCookie())
	if follow.Code != http.StatusOK {
		t.Errorf("home after redirect status = %d, want 200 (no loop)", follow.Code)
	}
}

func TestGateDiagnosticHeaders(t *testing.T) {
	h := gateHandler(t)

	rec := doGet(t, h, "/", nil)
	if got := rec.Header().Get("X-Gate"); got != "checked" {
		t.Errorf("X-Gate = %q, want checked", got)
	}
	if got := rec.Header().Get("X-Gate-Path"); got != "/" {
		t.Errorf("X-Gate-Path = %q, want /", got)
	}
	if got := rec.Header().Get("X-Gate-Cookie"); got != "missing" {
		t.Errorf("X-Gate-Cookie = %q, want missing", got)
	}

	// A wrong-valued cookie is still "present".
	rec = doGet(t, h, "/", &http.Cookie{Name: UnlockCookieName, Value: "nope"})
	if got := rec.Header().Get("X-Gate-Cookie"); got != "present" {
		t.Errorf("X-Gate-Cookie = %q, want present", got)
	}
}

func TestIsAssetLike(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/content/memories", true},
		{"/blobs/a/b.png", true},
		{"/static/app.js", true},
		{"/favicon.ico", true},
		{"/foo/bar.min.css", true},
		{"/", false},
		{"/puzzle", false},
		{"/v1.2/page", false}, // dot in a middle segment does not count
		{"/memories", false},
	}
	for _, tt := range tests {
		if got := isAssetLike(tt.path); got != tt.want {
			t.Errorf("isAssetLike(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
