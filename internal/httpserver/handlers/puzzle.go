package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/pudu/heartgate/internal/content"
	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/puzzle"
)

// PuzzleConfig serves the current puzzle image pointer, 404 if never set.
func PuzzleConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		cfg, err := d.Content.PuzzleConfig(r.Context())
		if err != nil {
			writeError(d.Logger, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

type setPuzzleResponse struct {
	OK        bool   `json:"ok"`
	URL       string `json:"url"`
	UpdatedAt int64  `json:"updatedAt"`
}

// SetPuzzleImage stores a new puzzle image and repoints the config at it.
func SetPuzzleImage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename, mimeType, data, err := readMultipartFile(r)
		if err != nil {
			writeError(d.Logger, w, r, fmt.Errorf("%w: no file uploaded", content.ErrInvalidInput))
			return
		}

		cfg, err := d.Content.SetPuzzleImage(r.Context(), filename, mimeType, data)
		if err != nil {
			writeError(d.Logger, w, r, err)
			return
		}

		noStore(w)
		writeJSON(w, http.StatusOK, setPuzzleResponse{OK: true, URL: cfg.URL, UpdatedAt: cfg.UpdatedAt})
	}
}

type boardResponse struct {
	N     int   `json:"n"`
	Tiles []int `json:"tiles"`
}

// PuzzleBoard hands the client a freshly shuffled board. The board is
// ephemeral: moves and win detection happen client-side, state is never
// stored server-side.
func PuzzleBoard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		b := puzzle.NewShuffled(d.GridSize, rng)

		noStore(w)
		writeJSON(w, http.StatusOK, boardResponse{N: b.Size(), Tiles: b.Tiles()})
	}
}
