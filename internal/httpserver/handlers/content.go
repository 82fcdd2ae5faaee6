package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pudu/heartgate/internal/content"
	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/utils"
)

// maxUploadBytes caps a single multipart upload.
const maxUploadBytes = 32 << 20

// ListCollection serves a collection's items, newest first. Listing never
// fails: backend trouble degrades to an empty array.
func ListCollection(d deps.Deps, col content.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		items := d.Content.List(r.Context(), col)
		if items == nil {
			items = []content.Item{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

type uploadResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
	ID  string `json:"id"`
}

// UploadCollection accepts a multipart "file" field and stores it.
func UploadCollection(d deps.Deps, col content.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename, mimeType, data, err := readMultipartFile(r)
		if err != nil {
			writeError(d.Logger, w, r, fmt.Errorf("%w: no file uploaded", content.ErrInvalidInput))
			return
		}

		item, err := d.Content.Upload(r.Context(), col, filename, mimeType, data)
		if err != nil {
			writeError(d.Logger, w, r, err)
			return
		}

		noStore(w)
		writeJSON(w, http.StatusOK, uploadResponse{OK: true, URL: item.URL, ID: item.ID})
	}
}

// DeleteCollection removes the item whose derived ID matches the path param.
func DeleteCollection(d deps.Deps, col content.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(d.Logger, w, r, fmt.Errorf("%w: missing id", content.ErrInvalidInput))
			return
		}

		if err := d.Content.Delete(r.Context(), col, id); err != nil {
			writeError(d.Logger, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

// readMultipartFile extracts the "file" part of a multipart form: name,
// declared content type and bytes.
func readMultipartFile(r *http.Request) (filename, mimeType string, data []byte, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", "", nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", nil, fmt.Errorf("missing file field: %w", err)
	}
	defer utils.Close(file)

	data, err = io.ReadAll(file)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	return header.Filename, header.Header.Get("Content-Type"), data, nil
}
