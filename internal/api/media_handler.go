package api

import (
	"errors"
	"net/http"

	"github.com/quizdeck/backend/internal/media"
)

const maxUploadBytes = 64 << 20 // 64 MiB, enough for short video clips

type UploadResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// POST /media
func (h *Handler) uploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	name, err := h.media.Save(header.Filename, file)
	if errors.Is(err, media.ErrUnsupportedType) {
		respondError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to store upload", "error", err, "filename", header.Filename)
		respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	respondJSON(w, http.StatusCreated, UploadResponse{Name: name, URL: media.URL(name)})
}

// GET /media/{name}
func (h *Handler) serveMedia(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	path, err := h.media.Path(name)
	if err != nil {
		respondError(w, http.StatusNotFound, "media not found")
		return
	}

	if ct := media.ContentType(name); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	http.ServeFile(w, r, path)
}
