package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"courseforge/internal/service"
)

// MediaHandler handles binary asset upload and serving
type MediaHandler struct {
	mediaSvc *service.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaSvc *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Upload handles POST /v1/media (multipart form, field "file")
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.mediaSvc.Upload(header.Filename, contentType, header.Size, file)
	if err != nil {
		// Policy rejections get a specific status so the client can show
		// a precise message; everything else is a generic failure.
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrUnsupportedType):
			writeError(w, http.StatusUnsupportedMediaType, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// Serve handles GET /v1/media/{mediaId}/{filename}
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	mediaID := mux.Vars(r)["mediaId"]

	stream, file, err := h.mediaSvc.Open(mediaID)
	if err != nil {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}
	defer stream.Close()

	if file.ContentType != "" {
		w.Header().Set("Content-Type", file.ContentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	if _, err := io.Copy(w, stream); err != nil {
		log.Printf("media stream error: %v", err)
	}
}
