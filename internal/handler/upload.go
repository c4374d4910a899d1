package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/barrero/supertareas/internal/blob"
)

// UploadHandler accepts multipart image uploads (avatars, task pictures)
// and returns the URL they will be served under.
type UploadHandler struct {
	blobs  *blob.Store
	logger *slog.Logger
}

func NewUploadHandler(blobs *blob.Store, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{blobs: blobs, logger: logger}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, blob.MaxUploadBytes+4096)

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	name, err := h.blobs.Save(file)
	if errors.Is(err, blob.ErrUnsupportedType) {
		writeError(w, http.StatusBadRequest, "only image uploads are allowed")
		return
	}
	if err != nil {
		h.logger.Error("save upload", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save upload")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": "/uploads/" + name})
}
