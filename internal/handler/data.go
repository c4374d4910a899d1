package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/barrero/supertareas/internal/document"
	"github.com/barrero/supertareas/internal/model"
	"github.com/barrero/supertareas/internal/websocket"
)

// DataHandler serves the full document and accepts wholesale replacements.
type DataHandler struct {
	store  *document.Store
	queue  *document.Queue
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewDataHandler(store *document.Store, queue *document.Queue, hub *websocket.Hub, logger *slog.Logger) *DataHandler {
	return &DataHandler{store: store, queue: queue, hub: hub, logger: logger}
}

// Get returns the entire document. Clients hydrate their local cache from
// this on startup and after change notices.
func (h *DataHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Load())
}

// Replace overwrites the whole document with the request body. This is the
// admin import/restore path; normal mutations go through the action
// endpoint instead.
func (h *DataHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var incoming model.Document
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	incoming.Normalize()

	err := h.queue.Update(r.Context(), func(doc *model.Document) error {
		*doc = incoming
		return nil
	})
	if err != nil {
		h.logger.Error("replace document", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save data")
		return
	}

	h.hub.Broadcast(websocket.NewNotice("document", "replaced", ""))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
