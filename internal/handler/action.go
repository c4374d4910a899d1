package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/barrero/supertareas/internal/action"
	"github.com/barrero/supertareas/internal/document"
	"github.com/barrero/supertareas/internal/model"
	"github.com/barrero/supertareas/internal/websocket"
)

const maxActionBytes = 1 << 20

// ActionHandler applies client actions through the write queue and fans a
// change notice out to connected sessions.
type ActionHandler struct {
	queue  *document.Queue
	hub    *websocket.Hub
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewActionHandler(queue *document.Queue, hub *websocket.Hub, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{queue: queue, hub: hub, logger: logger, now: time.Now}
}

// Apply handles POST /api/action. An unknown action type is acknowledged
// and dropped so that newer clients never wedge an older server; a rejected
// action (validation failure) returns 409 with the reason.
func (h *ActionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxActionBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	a, err := action.Decode(body)
	if errors.Is(err, action.ErrUnknownKind) {
		h.logger.Warn("ignoring unknown action", "error", err)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid action")
		return
	}

	now := h.now()
	err = h.queue.Update(r.Context(), func(doc *model.Document) error {
		return action.Apply(doc, a, now)
	})
	if err != nil {
		if action.IsRejection(err) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("apply action", "type", a.Kind(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to apply action")
		return
	}

	entity, verb, id := action.Describe(a)
	h.hub.Broadcast(websocket.NewNotice(entity, verb, id))

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
