package handler

import (
	"encoding/json"
	"net/http"

	"github.com/barrero/supertareas/internal/document"
)

// PINHandler verifies a user's PIN for the profile switcher. PINs are a
// sibling deterrent on a shared kitchen tablet, not a security boundary,
// so they are stored and compared as plain digits.
type PINHandler struct {
	store *document.Store
}

func NewPINHandler(store *document.Store) *PINHandler {
	return &PINHandler{store: store}
}

func (h *PINHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user := h.store.Load().UserByID(r.PathValue("id"))
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if user.PIN == "" {
		writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
		return
	}
	if req.PIN != user.PIN {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"valid": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}
