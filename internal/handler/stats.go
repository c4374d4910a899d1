package handler

import (
	"net/http"
	"time"

	"github.com/barrero/supertareas/internal/document"
	"github.com/barrero/supertareas/internal/stats"
)

// StatsHandler serves the derived views: per-user stats, the kid
// leaderboard, and the cross-family ranking. Nothing here is persisted;
// every response is recomputed from the current document.
type StatsHandler struct {
	store *document.Store
	now   func() time.Time
}

func NewStatsHandler(store *document.Store) *StatsHandler {
	return &StatsHandler{store: store, now: time.Now}
}

// UserStats handles GET /api/stats/{id}?window=weekly|monthly.
func (h *StatsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc := h.store.Load()
	if doc.UserByID(id) == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	window := stats.ParseWindow(r.URL.Query().Get("window"))
	writeJSON(w, http.StatusOK, stats.ForUserWindow(doc, id, window, h.now()))
}

// Leaderboard handles GET /api/leaderboard?familyId=&window=. An empty
// familyId ranks kids across all families.
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	window := stats.ParseWindow(r.URL.Query().Get("window"))
	familyID := r.URL.Query().Get("familyId")

	board := stats.Leaderboard(h.store.Load(), familyID, window, h.now())
	if board == nil {
		board = []stats.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, board)
}

// FamilyRanking handles GET /api/ranking?window=. Families are compared by
// average points per kid, so big families get no head start.
func (h *StatsHandler) FamilyRanking(w http.ResponseWriter, r *http.Request) {
	window := stats.ParseWindow(r.URL.Query().Get("window"))
	ranks := stats.FamilyRanking(h.store.Load(), window, h.now())
	if ranks == nil {
		ranks = []stats.FamilyRank{}
	}
	writeJSON(w, http.StatusOK, ranks)
}
