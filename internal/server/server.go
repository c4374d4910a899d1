// Package server wires the stores, queue, hub, and handlers into one HTTP
// surface.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/barrero/supertareas/internal/backup"
	"github.com/barrero/supertareas/internal/blob"
	"github.com/barrero/supertareas/internal/document"
	"github.com/barrero/supertareas/internal/handler"
	"github.com/barrero/supertareas/internal/middleware"
	ws "github.com/barrero/supertareas/internal/websocket"
)

type Server struct {
	store  *document.Store
	queue  *document.Queue
	blobs  *blob.Store
	hub    *ws.Hub

	dataH   *handler.DataHandler
	actionH *handler.ActionHandler
	statsH  *handler.StatsHandler
	uploadH *handler.UploadHandler
	pinH    *handler.PINHandler
	backupH *handler.BackupHandler

	rateLimiter   *middleware.RateLimiter
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(store *document.Store, queue *document.Queue, blobs *blob.Store, backupCfg backup.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	backupMgr := backup.NewManager(backupCfg, store, queue, func(s backup.Status) {
		hub.Broadcast(ws.Notice{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(s.State),
			Extra: map[string]any{
				"inProgress": s.InProgress,
				"error":      s.Error,
			},
		})
	}, logger.With("component", "backup"))

	return &Server{
		store:         store,
		queue:         queue,
		blobs:         blobs,
		hub:           hub,
		dataH:         handler.NewDataHandler(store, queue, hub, logger.With("component", "data")),
		actionH:       handler.NewActionHandler(queue, hub, logger.With("component", "action")),
		statsH:        handler.NewStatsHandler(store),
		uploadH:       handler.NewUploadHandler(blobs, logger.With("component", "upload")),
		pinH:          handler.NewPINHandler(store),
		backupH:       handler.NewBackupHandler(backupMgr, logger.With("component", "backup_handler")),
		rateLimiter:   middleware.NewRateLimiter(),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// BackupManager returns the backup manager for lifecycle control.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Document sync
	mux.HandleFunc("GET /api/data", s.dataH.Get)
	mux.HandleFunc("POST /api/data", s.dataH.Replace)
	mux.HandleFunc("POST /api/action", s.actionH.Apply)

	// Derived views
	mux.HandleFunc("GET /api/stats/{id}", s.statsH.UserStats)
	mux.HandleFunc("GET /api/leaderboard", s.statsH.Leaderboard)
	mux.HandleFunc("GET /api/ranking", s.statsH.FamilyRanking)

	// Profile switcher
	mux.HandleFunc("POST /api/users/{id}/pin/verify", s.rateLimitedHandler(s.pinH.Verify))

	// Uploads
	mux.HandleFunc("POST /api/upload", s.rateLimitedHandler(s.uploadH.Upload))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.blobs.Dir()))))

	// Backup admin
	mux.HandleFunc("GET /api/backup/status", s.backupH.Status)
	mux.HandleFunc("GET /api/backup/snapshots", s.backupH.List)
	mux.HandleFunc("POST /api/backup/now", s.backupH.Now)
	mux.HandleFunc("POST /api/backup/restore", s.backupH.Restore)

	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))
	mux.HandleFunc("GET /health", s.healthHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
