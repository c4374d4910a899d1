package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/barrero/supertareas/internal/backup"
	"github.com/barrero/supertareas/internal/blob"
	"github.com/barrero/supertareas/internal/document"
	"github.com/barrero/supertareas/internal/logging"
	"github.com/barrero/supertareas/internal/server"
)

func main() {
	logger := logging.Setup(os.Getenv("SUPERTAREAS_LOG_LEVEL"), os.Getenv("SUPERTAREAS_LOG_FORMAT"))

	port := envOr("SUPERTAREAS_PORT", "8080")
	dataPath := envOr("SUPERTAREAS_DATA_PATH", "supertareas.json")
	uploadDir := envOr("SUPERTAREAS_UPLOAD_DIR", "uploads")

	store := document.NewStore(dataPath, logger.With("component", "store"))
	queue := document.NewQueue(store, logger.With("component", "queue"))

	blobs, err := blob.NewStore(uploadDir)
	if err != nil {
		logger.Error("init upload store", "error", err)
		os.Exit(1)
	}

	backupCfg := backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("SUPERTAREAS_S3_ENDPOINT"),
			Bucket:    os.Getenv("SUPERTAREAS_S3_BUCKET"),
			Region:    envOr("SUPERTAREAS_S3_REGION", "auto"),
			AccessKey: os.Getenv("SUPERTAREAS_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("SUPERTAREAS_S3_SECRET_KEY"),
		},
		Passphrase: os.Getenv("SUPERTAREAS_BACKUP_PASSPHRASE"),
		Prefix:     envOr("SUPERTAREAS_BACKUP_PREFIX", "backups"),
		Interval:   envDuration("SUPERTAREAS_BACKUP_INTERVAL", 24*time.Hour),
		Keep:       envInt("SUPERTAREAS_BACKUP_KEEP", 30),
	}

	srv := server.New(store, queue, blobs, backupCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if srv.BackupManager().Enabled() {
		srv.BackupManager().Start(ctx)
		logger.Info("backup schedule active", "interval", backupCfg.Interval, "keep", backupCfg.Keep)
	}

	// Expired rate-limit entries accumulate slowly; sweep hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("SuperTareas running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	srv.BackupManager().Stop()
	queue.Close()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
