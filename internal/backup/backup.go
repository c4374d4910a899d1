// Package backup ships encrypted snapshots of the document to S3-compatible
// storage on a schedule. A snapshot is the full JSON document sealed with a
// passphrase-derived key, so the bucket operator never sees family data.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"

	"github.com/barrero/supertareas/internal/document"
	"github.com/barrero/supertareas/internal/model"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Config holds backup manager configuration.
type Config struct {
	S3         S3Config
	Passphrase string
	Prefix     string        // key prefix inside the bucket
	Interval   time.Duration // zero disables the scheduled loop
	Keep       int           // snapshots retained after pruning; zero keeps all
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status holds the current backup manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"lastBackup,omitempty"`
	LastKey    string     `json:"lastKey,omitempty"`
	Error      string     `json:"error,omitempty"`
	InProgress bool       `json:"inProgress"`
}

// StatusCallback is called whenever the backup state changes.
type StatusCallback func(Status)

// Manager snapshots the document store on an interval and keeps the most
// recent snapshots in the bucket.
type Manager struct {
	mu       sync.RWMutex
	cfg      Config
	status   Status
	callback StatusCallback

	store  *document.Store
	queue  *document.Queue
	client s3Client
	logger *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a new backup manager. It stays disabled until the S3
// credentials and a passphrase are all present.
func NewManager(cfg Config, store *document.Store, queue *document.Queue, callback StatusCallback, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:      cfg,
		store:    store,
		queue:    queue,
		callback: callback,
		logger:   logger,
		status:   Status{State: StateDisabled},
	}

	if cfg.S3.Bucket != "" && cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" && cfg.Passphrase != "" {
		m.client = newS3Client(cfg.S3)
		m.status.State = StateIdle
	}

	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Enabled reports whether the manager is configured to run.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client != nil
}

// Start begins the scheduled backup loop.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.client == nil || m.cfg.Interval <= 0 {
		m.mu.Unlock()
		return
	}
	interval := m.cfg.Interval
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := m.BackupNow(ctx); err != nil {
					m.logger.Error("scheduled backup failed", "error", err)
				}
			}
		}
	}()
}

// Stop gracefully stops the backup loop.
func (m *Manager) Stop() {
	m.mu.RLock()
	cancel := m.cancel
	done := m.done
	m.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Status returns the current backup status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
	if m.callback != nil {
		m.callback(s)
	}
}

// BackupNow snapshots the current document, encrypts it, and uploads it.
// It returns the object key of the new snapshot.
func (m *Manager) BackupNow(ctx context.Context) (string, error) {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()

	if client == nil {
		return "", fmt.Errorf("backup not configured")
	}

	m.setStatus(Status{State: StateRunning, InProgress: true})

	snapshot, err := json.Marshal(m.store.Load())
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	salt, err := GenerateSalt()
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", err
	}
	sealed, err := Encrypt(snapshot, cfg.Passphrase, salt)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", err
	}

	timestamp := time.Now().UTC().Format("2006-01-02T150405Z")
	key := path.Join(cfg.Prefix, fmt.Sprintf("supertareas-%s.json.enc", timestamp))

	// The home connection flakes; retry the upload a few times before
	// declaring the run failed.
	backoff := retry.WithMaxRetries(4, retry.NewExponential(time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(cfg.S3.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(sealed),
			ContentLength: aws.Int64(int64(len(sealed))),
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	if err := m.prune(ctx, client, cfg); err != nil {
		m.logger.Warn("prune old snapshots", "error", err)
	}

	now := time.Now().UTC()
	m.setStatus(Status{State: StateIdle, LastBackup: &now, LastKey: key})
	return key, nil
}

// prune deletes the oldest snapshots beyond cfg.Keep. Timestamped key names
// sort chronologically, so lexicographic order is age order.
func (m *Manager) prune(ctx context.Context, client s3Client, cfg Config) error {
	if cfg.Keep <= 0 {
		return nil
	}

	out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.S3.Bucket),
		Prefix: aws.String(path.Join(cfg.Prefix, "supertareas-")),
	})
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	if len(keys) <= cfg.Keep {
		return nil
	}
	sort.Strings(keys)

	var errs error
	for _, key := range keys[:len(keys)-cfg.Keep] {
		if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.S3.Bucket),
			Key:    aws.String(key),
		}); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errs
}

// ListSnapshots returns the snapshot keys currently in the bucket, newest
// last.
func (m *Manager) ListSnapshots(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()

	if client == nil {
		return nil, fmt.Errorf("backup not configured")
	}

	out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.S3.Bucket),
		Prefix: aws.String(path.Join(cfg.Prefix, "supertareas-")),
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	sort.Strings(keys)
	return keys, nil
}

// Restore downloads a snapshot, decrypts it, and replaces the live document
// with it through the write queue. An empty key restores the most recent
// snapshot.
func (m *Manager) Restore(ctx context.Context, key string) error {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("backup not configured")
	}

	if key == "" {
		keys, err := m.ListSnapshots(ctx)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return fmt.Errorf("no snapshots in bucket")
		}
		key = keys[len(keys)-1]
	}

	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(cfg.S3.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("download snapshot: %w", err)
	}
	defer result.Body.Close()

	sealed, err := io.ReadAll(result.Body)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	snapshot, err := Decrypt(sealed, cfg.Passphrase)
	if err != nil {
		return fmt.Errorf("decrypt snapshot: %w", err)
	}

	var restored model.Document
	if err := json.Unmarshal(snapshot, &restored); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	restored.Normalize()

	err = m.queue.Update(ctx, func(doc *model.Document) error {
		*doc = restored
		return nil
	})
	if err != nil {
		return fmt.Errorf("install snapshot: %w", err)
	}

	m.logger.Info("restore complete", "key", key)
	return nil
}
