package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/barrero/supertareas/internal/document"
	"github.com/barrero/supertareas/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeS3 keeps objects in memory and can fail the first putFailures uploads.
type fakeS3 struct {
	mu          sync.Mutex
	objects     map[string][]byte
	putFailures int
	putCalls    int
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	if f.putFailures > 0 {
		f.putFailures--
		return nil, fmt.Errorf("transient upload failure")
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(input.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(input.Key)]
	if !ok {
		return nil, fmt.Errorf("no such key")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{}
	for _, k := range keys {
		out.Contents = append(out.Contents, s3types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(input.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newTestManager(t *testing.T, cfg Config) (*Manager, *fakeS3, *document.Store) {
	t.Helper()
	logger := testLogger()
	store := document.NewStore(filepath.Join(t.TempDir(), "data.json"), logger)
	queue := document.NewQueue(store, logger)
	t.Cleanup(queue.Close)

	m := NewManager(cfg, store, queue, nil, logger)
	fake := newFakeS3()
	m.client = fake
	m.status.State = StateIdle
	return m, fake, store
}

func seed(t *testing.T, store *document.Store) {
	t.Helper()
	doc := model.NewDocument()
	doc.Families = append(doc.Families, model.Family{ID: "f1", Name: "Barrero"})
	if err := store.Save(doc); err != nil {
		t.Fatal(err)
	}
}

func TestBackupAndRestoreRoundtrip(t *testing.T) {
	m, fake, store := newTestManager(t, Config{Passphrase: "secreto", Prefix: "backups"})
	seed(t, store)
	ctx := context.Background()

	key, err := m.BackupNow(ctx)
	if err != nil {
		t.Fatalf("BackupNow: %v", err)
	}
	if len(fake.keys()) != 1 {
		t.Fatalf("bucket keys = %v", fake.keys())
	}

	// Sealed snapshot must decrypt back to the document.
	sealed := fake.objects[key]
	if bytes.Contains(sealed, []byte("Barrero")) {
		t.Error("uploaded snapshot is not encrypted")
	}

	// Wipe the live document, then restore.
	if err := store.Save(model.NewDocument()); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(ctx, ""); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	doc := store.Load()
	if len(doc.Families) != 1 || doc.Families[0].Name != "Barrero" {
		t.Errorf("restored families = %+v", doc.Families)
	}

	st := m.Status()
	if st.State != StateIdle || st.LastBackup == nil || st.LastKey != key {
		t.Errorf("status = %+v", st)
	}
}

func TestBackupRetriesTransientUploadFailure(t *testing.T) {
	m, fake, store := newTestManager(t, Config{Passphrase: "secreto"})
	seed(t, store)
	fake.putFailures = 2

	if _, err := m.BackupNow(context.Background()); err != nil {
		t.Fatalf("BackupNow: %v", err)
	}
	if fake.putCalls != 3 {
		t.Errorf("put calls = %d, want 3 (two failures then success)", fake.putCalls)
	}
}

func TestPruneKeepsNewestSnapshots(t *testing.T) {
	m, fake, store := newTestManager(t, Config{Passphrase: "secreto", Keep: 2})
	seed(t, store)

	// Pre-existing snapshots from earlier days.
	fake.objects["supertareas-2026-01-01T000000Z.json.enc"] = []byte("old1")
	fake.objects["supertareas-2026-01-02T000000Z.json.enc"] = []byte("old2")
	fake.objects["supertareas-2026-01-03T000000Z.json.enc"] = []byte("old3")

	if _, err := m.BackupNow(context.Background()); err != nil {
		t.Fatalf("BackupNow: %v", err)
	}

	keys := fake.keys()
	if len(keys) != 2 {
		t.Fatalf("keys = %v, want 2 newest", keys)
	}
	for _, k := range keys {
		if k == "supertareas-2026-01-01T000000Z.json.enc" || k == "supertareas-2026-01-02T000000Z.json.enc" {
			t.Errorf("old snapshot %s survived pruning", k)
		}
	}
}

func TestBackupNotConfigured(t *testing.T) {
	logger := testLogger()
	store := document.NewStore(filepath.Join(t.TempDir(), "data.json"), logger)
	queue := document.NewQueue(store, logger)
	t.Cleanup(queue.Close)

	m := NewManager(Config{}, store, queue, nil, logger)
	if m.Enabled() {
		t.Error("manager with no credentials must stay disabled")
	}
	if _, err := m.BackupNow(context.Background()); err == nil {
		t.Error("expected error from disabled manager")
	}
}

func TestScheduledLoopRuns(t *testing.T) {
	m, fake, store := newTestManager(t, Config{Passphrase: "secreto", Interval: 20 * time.Millisecond})
	seed(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	deadline := time.After(2 * time.Second)
	for len(fake.keys()) == 0 {
		select {
		case <-deadline:
			t.Fatal("no snapshot uploaded by the scheduled loop")
		case <-time.After(10 * time.Millisecond):
		}
	}
	m.Stop()
}
