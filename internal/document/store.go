// Package document owns the persisted JSON document and serializes every
// mutation against it through a single write queue.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/barrero/supertareas/internal/model"
)

// Store reads and writes the document file. It performs no locking of its
// own: mutating callers must go through the Queue, which guarantees at most
// one load-mutate-save cycle at a time. Plain reads (list queries) may call
// Load directly.
type Store struct {
	path   string
	logger *slog.Logger
}

func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the location of the document file.
func (s *Store) Path() string {
	return s.path
}

// Load parses the on-disk document. A missing file yields an empty
// document. A corrupt file is renamed aside and replaced by an empty
// document: availability wins over strict failure here, and the renamed
// file keeps the data recoverable by hand.
func (s *Store) Load() *model.Document {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewDocument()
	}
	if err != nil {
		s.logger.Warn("read document failed, starting empty", "path", s.path, "error", err)
		return model.NewDocument()
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		quarantine := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, quarantine); renameErr != nil {
			s.logger.Error("quarantine corrupt document failed", "path", s.path, "error", renameErr)
		} else {
			s.logger.Warn("document corrupt, moved aside and starting empty",
				"path", s.path, "quarantine", quarantine, "error", err)
		}
		return model.NewDocument()
	}

	doc.Normalize()
	return &doc
}

// Save serializes the full document and atomically replaces the file via a
// temp file + rename in the same directory.
func (s *Store) Save(doc *model.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".supertareas-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
