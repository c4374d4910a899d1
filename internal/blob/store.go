// Package blob stores uploaded images on disk and hands back the generated
// file name. The rest of the system treats uploads as opaque URLs.
package blob

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/barrero/supertareas/internal/model"
)

// MaxUploadBytes caps a single upload.
const MaxUploadBytes = 10 << 20

// extByType maps sniffed content types to file extensions. Anything else
// is refused.
var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ErrUnsupportedType is returned for uploads that are not images we serve.
var ErrUnsupportedType = fmt.Errorf("blob: unsupported content type")

// Store writes uploads into a single directory with generated names.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory uploads are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save reads the upload, sniffs its type, and writes it under a generated
// name. It returns the file name (not a path); callers build the URL.
func (s *Store) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("blob: upload exceeds %d bytes", MaxUploadBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("blob: empty upload")
	}

	ext, ok := extByType[http.DetectContentType(data)]
	if !ok {
		return "", ErrUnsupportedType
	}

	name := model.NewID() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return name, nil
}
