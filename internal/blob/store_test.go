package blob

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// pngHeader is enough for content-type sniffing to call it image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestSaveWritesPNG(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	name, err := s.Save(bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("name = %q, want .png suffix", name)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Error("saved bytes differ from upload")
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	_, err = s.Save(strings.NewReader("#!/bin/sh\nrm -rf /\n"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestSaveRejectsOversized(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	big := append(append([]byte{}, pngHeader...), make([]byte, MaxUploadBytes)...)
	if _, err := s.Save(bytes.NewReader(big)); err == nil {
		t.Error("expected error for oversized upload")
	}
}

func TestSaveRejectsEmpty(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := s.Save(strings.NewReader("")); err == nil {
		t.Error("expected error for empty upload")
	}
}

func TestUniqueNames(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	a, _ := s.Save(bytes.NewReader(pngHeader))
	b, _ := s.Save(bytes.NewReader(pngHeader))
	if a == b {
		t.Errorf("both uploads named %q", a)
	}
}
