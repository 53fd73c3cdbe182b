package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sprite-ai/webcompat/internal/model"
)

func TestDirRead(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("\ufeff<!DOCTYPE html>"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewDir(dir).Read(model.Markup, "index.html")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "<!DOCTYPE html>" {
		t.Errorf("expected BOM to be stripped, got %q", got)
	}
}

func TestDirReadNotFound(t *testing.T) {
	_, err := NewDir(t.TempDir()).Read(model.Style, "styles.css")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDirReadInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "script.js"), []byte{0xff, 0xfe, 0xfd}, 0644); err != nil {
		t.Fatal(err)
	}
	_, err := NewDir(dir).Read(model.Script, "script.js")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestMemoryRead(t *testing.T) {
	m := Memory{"a.css": "body{}", "bad.js": string([]byte{0xc3})}
	if got, err := m.Read(model.Style, "a.css"); err != nil || got != "body{}" {
		t.Errorf("Read = %q, %v", got, err)
	}
	if _, err := m.Read(model.Style, "missing.css"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.Read(model.Script, "bad.js"); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}
