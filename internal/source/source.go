// Package source provides the raw text of the artifacts under analysis.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sprite-ai/webcompat/internal/model"
)

var (
	// ErrNotFound is returned when an artifact path does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDecode is returned when an artifact's bytes are not valid UTF-8 text.
	ErrDecode = errors.New("cannot decode as UTF-8 text")
)

// Source returns the raw text of an artifact.
type Source interface {
	Read(kind model.ArtifactKind, name string) (string, error)
}

// Dir reads artifacts relative to a base directory.
type Dir struct {
	Root string
}

// NewDir returns a Source rooted at dir.
func NewDir(dir string) Dir {
	return Dir{Root: dir}
}

// Read implements Source.
func (d Dir) Read(kind model.ArtifactKind, name string) (string, error) {
	path := filepath.Join(d.Root, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return Decode(name, data)
}

// Decode validates data as UTF-8 and strips a leading byte order mark.
func Decode(name string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", name, ErrDecode)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// Memory is a Source backed by in-memory texts keyed by artifact name.
type Memory map[string]string

// Read implements Source.
func (m Memory) Read(kind model.ArtifactKind, name string) (string, error) {
	text, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%s: %w", name, ErrDecode)
	}
	return text, nil
}
