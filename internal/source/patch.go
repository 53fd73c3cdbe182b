package source

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/sprite-ai/webcompat/internal/model"
)

// Patched serves artifacts as they would look after applying a unified diff
// on top of another Source. Artifacts the patch does not touch fall through.
type Patched struct {
	base  Source
	files map[string]*gitdiff.File
}

// NewPatched parses raw as a unified diff and layers it over base.
func NewPatched(base Source, raw string) (*Patched, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing patch: %w", err)
	}

	p := &Patched{base: base, files: make(map[string]*gitdiff.File)}
	for _, f := range parsed {
		if f.IsBinary {
			continue
		}
		name := f.NewName
		if f.IsDelete || name == "" {
			name = f.OldName
		}
		p.files[path.Clean(name)] = f
	}
	return p, nil
}

// Files returns the sorted artifact names touched by the patch.
func (p *Patched) Files() []string {
	names := make([]string, 0, len(p.files))
	for name := range p.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Read implements Source.
func (p *Patched) Read(kind model.ArtifactKind, name string) (string, error) {
	f, ok := p.files[path.Clean(name)]
	if !ok {
		return p.base.Read(kind, name)
	}
	if f.IsDelete {
		return "", fmt.Errorf("%s: deleted by patch: %w", name, ErrNotFound)
	}

	var pre string
	if !f.IsNew {
		src := name
		if f.IsRename && f.OldName != "" {
			src = f.OldName
		}
		text, err := p.base.Read(kind, src)
		if err != nil {
			return "", err
		}
		pre = text
	}

	var out bytes.Buffer
	if err := gitdiff.Apply(&out, strings.NewReader(pre), f); err != nil {
		return "", fmt.Errorf("applying patch to %s: %w", name, err)
	}
	if !utf8.Valid(out.Bytes()) {
		return "", fmt.Errorf("%s: %w", name, ErrDecode)
	}
	return out.String(), nil
}
