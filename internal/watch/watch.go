// Package watch reruns work when artifacts under a directory change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before changes are reported.
const DefaultDebounce = 300 * time.Millisecond

// Change is one changed file, relative to the watched root.
type Change struct {
	Path string
	Op   string // "create", "write", "remove", "rename"
}

// Options configure a Watcher.
type Options struct {
	Debounce time.Duration
	// Files restricts reported changes to these root-relative names. Empty
	// means every file.
	Files  []string
	Logger *slog.Logger
}

// Watcher watches a directory tree and reports debounced batches of changes.
type Watcher struct {
	fsw    *fsnotify.Watcher
	root   string
	window time.Duration
	files  map[string]bool
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]string
}

// New creates a watcher over root and every non-hidden subdirectory.
func New(root string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		root:    filepath.Clean(root),
		window:  opts.Debounce,
		logger:  opts.Logger,
		pending: make(map[string]string),
	}
	if w.window <= 0 {
		w.window = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if len(opts.Files) > 0 {
		w.files = make(map[string]bool, len(opts.Files))
		for _, f := range opts.Files {
			w.files[filepath.ToSlash(filepath.Clean(f))] = true
		}
	}

	if err := w.addTree(w.root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers batches of changes to onChange until ctx is done. Batches are
// sorted by path and hold at most one change per file, the latest.
func (w *Watcher) Run(ctx context.Context, onChange func([]Change)) error {
	defer w.fsw.Close()

	d := newDebouncer(w.window, func() {
		if batch := w.drain(); len(batch) > 0 {
			onChange(batch)
		}
	})
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			op := opName(event.Op)
			if op == "" {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if err := w.addTree(event.Name); err != nil {
					w.logger.Debug("not watching new path", "path", event.Name, "error", err)
				}
			}

			rel, err := filepath.Rel(w.root, event.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if w.files != nil && !w.files[rel] {
				continue
			}

			w.mu.Lock()
			w.pending[rel] = op
			w.mu.Unlock()
			d.trigger()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (w *Watcher) drain() []Change {
	w.mu.Lock()
	defer w.mu.Unlock()

	batch := make([]Change, 0, len(w.pending))
	for path, op := range w.pending {
		batch = append(batch, Change{Path: path, Op: op})
	}
	clear(w.pending)
	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
	return batch
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
