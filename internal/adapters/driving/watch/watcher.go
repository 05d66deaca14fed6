package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ripple-cli/internal/logger"
)

// Errors returned by the watcher.
var (
	ErrMissingLibrary = errors.New("library service is required")
	ErrClosed         = errors.New("watcher is closed")
)

// DefaultExtensions are the file extensions ingested when none are given.
var DefaultExtensions = []string{".txt", ".md"}

// IngestFunc is called after a file has been stored.
type IngestFunc func(path string, asset *domain.Asset)

// Watcher ingests matching files from a single directory.
type Watcher struct {
	library    driving.LibraryService
	dir        string
	stress     domain.StressReading
	extensions map[string]bool
	onIngest   IngestFunc

	mu     sync.Mutex
	closed bool
	// last ingested content per path; editors often emit several writes.
	seen map[string]string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions replaces the set of ingested file extensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			w.extensions[ext] = true
		}
	}
}

// WithIngestFunc registers a callback invoked for every stored file.
func WithIngestFunc(fn IngestFunc) Option {
	return func(w *Watcher) {
		w.onIngest = fn
	}
}

// New creates a watcher for dir. Each ingest uses the given stress reading.
func New(library driving.LibraryService, dir string, stress domain.StressReading, opts ...Option) (*Watcher, error) {
	if library == nil {
		return nil, ErrMissingLibrary
	}
	if err := stress.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path error: %s is not a directory", dir)
	}

	w := &Watcher{
		library: library,
		dir:     dir,
		stress:  stress,
		seen:    make(map[string]string),
	}
	WithExtensions(DefaultExtensions...)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches the directory until ctx is cancelled.
// Per-file failures are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("watching %s for %s", w.dir, strings.Join(w.extensionList(), ", "))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if _, err := w.handleEvent(ctx, event); err != nil {
				logger.Warn("ingest %s: %v", event.Name, err)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// Close stops future runs. A running loop ends with its context.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// handleEvent ingests the file behind event when it qualifies.
// A nil asset with a nil error means the event was skipped.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) (*domain.Asset, error) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return nil, nil
	}
	if !w.accepts(event.Name) {
		return nil, nil
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return nil, nil //nolint:nilerr // file vanished between event and stat
	}

	data, err := os.ReadFile(event.Name)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		logger.Debug("skipping empty file %s", event.Name)
		return nil, nil
	}

	w.mu.Lock()
	if w.seen[event.Name] == text {
		w.mu.Unlock()
		return nil, nil
	}
	w.seen[event.Name] = text
	w.mu.Unlock()

	asset, err := w.library.Ingest(ctx, text, w.stress)
	if err != nil {
		w.mu.Lock()
		delete(w.seen, event.Name)
		w.mu.Unlock()
		return nil, err
	}

	logger.Debug("ingested %s as asset #%d", event.Name, asset.ID)
	if w.onIngest != nil {
		w.onIngest(event.Name, asset)
	}
	return asset, nil
}

func (w *Watcher) accepts(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(base))]
}

func (w *Watcher) extensionList() []string {
	exts := make([]string, 0, len(w.extensions))
	for ext := range w.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
