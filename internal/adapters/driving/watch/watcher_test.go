package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/services"
)

var defaultStress = domain.StressReading{Before: 5, After: 4}

func newTestWatcher(t *testing.T, opts ...Option) (*Watcher, *memory.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := memory.NewStore()
	library := services.NewLibraryService(store, store, domain.TimingSettings{})
	w, err := New(library, dir, defaultStress, opts...)
	require.NoError(t, err)
	return w, store, dir
}

func TestNew(t *testing.T) {
	store := memory.NewStore()
	library := services.NewLibraryService(store, store, domain.TimingSettings{})

	t.Run("requires library", func(t *testing.T) {
		w, err := New(nil, t.TempDir(), defaultStress)
		assert.ErrorIs(t, err, ErrMissingLibrary)
		assert.Nil(t, w)
	})

	t.Run("rejects invalid stress", func(t *testing.T) {
		_, err := New(library, t.TempDir(), domain.StressReading{Before: 11, After: 4})
		assert.ErrorIs(t, err, domain.ErrInvalidStress)
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		_, err := New(library, "/non/existent/path", defaultStress)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "watch path error")
	})

	t.Run("rejects regular file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "note.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := New(library, file, defaultStress)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("normalises extensions", func(t *testing.T) {
		w, err := New(library, t.TempDir(), defaultStress, WithExtensions("LOG", ".csv"))
		require.NoError(t, err)
		assert.Equal(t, []string{".csv", ".log"}, w.extensionList())
	})
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		mkdir     bool
		op        fsnotify.Op
		wantStore bool
	}{
		{name: "create txt", file: "a.txt", content: "hello", op: fsnotify.Create, wantStore: true},
		{name: "write md", file: "b.md", content: "# notes", op: fsnotify.Write, wantStore: true},
		{name: "upper-case extension", file: "C.TXT", content: "loud", op: fsnotify.Create, wantStore: true},
		{name: "write with chmod", file: "d.txt", content: "both", op: fsnotify.Write | fsnotify.Chmod, wantStore: true},
		{name: "chmod only", file: "e.txt", content: "perm", op: fsnotify.Chmod},
		{name: "remove", file: "f.txt", op: fsnotify.Remove},
		{name: "rename", file: "g.txt", op: fsnotify.Rename},
		{name: "other extension", file: "h.go", content: "package x", op: fsnotify.Create},
		{name: "hidden file", file: ".i.txt", content: "secret", op: fsnotify.Create},
		{name: "blank file", file: "j.txt", content: "  \n", op: fsnotify.Write},
		{name: "directory", file: "k.txt", mkdir: true, op: fsnotify.Create},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, store, dir := newTestWatcher(t)
			path := filepath.Join(dir, tt.file)
			switch {
			case tt.mkdir:
				require.NoError(t, os.Mkdir(path, 0o755))
			case tt.content != "":
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			asset, err := w.handleEvent(context.Background(), fsnotify.Event{Name: path, Op: tt.op})
			require.NoError(t, err)

			count, err := store.Count(context.Background())
			require.NoError(t, err)
			if tt.wantStore {
				require.NotNil(t, asset)
				assert.Equal(t, tt.content, asset.RawText)
				assert.Equal(t, 1, count)
			} else {
				assert.Nil(t, asset)
				assert.Zero(t, count)
			}
		})
	}
}

func TestHandleEvent_TracksIngestSession(t *testing.T) {
	w, store, dir := newTestWatcher(t)
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("tracked"), 0o644))

	_, err := w.handleEvent(context.Background(), fsnotify.Event{Name: path, Op: fsnotify.Create})
	require.NoError(t, err)

	sessions, err := store.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.LabelIngest, sessions[0].Label)
	assert.Equal(t, 5, sessions[0].StressBefore)
	require.NotNil(t, sessions[0].StressAfter)
	assert.Equal(t, 4, *sessions[0].StressAfter)
}

func TestHandleEvent_SkipsUnchangedContent(t *testing.T) {
	w, store, dir := newTestWatcher(t)
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))
	ctx := context.Background()

	first, err := w.handleEvent(ctx, fsnotify.Event{Name: path, Op: fsnotify.Create})
	require.NoError(t, err)
	require.NotNil(t, first)

	again, err := w.handleEvent(ctx, fsnotify.Event{Name: path, Op: fsnotify.Write})
	require.NoError(t, err)
	assert.Nil(t, again)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	second, err := w.handleEvent(ctx, fsnotify.Event{Name: path, Op: fsnotify.Write})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Greater(t, second.ID, first.ID)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHandleEvent_CallsIngestFunc(t *testing.T) {
	var gotPath string
	var gotID int64
	w, _, dir := newTestWatcher(t, WithIngestFunc(func(path string, asset *domain.Asset) {
		gotPath = path
		gotID = asset.ID
	}))
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("callback"), 0o644))

	_, err := w.handleEvent(context.Background(), fsnotify.Event{Name: path, Op: fsnotify.Create})
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
	assert.Equal(t, int64(1), gotID)
}

func TestWatcher_Run(t *testing.T) {
	t.Run("ingests new files", func(t *testing.T) {
		var mu sync.Mutex
		var ingested []string
		w, store, dir := newTestWatcher(t, WithIngestFunc(func(path string, _ *domain.Asset) {
			mu.Lock()
			defer mu.Unlock()
			ingested = append(ingested, filepath.Base(path))
		}))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		// Give the watcher time to register the directory.
		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "new-file.txt"), []byte("watched"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.bin"), []byte("skip"), 0o644))

		assert.Eventually(t, func() bool {
			count, err := store.Count(context.Background())
			return err == nil && count == 1
		}, 2*time.Second, 20*time.Millisecond)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("watcher did not stop after context cancellation")
		}

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"new-file.txt"}, ingested)
	})

	t.Run("returns error when closed", func(t *testing.T) {
		w, _, _ := newTestWatcher(t)
		require.NoError(t, w.Close())

		err := w.Run(context.Background())
		assert.ErrorIs(t, err, ErrClosed)
	})
}
