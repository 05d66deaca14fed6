package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeClock advances by step on every call.
type fakeClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{t: baseTime, step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

// noSleep records requested delays without waiting.
type noSleep struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (n *noSleep) Sleep(ctx context.Context, d time.Duration) error {
	n.mu.Lock()
	n.delays = append(n.delays, d)
	n.mu.Unlock()
	return ctx.Err()
}

func newTestLibrary(timing domain.TimingSettings) (*LibraryService, *memory.Store, *noSleep) {
	store := memory.NewStore()
	service := NewLibraryService(store, store, timing)
	sleeper := &noSleep{}
	service.sleep = sleeper.Sleep
	return service, store, sleeper
}

var defaultStress = domain.StressReading{Before: 5, After: 4}

// stubRenderer writes a fixed marker including the collection sizes.
type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(w io.Writer, sessions []domain.Session, events []domain.Event) error {
	if r.err != nil {
		return r.err
	}
	_, err := io.WriteString(w, "<report>")
	return err
}

func (r stubRenderer) ContentType() string { return "text/html; charset=utf-8" }

var errBoom = errors.New("boom")

// failingSessionStore fails every call.
type failingSessionStore struct{}

func (failingSessionStore) CreateSession(context.Context, string, int, time.Time) (*domain.Session, error) {
	return nil, errBoom
}

func (failingSessionStore) CloseSession(context.Context, int64, int, time.Time) error {
	return errBoom
}

func (failingSessionStore) GetSession(context.Context, int64) (*domain.Session, error) {
	return nil, errBoom
}

func (failingSessionStore) ListSessions(context.Context) ([]domain.Session, error) {
	return nil, errBoom
}

func (failingSessionStore) AppendEvent(context.Context, domain.EventInput, time.Time) (*domain.Event, error) {
	return nil, errBoom
}

func (failingSessionStore) ListEvents(context.Context) ([]domain.Event, error) {
	return nil, errBoom
}

func (failingSessionStore) ListSessionEvents(context.Context, int64) ([]domain.Event, error) {
	return nil, errBoom
}

// failingAssetStore fails writes and searches but serves terms.
type failingAssetStore struct {
	*memory.Store
}

func (failingAssetStore) Insert(context.Context, domain.AssetInput) (*domain.Asset, error) {
	return nil, errBoom
}

func (failingAssetStore) Search(context.Context, domain.AssetQuery) ([]domain.Asset, error) {
	return nil, errBoom
}

// cancelOnInsert cancels the caller's context as soon as an insert commits.
type cancelOnInsert struct {
	*memory.Store
	cancel context.CancelFunc
}

func (c cancelOnInsert) Insert(ctx context.Context, in domain.AssetInput) (*domain.Asset, error) {
	asset, err := c.Store.Insert(ctx, in)
	c.cancel()
	return asset, err
}
