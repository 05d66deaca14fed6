package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ripple-cli/internal/logger"
)

// Recorder measures named steps and logs them as events against its
// current session.
type Recorder struct {
	mu        sync.Mutex
	store     driven.SessionStore
	sessionID int64
	starts    map[string]time.Time
	now       func() time.Time
}

// NewRecorder creates a recorder with no active session.
func NewRecorder(store driven.SessionStore) *Recorder {
	return &Recorder{
		store:  store,
		starts: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Bind sets the session that subsequent events are logged to.
// A zero id clears the active session.
func (r *Recorder) Bind(sessionID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionID = sessionID
}

// SessionID returns the active session, or 0.
func (r *Recorder) SessionID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

// Begin captures the start instant for key, replacing any earlier one.
func (r *Recorder) Begin(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts[key] = r.now()
}

// End logs the time elapsed since Begin(key), rounded to the nearest
// millisecond. It returns nil without logging when key was never begun
// or no session is bound.
func (r *Recorder) End(ctx context.Context, key string, phase domain.Phase, name, notes string) (*domain.Event, error) {
	r.mu.Lock()
	start, ok := r.starts[key]
	delete(r.starts, key)
	sessionID := r.sessionID
	end := r.now()
	r.mu.Unlock()

	if !ok || sessionID == 0 {
		logger.Debug("Recorder: no timer or session for %q, skipping", key)
		return nil, nil
	}

	ms := end.Sub(start).Round(time.Millisecond).Milliseconds()
	if ms < 0 {
		ms = 0
	}

	event, err := r.store.AppendEvent(ctx, domain.EventInput{
		SessionID: sessionID,
		Phase:     phase,
		Name:      name,
		Ms:        ms,
		Notes:     notes,
	}, end)
	if err != nil {
		return nil, fmt.Errorf("log %s event: %w", phase, err)
	}
	logger.Debug("Event %s/%s: %dms (%s)", phase, name, ms, notes)
	return event, nil
}
