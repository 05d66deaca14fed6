package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// SessionStore persists sessions and their events.
// Sessions support exactly one update (Close); events are insert-only.
type SessionStore interface {
	// CreateSession inserts an open session and returns it with its id.
	CreateSession(ctx context.Context, label string, stressBefore int, startedAt time.Time) (*domain.Session, error)

	// CloseSession sets ended_at and stress_after.
	// Returns domain.ErrNotFound for an unknown id and
	// domain.ErrSessionClosed if the session was already closed.
	CloseSession(ctx context.Context, id int64, stressAfter int, endedAt time.Time) error

	// GetSession retrieves a session by id. Returns domain.ErrNotFound on a miss.
	GetSession(ctx context.Context, id int64) (*domain.Session, error)

	// ListSessions returns all sessions in creation order.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// AppendEvent inserts an event. The referenced session is not checked.
	AppendEvent(ctx context.Context, in domain.EventInput, ts time.Time) (*domain.Event, error)

	// ListEvents returns all events in creation order.
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// ListSessionEvents returns the events of one session in creation order.
	ListSessionEvents(ctx context.Context, sessionID int64) ([]domain.Event, error)
}
