package driving

import (
	"context"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// TrackerService manages session lifecycles and timed events directly.
// It is used for manually tracked work such as Validate or Fix phases.
type TrackerService interface {
	// StartSession opens a session and returns its id.
	StartSession(ctx context.Context, label string, stressBefore int) (int64, error)

	// EndSession closes a session. Returns domain.ErrNotFound for an
	// unknown id and domain.ErrSessionClosed when already closed.
	EndSession(ctx context.Context, id int64, stressAfter int) error

	// LogEvent appends an event. The session is not required to exist.
	LogEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error)

	// Session retrieves one session.
	Session(ctx context.Context, id int64) (*domain.Session, error)

	// Sessions returns all sessions in creation order.
	Sessions(ctx context.Context) ([]domain.Session, error)

	// Events returns all events in creation order.
	Events(ctx context.Context) ([]domain.Event, error)

	// SessionEvents returns the events logged against one session.
	SessionEvents(ctx context.Context, id int64) ([]domain.Event, error)
}
