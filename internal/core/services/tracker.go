package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ripple-cli/internal/logger"
)

// Ensure TrackerService implements the interface.
var _ driving.TrackerService = (*TrackerService)(nil)

// TrackerService manages session lifecycles and events.
type TrackerService struct {
	store driven.SessionStore
	now   func() time.Time
}

// NewTrackerService creates a new tracker service.
func NewTrackerService(store driven.SessionStore) *TrackerService {
	return &TrackerService{
		store: store,
		now:   time.Now,
	}
}

// StartSession opens a session and returns its id.
func (s *TrackerService) StartSession(ctx context.Context, label string, stressBefore int) (int64, error) {
	if err := domain.ValidateStress(stressBefore); err != nil {
		return 0, err
	}

	session, err := s.store.CreateSession(ctx, label, stressBefore, s.now())
	if err != nil {
		return 0, fmt.Errorf("start session: %w", err)
	}
	logger.Debug("Session %d started (%s, stress %d)", session.ID, label, stressBefore)
	return session.ID, nil
}

// EndSession closes an open session with the closing stress reading.
func (s *TrackerService) EndSession(ctx context.Context, id int64, stressAfter int) error {
	if err := domain.ValidateStress(stressAfter); err != nil {
		return err
	}

	if err := s.store.CloseSession(ctx, id, stressAfter, s.now()); err != nil {
		return fmt.Errorf("end session %d: %w", id, err)
	}
	logger.Debug("Session %d ended (stress %d)", id, stressAfter)
	return nil
}

// LogEvent appends an event to the given session.
func (s *TrackerService) LogEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	event, err := s.store.AppendEvent(ctx, in, s.now())
	if err != nil {
		return nil, fmt.Errorf("log event: %w", err)
	}
	return event, nil
}

// Session retrieves one session.
func (s *TrackerService) Session(ctx context.Context, id int64) (*domain.Session, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return session, nil
}

// Sessions returns all sessions in creation order.
func (s *TrackerService) Sessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Events returns all events in creation order.
func (s *TrackerService) Events(ctx context.Context) ([]domain.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// SessionEvents returns the events of one session.
func (s *TrackerService) SessionEvents(ctx context.Context, id int64) ([]domain.Event, error) {
	events, err := s.store.ListSessionEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list events of session %d: %w", id, err)
	}
	return events, nil
}
