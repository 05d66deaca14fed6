package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

const sessionColumns = "id, started_at, ended_at, label, stress_before, stress_after"

const eventColumns = "id, session_id, ts, phase, name, ms, notes"

// CreateSession inserts an open session.
func (s *sessionStore) CreateSession(
	ctx context.Context, label string, stressBefore int, startedAt time.Time,
) (*domain.Session, error) {
	session := domain.Session{
		StartedAt:    fromUnix(toUnix(startedAt)),
		Label:        label,
		StressBefore: stressBefore,
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO metrics_sessions (started_at, label, stress_before) VALUES (?, ?, ?)
	`, toUnix(session.StartedAt), session.Label, session.StressBefore)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}

	session.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading session id: %w", err)
	}
	return &session, nil
}

// CloseSession sets ended_at and stress_after on an open session.
func (s *sessionStore) CloseSession(ctx context.Context, id int64, stressAfter int, endedAt time.Time) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE metrics_sessions SET ended_at = ?, stress_after = ?
		WHERE id = ? AND ended_at IS NULL
	`, toUnix(endedAt), stressAfter, id)
	if err != nil {
		return fmt.Errorf("closing session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM metrics_sessions WHERE id = ?", id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("checking session: %w", err)
		}
		return domain.ErrSessionClosed
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session close: %w", err)
	}
	return nil
}

// GetSession retrieves a session by id.
func (s *sessionStore) GetSession(ctx context.Context, id int64) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM metrics_sessions WHERE id = ?", id)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return session, err
}

// ListSessions returns all sessions in creation order.
func (s *sessionStore) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM metrics_sessions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// AppendEvent inserts an event. The session reference is not checked.
func (s *sessionStore) AppendEvent(ctx context.Context, in domain.EventInput, ts time.Time) (*domain.Event, error) {
	event := domain.Event{
		SessionID: in.SessionID,
		Timestamp: fromUnix(toUnix(ts)),
		Phase:     in.Phase,
		Name:      in.Name,
		Ms:        in.Ms,
		Notes:     in.Notes,
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO metrics_events (session_id, ts, phase, name, ms, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, event.SessionID, toUnix(event.Timestamp), string(event.Phase), event.Name, event.Ms,
		nullString(event.Notes))
	if err != nil {
		return nil, fmt.Errorf("inserting event: %w", err)
	}

	event.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading event id: %w", err)
	}
	return &event, nil
}

// ListEvents returns all events in creation order.
func (s *sessionStore) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM metrics_events ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return collectEvents(rows)
}

// ListSessionEvents returns the events of one session in creation order.
func (s *sessionStore) ListSessionEvents(ctx context.Context, sessionID int64) ([]domain.Event, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM metrics_events WHERE session_id = ? ORDER BY id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session events: %w", err)
	}
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]domain.Event, error) {
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		var ts int64
		var phase string
		var notes sql.NullString
		if err := rows.Scan(&event.ID, &event.SessionID, &ts, &phase, &event.Name, &event.Ms, &notes); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		event.Timestamp = fromUnix(ts)
		event.Phase = domain.Phase(phase)
		event.Notes = notes.String
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func scanSession(row scanner) (*domain.Session, error) {
	var session domain.Session
	var startedAt int64
	var endedAt, stressAfter sql.NullInt64
	if err := row.Scan(&session.ID, &startedAt, &endedAt, &session.Label,
		&session.StressBefore, &stressAfter); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	session.StartedAt = fromUnix(startedAt)
	if endedAt.Valid {
		ended := fromUnix(endedAt.Int64)
		session.EndedAt = &ended
	}
	if stressAfter.Valid {
		after := int(stressAfter.Int64)
		session.StressAfter = &after
	}
	return &session, nil
}
