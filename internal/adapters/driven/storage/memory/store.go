package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
)

// Ensure Store implements both storage ports.
var (
	_ driven.AssetStore   = (*Store)(nil)
	_ driven.SessionStore = (*Store)(nil)
)

// Store is an in-memory implementation of driven.AssetStore and
// driven.SessionStore.
type Store struct {
	mu sync.RWMutex

	assets     []domain.Asset
	expansions []domain.Expansion
	terms      []domain.Term
	sessions   []domain.Session
	events     []domain.Event

	lastAssetID     int64
	lastExpansionID int64
	lastSessionID   int64
	lastEventID     int64
}

// NewStore creates an in-memory store holding only the baseline terms.
func NewStore() *Store {
	terms := make([]domain.Term, len(domain.BaselineTerms))
	for i, t := range domain.BaselineTerms {
		t.ID = int64(i + 1)
		terms[i] = t
	}
	return &Store{terms: terms}
}

// AssetStore returns the store as a driven.AssetStore.
func (s *Store) AssetStore() driven.AssetStore {
	return s
}

// SessionStore returns the store as a driven.SessionStore.
func (s *Store) SessionStore() driven.SessionStore {
	return s
}

// Close is a no-op; it exists for parity with the sqlite store.
func (s *Store) Close() error {
	return nil
}

// normaliseTime drops sub-second precision and the monotonic reading so
// stored values match what the sqlite store returns.
func normaliseTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// ==================== Asset Store ====================

// Insert appends a new asset and its optional expansion.
func (s *Store) Insert(_ context.Context, in domain.AssetInput) (*domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAssetID++
	asset := domain.Asset{
		ID:         s.lastAssetID,
		Type:       domain.AssetTypeConversation,
		CreatedAt:  normaliseTime(in.CreatedAt),
		RawText:    in.RawText,
		Enrichment: in.Enrichment.Clone(),
	}
	s.assets = append(s.assets, asset)

	if in.Expansion != nil {
		s.lastExpansionID++
		exp := cloneExpansion(in.Expansion)
		exp.ID = s.lastExpansionID
		exp.AssetID = asset.ID
		exp.CreatedAt = normaliseTime(exp.CreatedAt)
		s.expansions = append(s.expansions, *exp)
	}

	return cloneAsset(&asset), nil
}

// Search returns matching assets, most recent first.
// Unlike sqlite, case folding here covers all of Unicode.
func (s *Store) Search(_ context.Context, query domain.AssetQuery) ([]domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Asset, 0, len(s.assets))
	for i := len(s.assets) - 1; i >= 0; i-- {
		if !query.Matches(&s.assets[i]) {
			continue
		}
		result = append(result, *cloneAsset(&s.assets[i]))
	}
	return result, nil
}

// Get retrieves an asset by id.
func (s *Store) Get(_ context.Context, id int64) (*domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.assets {
		if s.assets[i].ID == id {
			return cloneAsset(&s.assets[i]), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Count returns the number of stored assets.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets), nil
}

// LatestExpansion returns the newest expansion of an asset.
func (s *Store) LatestExpansion(_ context.Context, assetID int64) (*domain.Expansion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.expansions) - 1; i >= 0; i-- {
		if s.expansions[i].AssetID == assetID {
			return cloneExpansion(&s.expansions[i]), nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListTerms returns the term dictionary in id order.
func (s *Store) ListTerms(_ context.Context) ([]domain.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Term, len(s.terms))
	copy(result, s.terms)
	return result, nil
}

// ==================== Session Store ====================

// CreateSession inserts an open session.
func (s *Store) CreateSession(
	_ context.Context, label string, stressBefore int, startedAt time.Time,
) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSessionID++
	session := domain.Session{
		ID:           s.lastSessionID,
		StartedAt:    normaliseTime(startedAt),
		Label:        label,
		StressBefore: stressBefore,
	}
	s.sessions = append(s.sessions, session)
	return cloneSession(&session), nil
}

// CloseSession sets ended_at and stress_after on an open session.
func (s *Store) CloseSession(_ context.Context, id int64, stressAfter int, endedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID != id {
			continue
		}
		if !s.sessions[i].IsOpen() {
			return domain.ErrSessionClosed
		}
		ended := normaliseTime(endedAt)
		after := stressAfter
		s.sessions[i].EndedAt = &ended
		s.sessions[i].StressAfter = &after
		return nil
	}
	return domain.ErrNotFound
}

// GetSession retrieves a session by id.
func (s *Store) GetSession(_ context.Context, id int64) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return cloneSession(&s.sessions[i]), nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListSessions returns all sessions in creation order.
func (s *Store) ListSessions(_ context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Session, len(s.sessions))
	for i := range s.sessions {
		result[i] = *cloneSession(&s.sessions[i])
	}
	return result, nil
}

// AppendEvent inserts an event without checking the session reference.
func (s *Store) AppendEvent(_ context.Context, in domain.EventInput, ts time.Time) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastEventID++
	event := domain.Event{
		ID:        s.lastEventID,
		SessionID: in.SessionID,
		Timestamp: normaliseTime(ts),
		Phase:     in.Phase,
		Name:      in.Name,
		Ms:        in.Ms,
		Notes:     in.Notes,
	}
	s.events = append(s.events, event)
	return &event, nil
}

// ListEvents returns all events in creation order.
func (s *Store) ListEvents(_ context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Event, len(s.events))
	copy(result, s.events)
	return result, nil
}

// ListSessionEvents returns the events of one session in creation order.
func (s *Store) ListSessionEvents(_ context.Context, sessionID int64) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Event, 0)
	for i := range s.events {
		if s.events[i].SessionID == sessionID {
			result = append(result, s.events[i])
		}
	}
	return result, nil
}

func cloneAsset(src *domain.Asset) *domain.Asset {
	dst := *src
	dst.Enrichment = src.Enrichment.Clone()
	return &dst
}

func cloneExpansion(src *domain.Expansion) *domain.Expansion {
	dst := *src
	dst.FramedTerms = append([]domain.FramedTerm(nil), src.FramedTerms...)
	dst.Windows = append([]domain.TermWindow(nil), src.Windows...)
	return &dst
}

// cloneSession copies a session including its nullable fields.
func cloneSession(src *domain.Session) *domain.Session {
	dst := *src
	if src.EndedAt != nil {
		ended := *src.EndedAt
		dst.EndedAt = &ended
	}
	if src.StressAfter != nil {
		after := *src.StressAfter
		dst.StressAfter = &after
	}
	return &dst
}
