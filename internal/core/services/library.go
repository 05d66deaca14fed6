package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/enrich"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ripple-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// Event names and notes written by the tracked operations.
const (
	EventRawText  = "raw_text"
	EventSeedRow  = "seed_row"
	EventPostSeed = "post_seed"
	EventAllQuery = "(all)"
	NotesInitial  = "initial"
)

// Stress readings recorded around the seed session.
const (
	seedStressBefore = 5
	seedStressAfter  = 4
)

// SampleTexts are the fixed entries inserted by Seed, in insertion order.
var SampleTexts = []string{
	"Machine learning is a subset of AI that learns patterns from data.",
	"Python is widely used for data science, web dev, and automation.",
	"Ripple app demonstrates local-first principles and offline metrics.",
	"SQLite is perfect for embedded/local apps; zero server required.",
	"React and Streamlit can both drive rich UI for the same knowledge base.",
}

// LibraryService runs ingest, search and seed inside tracked sessions.
type LibraryService struct {
	assets   driven.AssetStore
	sessions driven.SessionStore
	timing   domain.TimingSettings
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewLibraryService creates a new library service. The timing settings
// pad each timed step so durations are visible on the charts.
func NewLibraryService(
	assets driven.AssetStore,
	sessions driven.SessionStore,
	timing domain.TimingSettings,
) *LibraryService {
	return &LibraryService{
		assets:   assets,
		sessions: sessions,
		timing:   timing,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Ingest enriches and stores text inside an "Ingest" session.
//
// The padding delay runs before the insert, so a cancelled ctx leaves
// nothing stored. Once the insert commits, cancellation is ignored and
// the event and session close are still written.
func (s *LibraryService) Ingest(ctx context.Context, text string, stress domain.StressReading) (*domain.Asset, error) {
	logger.Section("Ingest")

	text = strings.TrimSpace(text)
	if err := domain.ValidateText(text); err != nil {
		return nil, err
	}
	if err := stress.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.open(ctx, domain.LabelIngest, stress.Before)
	if err != nil {
		return nil, err
	}

	rec.Begin(EventRawText)
	if err := s.sleep(ctx, s.timing.IngestDelay); err != nil {
		return nil, s.abort(ctx, rec, stress.After, err)
	}
	in, err := s.enrich(ctx, text)
	if err != nil {
		return nil, s.abort(ctx, rec, stress.After, err)
	}
	asset, err := s.assets.Insert(ctx, in)
	if err != nil {
		return nil, s.abort(ctx, rec, stress.After, fmt.Errorf("insert asset: %w", err))
	}

	ctx = context.WithoutCancel(ctx)
	notes := fmt.Sprintf("len=%d", utf8.RuneCountInString(text))
	if _, err := rec.End(ctx, EventRawText, domain.PhaseIngest, EventRawText, notes); err != nil {
		return nil, s.abort(ctx, rec, stress.After, err)
	}

	if err := s.close(ctx, rec, stress.After); err != nil {
		return nil, err
	}
	logger.Debug("Ingested asset %d (%s, %d metaphors)", asset.ID, notes, len(asset.Metaphors))
	return asset, nil
}

// Search finds assets inside a "Search" session. Filter tokens in
// query are parsed by domain.ParseQuery.
func (s *LibraryService) Search(
	ctx context.Context, query string, stress domain.StressReading,
) (*domain.SearchResult, error) {
	logger.Section("Search")
	logger.Debug("Query: %q", query)

	if err := stress.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.open(ctx, domain.LabelSearch, stress.Before)
	if err != nil {
		return nil, err
	}

	rec.Begin(domain.LabelSearch)
	if err := s.sleep(ctx, s.timing.SearchDelay); err != nil {
		return nil, s.abort(ctx, rec, stress.After, err)
	}
	parsed := domain.ParseQuery(query)
	assets, err := s.assets.Search(ctx, parsed)
	if err != nil {
		return nil, s.abort(ctx, rec, stress.After, fmt.Errorf("search assets: %w", err))
	}

	name := query
	if strings.TrimSpace(query) == "" {
		name = EventAllQuery
	}
	notes := fmt.Sprintf("hits=%d", len(assets))
	if _, err := rec.End(ctx, domain.LabelSearch, domain.PhaseSearch, name, notes); err != nil {
		return nil, s.abort(ctx, rec, stress.After, err)
	}

	if err := s.close(ctx, rec, stress.After); err != nil {
		return nil, err
	}
	logger.Debug("Search %q: %s", name, notes)

	return &domain.SearchResult{
		Query:     query,
		Assets:    assets,
		SessionID: rec.SessionID(),
	}, nil
}

// Seed inserts SampleTexts inside one "Seed" session. Cancellation is
// only honoured before the first insert.
func (s *LibraryService) Seed(ctx context.Context) (*domain.Session, error) {
	logger.Section("Seed")

	rec, err := s.open(ctx, domain.LabelSeed, seedStressBefore)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, s.abort(ctx, rec, seedStressAfter, err)
	}
	ctx = context.WithoutCancel(ctx)

	rec.Begin(EventPostSeed)
	for _, text := range SampleTexts {
		rec.Begin(EventSeedRow)
		in, err := s.enrich(ctx, text)
		if err != nil {
			return nil, s.abort(ctx, rec, seedStressAfter, err)
		}
		if _, err := s.assets.Insert(ctx, in); err != nil {
			return nil, s.abort(ctx, rec, seedStressAfter, fmt.Errorf("insert sample: %w", err))
		}
		notes := fmt.Sprintf("len=%d", utf8.RuneCountInString(text))
		if _, err := rec.End(ctx, EventSeedRow, domain.PhaseIngest, EventSeedRow, notes); err != nil {
			return nil, s.abort(ctx, rec, seedStressAfter, err)
		}
	}
	if _, err := rec.End(ctx, EventPostSeed, domain.PhaseSearch, EventPostSeed, NotesInitial); err != nil {
		return nil, s.abort(ctx, rec, seedStressAfter, err)
	}

	if err := s.close(ctx, rec, seedStressAfter); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetSession(ctx, rec.SessionID())
	if err != nil {
		return nil, fmt.Errorf("get seed session: %w", err)
	}
	logger.Debug("Seeded %d samples in session %d", len(SampleTexts), session.ID)
	return session, nil
}

// Get retrieves one asset.
func (s *LibraryService) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	asset, err := s.assets.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get asset %d: %w", id, err)
	}
	return asset, nil
}

// Count returns the number of stored assets.
func (s *LibraryService) Count(ctx context.Context) (int, error) {
	n, err := s.assets.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}
	return n, nil
}

// Expansion returns the newest expansion of an asset.
func (s *LibraryService) Expansion(ctx context.Context, assetID int64) (*domain.Expansion, error) {
	exp, err := s.assets.LatestExpansion(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("get expansion of asset %d: %w", assetID, err)
	}
	return exp, nil
}

// Terms returns the term dictionary.
func (s *LibraryService) Terms(ctx context.Context) ([]domain.Term, error) {
	terms, err := s.assets.ListTerms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// enrich builds the stored form of text: its enrichment and, when a cue
// matched, the expansion framed against the current term dictionary.
func (s *LibraryService) enrich(ctx context.Context, text string) (domain.AssetInput, error) {
	terms, err := s.assets.ListTerms(ctx)
	if err != nil {
		return domain.AssetInput{}, fmt.Errorf("load terms: %w", err)
	}
	now := s.now()
	e := enrich.Analyze(text)
	exp := enrich.Expand(text, e, terms)
	if exp != nil {
		exp.CreatedAt = now
	}
	return domain.AssetInput{RawText: text, CreatedAt: now, Enrichment: e, Expansion: exp}, nil
}

// open creates a session and a recorder bound to it.
func (s *LibraryService) open(ctx context.Context, label string, stressBefore int) (*Recorder, error) {
	session, err := s.sessions.CreateSession(ctx, label, stressBefore, s.now())
	if err != nil {
		return nil, fmt.Errorf("start %s session: %w", label, err)
	}
	rec := NewRecorder(s.sessions)
	rec.now = s.now
	rec.Bind(session.ID)
	return rec, nil
}

func (s *LibraryService) close(ctx context.Context, rec *Recorder, stressAfter int) error {
	if err := s.sessions.CloseSession(ctx, rec.SessionID(), stressAfter, s.now()); err != nil {
		return fmt.Errorf("end session %d: %w", rec.SessionID(), err)
	}
	return nil
}

// abort closes a session whose operation failed, so no session is left
// open. The close ignores ctx cancellation; cause is returned unchanged.
func (s *LibraryService) abort(ctx context.Context, rec *Recorder, stressAfter int, cause error) error {
	if err := s.close(context.WithoutCancel(ctx), rec, stressAfter); err != nil {
		logger.Warn("Closing aborted session %d: %v", rec.SessionID(), err)
	}
	return cause
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
