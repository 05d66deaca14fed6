package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ripple-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// Default file names for exported artifacts.
const (
	SnapshotFileName = "ripple-metrics.json"
	ReportFileName   = "ripple-metrics.html"
)

// ExportService serialises the data model.
type ExportService struct {
	assets   driven.AssetStore
	sessions driven.SessionStore
	renderer driven.ReportRenderer
	now      func() time.Time
}

// NewExportService creates a new export service.
func NewExportService(
	assets driven.AssetStore,
	sessions driven.SessionStore,
	renderer driven.ReportRenderer,
) *ExportService {
	return &ExportService{
		assets:   assets,
		sessions: sessions,
		renderer: renderer,
		now:      time.Now,
	}
}

// Snapshot collects every session, event and asset.
// Assets are ordered most recent first. Empty collections are non-nil.
func (s *ExportService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	sessions, err := s.sessions.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	events, err := s.sessions.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	assets, err := s.assets.Search(ctx, domain.AssetQuery{})
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	snap := &domain.Snapshot{
		Sessions:   sessions,
		Events:     events,
		Assets:     assets,
		ExportedAt: domain.FormatExportTime(s.now()),
	}
	if snap.Sessions == nil {
		snap.Sessions = []domain.Session{}
	}
	if snap.Events == nil {
		snap.Events = []domain.Event{}
	}
	if snap.Assets == nil {
		snap.Assets = []domain.Asset{}
	}
	return snap, nil
}

// WriteSnapshot writes the snapshot as JSON indented with two spaces.
func (s *ExportService) WriteSnapshot(ctx context.Context, w io.Writer) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	logger.Debug("Exported %d sessions, %d events, %d assets",
		len(snap.Sessions), len(snap.Events), len(snap.Assets))
	return nil
}

// WriteReport renders the standalone report.
func (s *ExportService) WriteReport(ctx context.Context, w io.Writer) error {
	sessions, err := s.sessions.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	events, err := s.sessions.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	if err := s.renderer.Render(w, sessions, events); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// ReportContentType returns the MIME type of WriteReport's output.
func (s *ExportService) ReportContentType() string {
	return s.renderer.ContentType()
}
