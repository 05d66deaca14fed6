package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/metrics"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

// Ensure MetricsService implements the interface.
var _ driving.MetricsService = (*MetricsService)(nil)

// MetricsService loads tracked state and hands it to the aggregator.
type MetricsService struct {
	assets   driven.AssetStore
	sessions driven.SessionStore
}

// NewMetricsService creates a new metrics service.
func NewMetricsService(assets driven.AssetStore, sessions driven.SessionStore) *MetricsService {
	return &MetricsService{assets: assets, sessions: sessions}
}

// Dashboard returns the summary and both chart series.
func (s *MetricsService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	sessions, events, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.assets.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count assets: %w", err)
	}

	dash := metrics.BuildDashboard(sessions, events, count)
	return &dash, nil
}

// PhaseThroughput returns per-phase seconds for the most recent session.
func (s *MetricsService) PhaseThroughput(ctx context.Context) ([]domain.PhasePoint, error) {
	sessions, events, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.LastSessionThroughput(sessions, events, domain.ChartPhases), nil
}

// SessionPerformance returns one point per session.
func (s *MetricsService) SessionPerformance(ctx context.Context) ([]domain.SessionPoint, error) {
	sessions, events, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.SessionPerformanceSeries(sessions, events), nil
}

func (s *MetricsService) load(ctx context.Context) ([]domain.Session, []domain.Event, error) {
	sessions, err := s.sessions.ListSessions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list sessions: %w", err)
	}
	events, err := s.sessions.ListEvents(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list events: %w", err)
	}
	return sessions, events, nil
}
