package driving

import (
	"context"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// MetricsService derives KPIs and chart series from tracked sessions.
// Results are recomputed on every call.
type MetricsService interface {
	// Dashboard returns the summary and both chart series.
	Dashboard(ctx context.Context) (*domain.Dashboard, error)

	// PhaseThroughput returns per-phase seconds for the most recent session.
	PhaseThroughput(ctx context.Context) ([]domain.PhasePoint, error)

	// SessionPerformance returns one point per session in creation order.
	SessionPerformance(ctx context.Context) ([]domain.SessionPoint, error)
}
