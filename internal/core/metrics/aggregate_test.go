package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

func intPtr(v int) *int { return &v }

func closedSession(id int64, before, after int) domain.Session {
	ended := time.Unix(1000+id, 0).UTC()
	return domain.Session{
		ID:           id,
		StartedAt:    time.Unix(1000, 0).UTC(),
		EndedAt:      &ended,
		Label:        "Test",
		StressBefore: before,
		StressAfter:  intPtr(after),
	}
}

func openSession(id int64, before int) domain.Session {
	return domain.Session{ID: id, StartedAt: time.Unix(1000, 0).UTC(), Label: "Test", StressBefore: before}
}

func TestAverageEventDuration(t *testing.T) {
	t.Run("empty is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, AverageEventDuration(nil))
		assert.Equal(t, 0.0, AverageEventDuration([]domain.Event{}))
	})

	t.Run("mean of durations", func(t *testing.T) {
		events := []domain.Event{{Ms: 10}, {Ms: 20}}
		assert.Equal(t, 15.0, AverageEventDuration(events))
	})

	t.Run("fractional mean", func(t *testing.T) {
		events := []domain.Event{{Ms: 1}, {Ms: 2}}
		assert.Equal(t, 1.5, AverageEventDuration(events))
	})
}

func TestAverageStressReduction(t *testing.T) {
	t.Run("ignores sessions without stress_after", func(t *testing.T) {
		sessions := []domain.Session{closedSession(1, 5, 4), openSession(2, 6)}
		assert.Equal(t, 1.0, AverageStressReduction(sessions))
	})

	t.Run("no completed sessions is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, AverageStressReduction([]domain.Session{openSession(1, 9)}))
		assert.Equal(t, 0.0, AverageStressReduction(nil))
	})

	t.Run("negative reductions count", func(t *testing.T) {
		sessions := []domain.Session{closedSession(1, 2, 6), closedSession(2, 8, 4)}
		assert.Equal(t, 0.0, AverageStressReduction(sessions))
	})

	t.Run("mean over completed", func(t *testing.T) {
		sessions := []domain.Session{closedSession(1, 5, 4), closedSession(2, 7, 5)}
		assert.Equal(t, 1.5, AverageStressReduction(sessions))
	})
}

func TestPhaseThroughput(t *testing.T) {
	t.Run("single ingest event", func(t *testing.T) {
		session := closedSession(1, 5, 4)
		events := []domain.Event{{SessionID: 1, Phase: domain.PhaseIngest, Ms: 2500}}

		points := PhaseThroughput(session, events, domain.ChartPhases)

		assert.Equal(t, []domain.PhasePoint{
			{Phase: domain.PhaseSearch, Seconds: 0},
			{Phase: domain.PhaseIngest, Seconds: 2.5},
			{Phase: domain.PhaseValidate, Seconds: 0},
			{Phase: domain.PhaseFix, Seconds: 0},
		}, points)
	})

	t.Run("only counts the given session", func(t *testing.T) {
		session := closedSession(2, 5, 4)
		events := []domain.Event{
			{SessionID: 1, Phase: domain.PhaseFix, Ms: 9000},
			{SessionID: 2, Phase: domain.PhaseFix, Ms: 500},
			{SessionID: 2, Phase: domain.PhaseFix, Ms: 250},
			{SessionID: 2, Phase: domain.PhaseSearch, Ms: 100},
		}

		points := PhaseThroughput(session, events, domain.ChartPhases)

		require.Len(t, points, 4)
		assert.Equal(t, 0.1, points[0].Seconds)
		assert.Equal(t, 0.75, points[3].Seconds)
	})

	t.Run("follows phase order not event order", func(t *testing.T) {
		session := closedSession(1, 5, 4)
		events := []domain.Event{
			{SessionID: 1, Phase: "Review", Ms: 1000},
			{SessionID: 1, Phase: domain.PhaseFix, Ms: 2000},
		}
		phases := []domain.Phase{domain.PhaseFix, "Review", "Missing"}

		points := PhaseThroughput(session, events, phases)

		assert.Equal(t, []domain.PhasePoint{
			{Phase: domain.PhaseFix, Seconds: 2},
			{Phase: "Review", Seconds: 1},
			{Phase: "Missing", Seconds: 0},
		}, points)
	})

	t.Run("empty phase list", func(t *testing.T) {
		points := PhaseThroughput(closedSession(1, 5, 4), nil, nil)
		assert.Empty(t, points)
	})
}

func TestLastSessionThroughput(t *testing.T) {
	assert.Nil(t, LastSessionThroughput(nil, nil, domain.ChartPhases))

	sessions := []domain.Session{closedSession(1, 5, 4), closedSession(2, 5, 4)}
	events := []domain.Event{
		{SessionID: 1, Phase: domain.PhaseSearch, Ms: 4000},
		{SessionID: 2, Phase: domain.PhaseSearch, Ms: 50},
	}

	points := LastSessionThroughput(sessions, events, domain.ChartPhases)
	require.Len(t, points, 4)
	assert.Equal(t, 0.05, points[0].Seconds)
}

func TestSessionPerformanceSeries(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, SessionPerformanceSeries(nil, nil))
	})

	t.Run("fix seconds rounded and labelled", func(t *testing.T) {
		sessions := []domain.Session{
			closedSession(10, 5, 4),
			closedSession(11, 3, 6),
		}
		events := []domain.Event{
			{SessionID: 10, Phase: domain.PhaseFix, Ms: 1499},
			{SessionID: 10, Phase: domain.PhaseIngest, Ms: 8000},
			{SessionID: 11, Phase: domain.PhaseFix, Ms: 1500},
			{SessionID: 11, Phase: domain.PhaseFix, Ms: 1000},
		}

		points := SessionPerformanceSeries(sessions, events)

		require.Len(t, points, 2)
		assert.Equal(t, 1, points[0].Index)
		assert.Equal(t, int64(10), points[0].SessionID)
		assert.Equal(t, int64(1), points[0].CodeSeconds)
		require.NotNil(t, points[0].StressDelta)
		assert.Equal(t, 1, *points[0].StressDelta)
		assert.Equal(t, "S1 (Δ1)", points[0].Label)

		assert.Equal(t, 2, points[1].Index)
		assert.Equal(t, int64(3), points[1].CodeSeconds)
		assert.Equal(t, -3, *points[1].StressDelta)
		assert.Equal(t, "S2 (Δ-3)", points[1].Label)
	})

	t.Run("open session keeps its index without a delta", func(t *testing.T) {
		sessions := []domain.Session{closedSession(1, 5, 4), openSession(2, 7), closedSession(3, 6, 6)}

		points := SessionPerformanceSeries(sessions, nil)

		require.Len(t, points, 3)
		assert.Nil(t, points[1].StressDelta)
		assert.Equal(t, "S2 (open)", points[1].Label)
		assert.Equal(t, "S3 (Δ0)", points[2].Label)
	})
}

func TestSummarize(t *testing.T) {
	sessions := []domain.Session{closedSession(1, 5, 4), closedSession(2, 6, 4), openSession(3, 5)}
	events := []domain.Event{{Ms: 101}, {Ms: 52}}

	summary := Summarize(sessions, events, 7)

	assert.Equal(t, 3, summary.TotalSessions)
	assert.Equal(t, 7, summary.ItemsStored)
	assert.Equal(t, int64(76), summary.AvgResponseMs)
	assert.Equal(t, 1.5, summary.AvgStressReduction)
}

func TestBuildDashboard(t *testing.T) {
	t.Run("no sessions", func(t *testing.T) {
		dash := BuildDashboard(nil, nil, 0)
		assert.Nil(t, dash.LastSession)
		assert.Nil(t, dash.Throughput)
		assert.Empty(t, dash.Performance)
		assert.Equal(t, 0, dash.Summary.TotalSessions)
	})

	t.Run("uses last session", func(t *testing.T) {
		sessions := []domain.Session{closedSession(1, 5, 4), closedSession(2, 5, 4)}
		events := []domain.Event{{SessionID: 2, Phase: domain.PhaseValidate, Ms: 3000}}

		dash := BuildDashboard(sessions, events, 2)

		require.NotNil(t, dash.LastSession)
		assert.Equal(t, int64(2), dash.LastSession.ID)
		assert.Equal(t, 3.0, dash.Throughput[2].Seconds)
		assert.Len(t, dash.Performance, 2)
	})
}
