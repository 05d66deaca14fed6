package metrics

import (
	"fmt"
	"math"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// AverageEventDuration returns the arithmetic mean of ms across events,
// or 0 when there are none.
func AverageEventDuration(events []domain.Event) float64 {
	if len(events) == 0 {
		return 0
	}
	var total int64
	for i := range events {
		total += events[i].Ms
	}
	return float64(total) / float64(len(events))
}

// AverageStressReduction returns the mean of stress_before - stress_after
// over completed sessions (non-null stress_after). Open sessions are
// ignored; the result is 0 when no session is completed.
func AverageStressReduction(sessions []domain.Session) float64 {
	var total, completed int
	for i := range sessions {
		delta, ok := sessions[i].StressDelta()
		if !ok {
			continue
		}
		total += delta
		completed++
	}
	if completed == 0 {
		return 0
	}
	return float64(total) / float64(completed)
}

// PhaseThroughput sums the event time of one session per phase, in the
// given phase order, and converts it to seconds. It always returns
// exactly len(phases) points; phases without events yield 0.
func PhaseThroughput(session domain.Session, events []domain.Event, phases []domain.Phase) []domain.PhasePoint {
	totals := make(map[domain.Phase]int64, len(phases))
	for i := range events {
		if events[i].SessionID == session.ID {
			totals[events[i].Phase] += events[i].Ms
		}
	}

	points := make([]domain.PhasePoint, len(phases))
	for i, phase := range phases {
		points[i] = domain.PhasePoint{
			Phase:   phase,
			Seconds: float64(totals[phase]) / 1000,
		}
	}
	return points
}

// LastSessionThroughput applies PhaseThroughput to the most recently
// created session. It returns nil when there are no sessions.
func LastSessionThroughput(sessions []domain.Session, events []domain.Event, phases []domain.Phase) []domain.PhasePoint {
	if len(sessions) == 0 {
		return nil
	}
	return PhaseThroughput(sessions[len(sessions)-1], events, phases)
}

// SessionPerformanceSeries returns one point per session in creation
// order. Each point carries the session's Fix-phase time rounded to
// whole seconds and its stress delta. Open sessions keep their index
// but have no delta and are labelled "S{i} (open)".
func SessionPerformanceSeries(sessions []domain.Session, events []domain.Event) []domain.SessionPoint {
	fixMs := make(map[int64]int64, len(sessions))
	for i := range events {
		if events[i].Phase == domain.PhaseFix {
			fixMs[events[i].SessionID] += events[i].Ms
		}
	}

	points := make([]domain.SessionPoint, len(sessions))
	for i := range sessions {
		index := i + 1
		point := domain.SessionPoint{
			Index:       index,
			SessionID:   sessions[i].ID,
			CodeSeconds: int64(math.Round(float64(fixMs[sessions[i].ID]) / 1000)),
		}
		if delta, ok := sessions[i].StressDelta(); ok {
			d := delta
			point.StressDelta = &d
			point.Label = fmt.Sprintf("S%d (Δ%d)", index, delta)
		} else {
			point.Label = fmt.Sprintf("S%d (open)", index)
		}
		points[i] = point
	}
	return points
}

// Summarize computes the KPI panel values. The average response time is
// truncated to whole milliseconds.
func Summarize(sessions []domain.Session, events []domain.Event, itemsStored int) domain.Summary {
	return domain.Summary{
		TotalSessions:      len(sessions),
		ItemsStored:        itemsStored,
		AvgResponseMs:      int64(AverageEventDuration(events)),
		AvgStressReduction: AverageStressReduction(sessions),
	}
}

// BuildDashboard assembles the summary and both chart series.
func BuildDashboard(sessions []domain.Session, events []domain.Event, itemsStored int) domain.Dashboard {
	dash := domain.Dashboard{
		Summary:     Summarize(sessions, events, itemsStored),
		Throughput:  LastSessionThroughput(sessions, events, domain.ChartPhases),
		Performance: SessionPerformanceSeries(sessions, events),
	}
	if len(sessions) > 0 {
		last := sessions[len(sessions)-1]
		dash.LastSession = &last
	}
	return dash
}
