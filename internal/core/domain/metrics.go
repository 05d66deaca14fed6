package domain

// PhasePoint is one point of the phase throughput series.
type PhasePoint struct {
	Phase   Phase   `json:"phase"`
	Seconds float64 `json:"seconds"`
}

// SessionPoint is one point of the session performance series.
type SessionPoint struct {
	// Index is the 1-based position of the session in creation order.
	Index int `json:"index"`

	// SessionID identifies the session the point was derived from.
	SessionID int64 `json:"session_id"`

	// CodeSeconds is the Fix-phase time rounded to whole seconds.
	CodeSeconds int64 `json:"code_seconds"`

	// StressDelta is stress_before - stress_after; nil while the session is open.
	StressDelta *int `json:"stress_delta"`

	// Label is the chart label, e.g. "S3 (Δ1)".
	Label string `json:"label"`
}

// Summary holds the KPI panel values.
type Summary struct {
	TotalSessions      int     `json:"total_sessions"`
	ItemsStored        int     `json:"items_stored"`
	AvgResponseMs      int64   `json:"avg_response_ms"`
	AvgStressReduction float64 `json:"avg_stress_reduction"`
}

// Dashboard bundles everything needed to render the metrics panel.
type Dashboard struct {
	Summary     Summary        `json:"summary"`
	LastSession *Session       `json:"last_session,omitempty"`
	Throughput  []PhasePoint   `json:"throughput"`
	Performance []SessionPoint `json:"performance"`
}
