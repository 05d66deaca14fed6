package domain

import "time"

// Stress readings are integers on a fixed scale.
const (
	MinStress = 0
	MaxStress = 10
)

// ValidateStress checks that a stress reading lies within [MinStress, MaxStress].
func ValidateStress(level int) error {
	if level < MinStress || level > MaxStress {
		return ErrInvalidStress
	}
	return nil
}

// Session labels used by the built-in operations.
const (
	LabelIngest = "Ingest"
	LabelSearch = "Search"
	LabelSeed   = "Seed"
)

// Session is a bounded span representing one user-initiated operation.
// A session is open until EndedAt is set; it is closed exactly once.
type Session struct {
	ID           int64      `json:"id"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at"`
	Label        string     `json:"label"`
	StressBefore int        `json:"stress_before"`
	StressAfter  *int       `json:"stress_after"`
}

// IsOpen reports whether the session has not been closed yet.
func (s *Session) IsOpen() bool {
	return s.EndedAt == nil
}

// IsCompleted reports whether a closing stress reading was recorded.
func (s *Session) IsCompleted() bool {
	return s.StressAfter != nil
}

// StressDelta returns stress_before - stress_after.
// The boolean is false when the session has no closing reading.
func (s *Session) StressDelta() (int, bool) {
	if s.StressAfter == nil {
		return 0, false
	}
	return s.StressBefore - *s.StressAfter, true
}

// Duration returns the wall-clock span of a closed session, or zero while open.
func (s *Session) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Phase is a free-form category tag on an event.
type Phase string

// Conventional phases.
const (
	PhaseSearch   Phase = "Search"
	PhaseIngest   Phase = "Ingest"
	PhaseValidate Phase = "Validate"
	PhaseFix      Phase = "Fix"
)

// ChartPhases is the fixed x-axis order of the phase throughput chart.
var ChartPhases = []Phase{PhaseSearch, PhaseIngest, PhaseValidate, PhaseFix}

// String returns the string representation.
func (p Phase) String() string {
	return string(p)
}

// Event is one timed sub-step within a session.
// SessionID is a non-owning reference; it is not required to resolve.
type Event struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	Timestamp time.Time `json:"ts"`
	Phase     Phase     `json:"phase"`
	Name      string    `json:"name"`
	Ms        int64     `json:"ms"`
	Notes     string    `json:"notes,omitempty"`
}

// Duration returns the measured cost of the step.
func (e *Event) Duration() time.Duration {
	return time.Duration(e.Ms) * time.Millisecond
}

// EventInput carries the caller-supplied fields of a new event.
type EventInput struct {
	SessionID int64
	Phase     Phase
	Name      string
	Ms        int64
	Notes     string
}

// Validate checks the input for a new event. Only the duration is
// constrained; the session reference is deliberately not checked.
func (in EventInput) Validate() error {
	if in.Ms < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// StressReading is the pair of readings captured around a user operation.
type StressReading struct {
	Before int
	After  int
}

// Validate checks both readings.
func (r StressReading) Validate() error {
	if err := ValidateStress(r.Before); err != nil {
		return err
	}
	return ValidateStress(r.After)
}
