package domain

import "time"

const unknownDescription = "Unknown"

// StorageBackend selects the persistence implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite persists to a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendMemory keeps everything in process memory.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (durable, local file)"
	case StorageBackendMemory:
		return "Memory (lost on exit)"
	default:
		return unknownDescription
	}
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Backend is the storage implementation.
	Backend StorageBackend

	// DataDir is the directory holding the database. Empty means ~/.ripple/data.
	DataDir string
}

// TimingSettings holds the simulated work delays wrapped by each timed step.
type TimingSettings struct {
	IngestDelay time.Duration
	SearchDelay time.Duration
}

// DisplaySettings holds result rendering limits.
type DisplaySettings struct {
	// ResultLimit caps how many results are displayed.
	ResultLimit int

	// PreviewLength caps the preview of each result, in runes.
	PreviewLength int
}

// StressSettings holds default stress readings used when none are given.
type StressSettings struct {
	DefaultBefore int
	DefaultAfter  int
}

// Reading returns the defaults as a StressReading.
func (s StressSettings) Reading() StressReading {
	return StressReading{Before: s.DefaultBefore, After: s.DefaultAfter}
}

// ServerSettings holds HTTP surface configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained requests per second allowed.
	RateLimit float64

	// Burst is the maximum burst size.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage StorageSettings
	Timing  TimingSettings
	Display DisplaySettings
	Stress  StressSettings
	Server  ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
		Timing: TimingSettings{
			IngestDelay: 100 * time.Millisecond,
			SearchDelay: 50 * time.Millisecond,
		},
		Display: DisplaySettings{
			ResultLimit:   200,
			PreviewLength: 180,
		},
		Stress: StressSettings{
			DefaultBefore: 5,
			DefaultAfter:  4,
		},
		Server: ServerSettings{
			Addr:      "127.0.0.1:8421",
			RateLimit: 20,
			Burst:     40,
		},
	}
}

// Validate checks settings for consistency.
func (s AppSettings) Validate() error {
	if !s.Storage.Backend.IsValid() {
		return ErrUnsupportedBackend
	}
	if s.Timing.IngestDelay < 0 || s.Timing.SearchDelay < 0 {
		return ErrNegativeDuration
	}
	if s.Display.ResultLimit < 0 || s.Display.PreviewLength < 0 {
		return ErrInvalidInput
	}
	if err := s.Stress.Reading().Validate(); err != nil {
		return err
	}
	if s.Server.RateLimit < 0 || s.Server.Burst < 0 {
		return ErrInvalidInput
	}
	return nil
}
