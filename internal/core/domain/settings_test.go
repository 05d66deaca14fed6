package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStorageBackend_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		backend  StorageBackend
		expected bool
	}{
		{"sqlite is valid", StorageBackendSQLite, true},
		{"memory is valid", StorageBackendMemory, true},
		{"empty is invalid", StorageBackend(""), false},
		{"unknown is invalid", StorageBackend("postgres"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.backend.IsValid())
		})
	}
}

func TestStorageBackend_Description(t *testing.T) {
	assert.Contains(t, StorageBackendSQLite.Description(), "SQLite")
	assert.Contains(t, StorageBackendMemory.Description(), "Memory")
	assert.Equal(t, "Unknown", StorageBackend("x").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, StorageBackendSQLite, s.Storage.Backend)
	assert.Empty(t, s.Storage.DataDir)
	assert.Equal(t, 100*time.Millisecond, s.Timing.IngestDelay)
	assert.Equal(t, 50*time.Millisecond, s.Timing.SearchDelay)
	assert.Equal(t, 200, s.Display.ResultLimit)
	assert.Equal(t, 180, s.Display.PreviewLength)
	assert.Equal(t, StressReading{Before: 5, After: 4}, s.Stress.Reading())
	assert.Equal(t, "127.0.0.1:8421", s.Server.Addr)
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
		want   error
	}{
		{"bad backend", func(s *AppSettings) { s.Storage.Backend = "redis" }, ErrUnsupportedBackend},
		{"negative delay", func(s *AppSettings) { s.Timing.SearchDelay = -time.Second }, ErrNegativeDuration},
		{"negative limit", func(s *AppSettings) { s.Display.ResultLimit = -1 }, ErrInvalidInput},
		{"stress out of range", func(s *AppSettings) { s.Stress.DefaultAfter = 42 }, ErrInvalidStress},
		{"negative burst", func(s *AppSettings) { s.Server.Burst = -1 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tt.want)
		})
	}
}
