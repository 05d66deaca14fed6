package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStorageBackend  = "storage.backend"
	KeyStorageDataDir  = "storage.data_dir"
	KeyIngestDelayMs   = "timing.ingest_delay_ms"
	KeySearchDelayMs   = "timing.search_delay_ms"
	KeyResultLimit     = "display.result_limit"
	KeyPreviewLength   = "display.preview_length"
	KeyStressBefore    = "stress.default_before"
	KeyStressAfter     = "stress.default_after"
	KeyServerAddr      = "server.addr"
	KeyServerRateLimit = "server.rate_limit"
	KeyServerBurst     = "server.burst"
)

// Environment variables that override persisted settings.
const (
	EnvBackend = "RIPPLE_BACKEND"
	EnvDataDir = "RIPPLE_DATA_DIR"
	EnvAddr    = "RIPPLE_ADDR"
)

var settingKeys = []string{
	KeyStorageBackend,
	KeyStorageDataDir,
	KeyIngestDelayMs,
	KeySearchDelayMs,
	KeyResultLimit,
	KeyPreviewLength,
	KeyStressBefore,
	KeyStressAfter,
	KeyServerAddr,
	KeyServerRateLimit,
	KeyServerBurst,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings.
// Environment overrides win over persisted values.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: domain.StorageBackend(s.getString(KeyStorageBackend, defaults.Storage.Backend.String())),
			DataDir: s.getString(KeyStorageDataDir, defaults.Storage.DataDir),
		},
		Timing: domain.TimingSettings{
			IngestDelay: s.getMillis(KeyIngestDelayMs, defaults.Timing.IngestDelay),
			SearchDelay: s.getMillis(KeySearchDelayMs, defaults.Timing.SearchDelay),
		},
		Display: domain.DisplaySettings{
			ResultLimit:   s.getInt(KeyResultLimit, defaults.Display.ResultLimit),
			PreviewLength: s.getInt(KeyPreviewLength, defaults.Display.PreviewLength),
		},
		Stress: domain.StressSettings{
			DefaultBefore: s.getInt(KeyStressBefore, defaults.Stress.DefaultBefore),
			DefaultAfter:  s.getInt(KeyStressAfter, defaults.Stress.DefaultAfter),
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(KeyServerAddr, defaults.Server.Addr),
			RateLimit: s.getFloat(KeyServerRateLimit, defaults.Server.RateLimit),
			Burst:     s.getInt(KeyServerBurst, defaults.Server.Burst),
		},
	}

	if v, ok := s.env(EnvBackend); ok {
		settings.Storage.Backend = domain.StorageBackend(strings.ToLower(v))
	}
	if v, ok := s.env(EnvDataDir); ok {
		settings.Storage.DataDir = v
	}
	if v, ok := s.env(EnvAddr); ok {
		settings.Server.Addr = v
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Set parses, validates and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}

	// Validate the value in the context of the full settings.
	candidate := domain.DefaultAppSettings()
	if err := applySetting(&candidate, key, parsed); err != nil {
		return err
	}
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Entries returns every key with its effective and default value.
func (s *SettingsService) Entries() ([]driving.SettingEntry, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	defaults := domain.DefaultAppSettings()

	entries := make([]driving.SettingEntry, len(settingKeys))
	for i, key := range settingKeys {
		entries[i] = driving.SettingEntry{
			Key:     key,
			Value:   formatSetting(settings, key),
			Default: formatSetting(&defaults, key),
		}
	}
	return entries, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// parseSetting converts a raw string into the stored type for key.
func parseSetting(key, value string) (any, error) {
	switch key {
	case KeyStorageBackend:
		return strings.ToLower(value), nil
	case KeyStorageDataDir, KeyServerAddr:
		return value, nil
	case KeyIngestDelayMs, KeySearchDelayMs, KeyResultLimit, KeyPreviewLength,
		KeyStressBefore, KeyStressAfter, KeyServerBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case KeyServerRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// applySetting writes a parsed value into settings.
// formatSetting renders the value of key in the form Set accepts.
func formatSetting(settings *domain.AppSettings, key string) string {
	switch key {
	case KeyStorageBackend:
		return settings.Storage.Backend.String()
	case KeyStorageDataDir:
		return settings.Storage.DataDir
	case KeyIngestDelayMs:
		return strconv.FormatInt(settings.Timing.IngestDelay.Milliseconds(), 10)
	case KeySearchDelayMs:
		return strconv.FormatInt(settings.Timing.SearchDelay.Milliseconds(), 10)
	case KeyResultLimit:
		return strconv.Itoa(settings.Display.ResultLimit)
	case KeyPreviewLength:
		return strconv.Itoa(settings.Display.PreviewLength)
	case KeyStressBefore:
		return strconv.Itoa(settings.Stress.DefaultBefore)
	case KeyStressAfter:
		return strconv.Itoa(settings.Stress.DefaultAfter)
	case KeyServerAddr:
		return settings.Server.Addr
	case KeyServerRateLimit:
		return strconv.FormatFloat(settings.Server.RateLimit, 'f', -1, 64)
	case KeyServerBurst:
		return strconv.Itoa(settings.Server.Burst)
	}
	return ""
}

func applySetting(settings *domain.AppSettings, key string, value any) error {
	switch v := value.(type) {
	case string:
		switch key {
		case KeyStorageBackend:
			settings.Storage.Backend = domain.StorageBackend(v)
		case KeyStorageDataDir:
			settings.Storage.DataDir = v
		case KeyServerAddr:
			if v == "" {
				return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
			}
			settings.Server.Addr = v
		}
	case int:
		switch key {
		case KeyIngestDelayMs:
			settings.Timing.IngestDelay = time.Duration(v) * time.Millisecond
		case KeySearchDelayMs:
			settings.Timing.SearchDelay = time.Duration(v) * time.Millisecond
		case KeyResultLimit:
			settings.Display.ResultLimit = v
		case KeyPreviewLength:
			settings.Display.PreviewLength = v
		case KeyStressBefore:
			settings.Stress.DefaultBefore = v
		case KeyStressAfter:
			settings.Stress.DefaultAfter = v
		case KeyServerBurst:
			settings.Server.Burst = v
		}
	case float64:
		settings.Server.RateLimit = v
	}
	return nil
}

func (s *SettingsService) env(name string) (string, bool) {
	if s.lookupEnv == nil {
		return "", false
	}
	v, ok := s.lookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Helper methods for getting config values with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return defaultVal
	}
}
