package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

func newTestSettingsService(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	service.lookupEnv = func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	return service, store
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set(KeyStorageBackend, "memory")
	_ = store.Set(KeyIngestDelayMs, int64(10))
	_ = store.Set(KeyResultLimit, 25)
	_ = store.Set(KeyServerRateLimit, 2.5)
	_ = store.Set(KeyServerBurst, int64(7))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendMemory, settings.Storage.Backend)
	assert.Equal(t, 10*time.Millisecond, settings.Timing.IngestDelay)
	assert.Equal(t, 50*time.Millisecond, settings.Timing.SearchDelay)
	assert.Equal(t, 25, settings.Display.ResultLimit)
	assert.InDelta(t, 2.5, settings.Server.RateLimit, 0.0001)
	assert.Equal(t, 7, settings.Server.Burst)
}

func TestSettingsService_Get_ZeroDelayIsKept(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set(KeySearchDelayMs, 0)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), settings.Timing.SearchDelay)
}

func TestSettingsService_Get_EnvOverrides(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{
		EnvBackend: "MEMORY",
		EnvDataDir: "/tmp/ripple",
		EnvAddr:    " :9000 ",
	})
	_ = store.Set(KeyStorageBackend, "sqlite")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendMemory, settings.Storage.Backend)
	assert.Equal(t, "/tmp/ripple", settings.Storage.DataDir)
	assert.Equal(t, ":9000", settings.Server.Addr)
}

func TestSettingsService_Get_BlankEnvIgnored(t *testing.T) {
	service, _ := newTestSettingsService(map[string]string{EnvAddr: "  "})

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().Server.Addr, settings.Server.Addr)
}

func TestSettingsService_Get_InvalidStoredValue(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set(KeyStorageBackend, "postgres")

	_, err := service.Get()

	assert.ErrorIs(t, err, domain.ErrUnsupportedBackend)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  any
	}{
		{name: "backend lowercased", key: KeyStorageBackend, value: "Memory", want: "memory"},
		{name: "data dir", key: KeyStorageDataDir, value: "/data", want: "/data"},
		{name: "delay", key: KeyIngestDelayMs, value: "0", want: 0},
		{name: "stress", key: KeyStressBefore, value: "10", want: 10},
		{name: "rate", key: KeyServerRateLimit, value: "0.5", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestSettingsService(nil)

			require.NoError(t, service.Set(tt.key, tt.value))

			got, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "unknown key", key: "nope", value: "1", wantErr: domain.ErrInvalidInput},
		{name: "not an integer", key: KeyResultLimit, value: "lots", wantErr: domain.ErrInvalidInput},
		{name: "not a number", key: KeyServerRateLimit, value: "fast", wantErr: domain.ErrInvalidInput},
		{name: "bad backend", key: KeyStorageBackend, value: "postgres", wantErr: domain.ErrUnsupportedBackend},
		{name: "stress too high", key: KeyStressAfter, value: "11", wantErr: domain.ErrInvalidStress},
		{name: "negative delay", key: KeySearchDelayMs, value: "-1", wantErr: domain.ErrNegativeDuration},
		{name: "empty addr", key: KeyServerAddr, value: " ", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestSettingsService(nil)

			err := service.Set(tt.key, tt.value)

			require.ErrorIs(t, err, tt.wantErr)
			_, ok := store.Get(tt.key)
			assert.False(t, ok, "invalid value must not be persisted")
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	keys := service.Keys()

	assert.Len(t, keys, 11)
	assert.Equal(t, KeyStorageBackend, keys[0])

	keys[0] = "mutated"
	assert.Equal(t, KeyStorageBackend, service.Keys()[0])
}

func TestSettingsService_PathAndDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	assert.Equal(t, ":memory:", service.Path())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_Entries(t *testing.T) {
	service, _ := newTestSettingsService(map[string]string{EnvAddr: "0.0.0.0:9000"})
	require.NoError(t, service.Set(KeyIngestDelayMs, "250"))
	require.NoError(t, service.Set(KeyServerRateLimit, "2.5"))

	entries, err := service.Entries()

	require.NoError(t, err)
	require.Len(t, entries, len(service.Keys()))

	byKey := make(map[string]driving.SettingEntry, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e
	}
	assert.Equal(t, "250", byKey[KeyIngestDelayMs].Value)
	assert.Equal(t, "100", byKey[KeyIngestDelayMs].Default)
	assert.Equal(t, "2.5", byKey[KeyServerRateLimit].Value)
	assert.Equal(t, "20", byKey[KeyServerRateLimit].Default)
	assert.Equal(t, "0.0.0.0:9000", byKey[KeyServerAddr].Value)
	assert.Equal(t, "sqlite", byKey[KeyStorageBackend].Value)
}

func TestSettingsService_Entries_RoundTripThroughSet(t *testing.T) {
	source, _ := newTestSettingsService(nil)
	entries, err := source.Entries()
	require.NoError(t, err)

	target, _ := newTestSettingsService(nil)
	for _, e := range entries {
		if e.Value == "" {
			continue
		}
		require.NoError(t, target.Set(e.Key, e.Value), e.Key)
	}

	got, err := target.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *got)
}
