// Package cli provides the cobra command tree for ripple.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ripple-cli/internal/logger"
)

// annotationNoStorage marks commands that run without opening storage.
const annotationNoStorage = "ripple/no-storage"

var (
	version = "dev"

	verbose     bool
	backendFlag string
	dataDirFlag string
)

// Services set by SetServices or by the opener during PersistentPreRunE.
var (
	libraryService  driving.LibraryService
	metricsService  driving.MetricsService
	exportService   driving.ExportService
	trackerService  driving.TrackerService
	settingsService driving.SettingsService

	// appSettings is the effective configuration for the running command.
	appSettings *domain.AppSettings

	opener  OpenFunc
	closeFn func() error
)

// Services holds the driving ports backed by storage.
type Services struct {
	Library driving.LibraryService
	Metrics driving.MetricsService
	Export  driving.ExportService
	Tracker driving.TrackerService
}

// OpenFunc opens storage for the given settings and builds the services.
// The returned close function releases the storage.
type OpenFunc func(ctx context.Context, settings *domain.AppSettings) (*Services, func() error, error)

var rootCmd = &cobra.Command{
	Use:   "ripple",
	Short: "Notes, search and stress-aware metrics",
	Long: `Ripple stores short texts locally, finds them again by substring search
and tracks every operation as a timed session with stress readings.

Sessions feed a metrics panel (KPIs, phase throughput and session
performance) that can be exported as a JSON snapshot or a standalone
HTML report.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend (sqlite, memory)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory holding the database")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetSettingsService sets the settings service. Settings are needed
// before storage is opened, so this is wired separately.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetOpener sets how storage-backed services are built.
func SetOpener(fn OpenFunc) {
	opener = fn
}

// SetServices injects ready-made services, bypassing the opener.
func SetServices(s *Services) {
	if s == nil {
		libraryService, metricsService, exportService, trackerService = nil, nil, nil, nil
		return
	}
	libraryService = s.Library
	metricsService = s.Metrics
	exportService = s.Export
	trackerService = s.Tracker
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	// Settings commands must work even when the stored config is invalid.
	if cmd.Annotations[annotationNoStorage] == "true" {
		return nil
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	appSettings = settings

	if opener == nil {
		return nil
	}

	logger.Debug("opening %s storage", settings.Storage.Backend)
	services, closer, err := opener(cmd.Context(), settings)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	SetServices(services)
	closeFn = closer
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeFn == nil {
		return nil
	}
	err := closeFn()
	closeFn = nil
	if err != nil {
		return fmt.Errorf("closing storage: %w", err)
	}
	return nil
}

// loadSettings reads settings and applies the storage flags.
func loadSettings() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		loaded, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		settings = *loaded
	}

	if backendFlag != "" {
		backend := domain.StorageBackend(backendFlag)
		if !backend.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, backendFlag)
		}
		settings.Storage.Backend = backend
	}
	if dataDirFlag != "" {
		settings.Storage.DataDir = dataDirFlag
	}
	return &settings, nil
}

// currentSettings returns the effective settings, defaults when unset.
func currentSettings() *domain.AppSettings {
	if appSettings == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults
	}
	return appSettings
}

// requireLibrary returns the library service or an error.
func requireLibrary() (driving.LibraryService, error) {
	if libraryService == nil {
		return nil, errors.New("library service not configured")
	}
	return libraryService, nil
}

// Close releases storage opened for the last command. Cobra skips
// PersistentPostRunE when a command fails, so callers defer this.
func Close() error {
	return teardown(nil, nil)
}
