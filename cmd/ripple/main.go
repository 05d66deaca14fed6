// Command ripple stores notes locally and tracks stress-aware metrics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driven/report"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ripple-cli/internal/core/services"
	"github.com/custodia-labs/ripple-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// store is the persistence surface both backends provide.
type store interface {
	AssetStore() driven.AssetStore
	SessionStore() driven.SessionStore
	Close() error
}

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore(os.Getenv("RIPPLE_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cli.SetVersion(version)
	cli.SetSettingsService(services.NewSettingsService(configStore))
	cli.SetOpener(openServices)
	defer func() {
		if err := cli.Close(); err != nil {
			logger.Warn("%v", err)
		}
	}()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openServices opens the configured backend and builds every service on it.
func openServices(_ context.Context, settings *domain.AppSettings) (*cli.Services, func() error, error) {
	st, err := openStore(settings.Storage)
	if err != nil {
		return nil, nil, err
	}

	assets, sessions := st.AssetStore(), st.SessionStore()
	return &cli.Services{
		Library: services.NewLibraryService(assets, sessions, settings.Timing),
		Metrics: services.NewMetricsService(assets, sessions),
		Export:  services.NewExportService(assets, sessions, report.NewHTMLRenderer()),
		Tracker: services.NewTrackerService(sessions),
	}, st.Close, nil
}

func openStore(cfg domain.StorageSettings) (store, error) {
	switch cfg.Backend {
	case domain.StorageBackendMemory:
		logger.Warn("memory backend: data is lost on exit")
		return memory.NewStore(), nil
	case domain.StorageBackendSQLite, "":
		s, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		logger.Debug("using database %s", s.Path())
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, cfg.Backend)
	}
}
