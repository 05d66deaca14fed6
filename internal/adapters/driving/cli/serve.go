package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP dashboard",
	Long: `Starts the local web dashboard and JSON API.

The dashboard shows the KPI panel, an ingest form, search results and
both charts. Exports are available under /export.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings := currentSettings()

	server, err := httpapi.NewServer(&httpapi.Ports{
		Library: libraryService,
		Metrics: metricsService,
		Export:  exportService,
	}, httpapi.OptionsFromSettings(settings))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}
	cmd.Printf("Dashboard listening on http://%s\n", addr)
	return server.Run(cmd.Context(), addr)
}
