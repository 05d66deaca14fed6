package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Default export file names.
const (
	DefaultSnapshotFile = "ripple-metrics.json"
	DefaultReportFile   = "ripple-metrics.html"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export metrics",
	Long: `Exports every session, event and asset.

  json  portable snapshot (sessions, events, assets, exported_at)
  html  standalone report with both charts, openable offline

Use -o - to write to stdout.`,
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Write the JSON snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd, DefaultSnapshotFile, func(ctx context.Context, w io.Writer) error {
			return exportService.WriteSnapshot(ctx, w)
		})
	},
}

var exportHTMLCmd = &cobra.Command{
	Use:   "html",
	Short: "Write the HTML report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd, DefaultReportFile, func(ctx context.Context, w io.Writer) error {
			return exportService.WriteReport(ctx, w)
		})
	},
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "output file (default ripple-metrics.<ext>, - for stdout)")
	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportHTMLCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, defaultFile string, write func(context.Context, io.Writer) error) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	path := exportOutput
	if path == "" {
		path = defaultFile
	}

	if path == "-" {
		return write(cmd.Context(), cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(cmd.Context(), f); err != nil {
		_ = f.Close()
		return fmt.Errorf("export failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	cmd.Printf("Exported to %s\n", path)
	return nil
}
