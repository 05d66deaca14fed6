package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ripple-cli/internal/chart"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

const (
	statsChartCols = 60
	statsChartRows = 10
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the metrics panel",
	Long: `Shows the KPI panel (total sessions, items stored, average response time,
average stress reduction) followed by the phase throughput chart for the
most recent session and the session performance chart.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output the dashboard as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if metricsService == nil {
		return errors.New("metrics service not configured")
	}

	dash, err := metricsService.Dashboard(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load metrics: %w", err)
	}

	if statsJSON {
		return printJSON(cmd, dash)
	}

	printSummary(cmd, dash.Summary)

	cmd.Println()
	if dash.LastSession != nil {
		cmd.Printf("Throughput by phase (session #%d %s)\n", dash.LastSession.ID, dash.LastSession.Label)
	} else {
		cmd.Println("Throughput by phase")
	}
	layout := chart.NewLayout(chart.ThroughputPoints(dash.Throughput), chart.DefaultOptions(chart.ColorThroughput))
	cmd.Println(chart.Text(layout, statsChartCols, statsChartRows))

	cmd.Println()
	cmd.Println("Session performance (code seconds)")
	if len(dash.Performance) == 0 {
		cmd.Println("No sessions yet.")
		return nil
	}
	layout = chart.NewLayout(chart.PerformancePoints(dash.Performance), chart.DefaultOptions(chart.ColorPerformance))
	cmd.Println(chart.Text(layout, statsChartCols, statsChartRows))
	return nil
}

func printSummary(cmd *cobra.Command, s domain.Summary) {
	cmd.Println("Metrics")
	cmd.Println("=======")
	cmd.Printf("  Total Sessions:        %d\n", s.TotalSessions)
	cmd.Printf("  Items Stored:          %d\n", s.ItemsStored)
	cmd.Printf("  Avg Response Time:     %d ms\n", s.AvgResponseMs)
	cmd.Printf("  Avg Stress Reduction:  %.1f\n", s.AvgStressReduction)
}
