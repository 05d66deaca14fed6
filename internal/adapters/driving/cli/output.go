package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

const dateLayout = "2006-01-02 15:04:05"

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printAssets lists assets with previews, truncated to limit entries.
func printAssets(cmd *cobra.Command, assets []domain.Asset, limit, preview int) {
	total := len(assets)
	if total == 0 {
		cmd.Println("No results found.")
		return
	}

	shown := assets
	if limit > 0 && total > limit {
		shown = assets[:limit]
	}

	cmd.Printf("Results (%d):\n\n", total)
	for i := range shown {
		cmd.Printf("  [#%d] %s\n", shown[i].ID, shown[i].CreatedAt.Local().Format(dateLayout))
		cmd.Printf("      %s\n\n", oneLine(shown[i].Preview(preview)))
	}
	if len(shown) < total {
		cmd.Printf("Showing first %d of %d.\n", len(shown), total)
	}
}

// oneLine collapses whitespace runs so previews fit on one line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// formatStress renders an optional reading.
func formatStress(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
