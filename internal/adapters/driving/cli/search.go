package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search stored text",
	Long: `Finds assets whose text contains the query, ignoring case.
Results are listed most recent first. Without a query every asset is
listed. Each search is tracked as a "Search" session.

Filter tokens narrow the match on the ingest-time enrichment:
  topic:<text>      a section heading contains <text>
  metaphor:<text>   a cue word or its concept contains <text>
  hasStrategy:true  at least one strategy was derived
The remaining words are matched against the text.`,
	Example: `  ripple search python
  ripple search topic:chelation
  ripple search metaphor:loop hasStrategy:true night`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results shown (default from settings)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	addStressFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	library, err := requireLibrary()
	if err != nil {
		return err
	}

	stress, err := stressFromFlags(cmd)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	result, err := library.Search(cmd.Context(), query, stress)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, result)
	}

	display := currentSettings().Display
	limit := display.ResultLimit
	if searchLimit > 0 {
		limit = searchLimit
	}
	printAssets(cmd, result.Assets, limit, display.PreviewLength)
	return nil
}
