package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Inspect stored assets",
}

var assetGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show the full text and enrichment of an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetGet,
}

var assetGetJSON bool

var assetTermsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List the term dictionary used to frame metaphors",
	Args:  cobra.NoArgs,
	RunE:  runAssetTerms,
}

var assetCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many assets are stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		library, err := requireLibrary()
		if err != nil {
			return err
		}
		n, err := library.Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count assets: %w", err)
		}
		cmd.Printf("%d assets stored\n", n)
		return nil
	},
}

func init() {
	assetGetCmd.Flags().BoolVar(&assetGetJSON, "json", false, "output the asset and its expansion as JSON")
	assetCmd.AddCommand(assetGetCmd)
	assetCmd.AddCommand(assetCountCmd)
	assetCmd.AddCommand(assetTermsCmd)
	rootCmd.AddCommand(assetCmd)
}

func runAssetGet(cmd *cobra.Command, args []string) error {
	library, err := requireLibrary()
	if err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	asset, err := library.Get(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("asset %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get asset: %w", err)
	}

	exp, err := library.Expansion(cmd.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to get expansion: %w", err)
	}

	if assetGetJSON {
		return printJSON(cmd, struct {
			Asset     *domain.Asset     `json:"asset"`
			Expansion *domain.Expansion `json:"expansion,omitempty"`
		}{asset, exp})
	}

	cmd.Printf("Asset #%d (%s)\n", asset.ID, asset.Type)
	cmd.Printf("Created: %s\n\n", asset.CreatedAt.Local().Format(dateLayout))
	cmd.Println(asset.RawText)
	printEnrichment(cmd, asset.Enrichment, exp)
	return nil
}

// printEnrichment writes the non-empty enrichment fields, one per line.
func printEnrichment(cmd *cobra.Command, e domain.Enrichment, exp *domain.Expansion) {
	if len(e.Keywords) == 0 && len(e.Metaphors) == 0 && exp == nil {
		return
	}
	cmd.Println()
	if len(e.Keywords) > 0 {
		cmd.Printf("Keywords:  %s\n", strings.Join(e.Keywords, ", "))
	}
	if len(e.Metaphors) > 0 {
		pairs := make([]string, len(e.Metaphors))
		for i, p := range e.Metaphors {
			pairs[i] = p.String()
		}
		cmd.Printf("Metaphors: %s\n", strings.Join(pairs, ", "))
	}
	if len(e.Sections) > 0 {
		cmd.Printf("Topics:    %s\n", strings.Join(e.Sections, ", "))
	}
	if len(e.Strategies) > 0 {
		cmd.Println("Strategy:")
		for _, st := range e.Strategies {
			cmd.Printf("  - %s: %s\n", st.Control, strings.Join(st.Actions, ", "))
		}
	}
	if e.Summary != "" {
		cmd.Printf("Summary:   %s\n", e.Summary)
	}
	if exp != nil && exp.HumanizedSummary != "" {
		cmd.Printf("Expansion: %s\n", exp.HumanizedSummary)
	}
}

func runAssetTerms(cmd *cobra.Command, _ []string) error {
	library, err := requireLibrary()
	if err != nil {
		return err
	}

	terms, err := library.Terms(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list terms: %w", err)
	}

	for _, t := range terms {
		cmd.Printf("%-18s %-10s %s\n", t.Term, "("+t.Domain+")", t.ScienceDefinition)
		cmd.Printf("%-29s %s; %s\n", "", t.HumanAnalogy, t.HumanContextStrategy)
	}
	return nil
}

// parseID parses a positive numeric id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive number", s)
	}
	return id, nil
}
