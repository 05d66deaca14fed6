package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

var ingestFile string

var ingestCmd = &cobra.Command{
	Use:   "ingest [text...]",
	Short: "Store a piece of text",
	Long: `Stores text as a new asset inside a tracked "Ingest" session.

Text is taken from the arguments, from --file, or from stdin when it is
piped in. Blank text is rejected.

Examples:
  ripple ingest "Retry with exponential backoff"
  ripple ingest --file notes.md -b 7 -a 3
  echo "cache warmup" | ripple ingest`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "read text from a file")
	addStressFlags(ingestCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	library, err := requireLibrary()
	if err != nil {
		return err
	}

	text, err := readIngestText(cmd, args)
	if err != nil {
		return err
	}

	stress, err := stressFromFlags(cmd)
	if err != nil {
		return err
	}

	asset, err := library.Ingest(cmd.Context(), text, stress)
	if errors.Is(err, domain.ErrEmptyInput) {
		return errors.New("nothing to ingest: text is blank")
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Stored asset #%d (%d chars)\n", asset.ID, utf8.RuneCountInString(asset.RawText))
	return nil
}

// readIngestText resolves the text from args, --file or piped stdin.
func readIngestText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if ingestFile != "" {
		data, err := os.ReadFile(ingestFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", ingestFile, err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no text given: pass it as arguments, with --file, or on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
