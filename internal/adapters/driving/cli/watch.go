package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

var watchExtensions []string

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest text files dropped into a folder",
	Long: `Watches a folder and ingests every text file created or written in it.
Each file goes through the normal tracked ingest operation. Unchanged
content is not ingested twice. Stops on interrupt.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVarP(&watchExtensions, "ext", "e", watch.DefaultExtensions, "file extensions to ingest")
	addStressFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	library, err := requireLibrary()
	if err != nil {
		return err
	}

	stress, err := stressFromFlags(cmd)
	if err != nil {
		return err
	}

	w, err := watch.New(library, args[0], stress,
		watch.WithExtensions(watchExtensions...),
		watch.WithIngestFunc(func(path string, asset *domain.Asset) {
			cmd.Printf("Ingested %s as asset #%d\n", path, asset.ID)
		}),
	)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (ctrl+c to stop)\n", w.Dir())
	if err := w.Run(cmd.Context()); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
