package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample data",
	Long:  `Inserts five sample texts inside one tracked "Seed" session.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		library, err := requireLibrary()
		if err != nil {
			return err
		}
		session, err := library.Seed(cmd.Context())
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		cmd.Printf("Seeded sample data in session #%d\n", session.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
