package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

const (
	flagStressBefore = "stress-before"
	flagStressAfter  = "stress-after"
)

// addStressFlags registers the stress reading flags on cmd.
func addStressFlags(cmd *cobra.Command) {
	cmd.Flags().IntP(flagStressBefore, "b", 0, "stress before the operation, 0-10 (default from settings)")
	cmd.Flags().IntP(flagStressAfter, "a", 0, "stress after the operation, 0-10 (default from settings)")
}

// stressFromFlags combines explicitly set flags with the configured defaults.
func stressFromFlags(cmd *cobra.Command) (domain.StressReading, error) {
	reading := currentSettings().Stress.Reading()

	if cmd.Flags().Changed(flagStressBefore) {
		v, err := cmd.Flags().GetInt(flagStressBefore)
		if err != nil {
			return reading, fmt.Errorf("getting %s flag: %w", flagStressBefore, err)
		}
		reading.Before = v
	}
	if cmd.Flags().Changed(flagStressAfter) {
		v, err := cmd.Flags().GetInt(flagStressAfter)
		if err != nil {
			return reading, fmt.Errorf("getting %s flag: %w", flagStressAfter, err)
		}
		reading.After = v
	}

	if err := reading.Validate(); err != nil {
		return reading, fmt.Errorf("%w: readings must be between %d and %d",
			err, domain.MinStress, domain.MaxStress)
	}
	return reading, nil
}
