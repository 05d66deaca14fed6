package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:         "settings",
	Short:       "Manage application settings",
	Long:        `View and change settings stored in the config file.`,
	Annotations: map[string]string{annotationNoStorage: "true"},
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{annotationNoStorage: "true"},
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Validates and persists one setting.

Example:
  ripple settings set display.result_limit 50`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationNoStorage: "true"},
	RunE:        runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	entries, err := settingsService.Entries()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	for _, e := range entries {
		value := e.Value
		if value == "" {
			value = "(unset)"
		}
		if e.Value != e.Default {
			cmd.Printf("  %-24s %s (default %s)\n", e.Key, value, e.Default)
			continue
		}
		cmd.Printf("  %-24s %s\n", e.Key, value)
	}
	cmd.Println()
	cmd.Printf("Config file: %s\n", settingsService.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
