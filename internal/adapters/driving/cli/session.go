package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

var (
	sessionLabel string
	eventPhase   string
	eventName    string
	eventMs      int64
	eventNotes   string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Track sessions manually",
	Long: `Start, log against, end and list tracked sessions.

Manual sessions record work the built-in commands do not cover, such as
Validate or Fix phases.

Examples:
  ripple session start --label "Fix flaky test" -b 7
  ripple session log 12 --phase Fix --name edit --ms 42000
  ripple session end 12 -a 3`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Open a session",
	Args:  cobra.NoArgs,
	RunE:  runSessionStart,
}

var sessionLogCmd = &cobra.Command{
	Use:   "log [session-id]",
	Short: "Log a timed event",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionLog,
}

var sessionEndCmd = &cobra.Command{
	Use:   "end [session-id]",
	Short: "Close a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionEnd,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions with their events",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

func init() {
	sessionStartCmd.Flags().StringVarP(&sessionLabel, "label", "l", "Manual", "session label")
	sessionStartCmd.Flags().IntP(flagStressBefore, "b", 0, "stress before, 0-10 (default from settings)")

	sessionLogCmd.Flags().StringVarP(&eventPhase, "phase", "p", domain.PhaseFix.String(),
		"event phase (Search, Ingest, Validate, Fix)")
	sessionLogCmd.Flags().StringVar(&eventName, "name", "", "event name")
	sessionLogCmd.Flags().Int64Var(&eventMs, "ms", 0, "duration in milliseconds")
	sessionLogCmd.Flags().StringVar(&eventNotes, "notes", "", "free-form notes")
	_ = sessionLogCmd.MarkFlagRequired("name")

	sessionEndCmd.Flags().IntP(flagStressAfter, "a", 0, "stress after, 0-10 (default from settings)")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionLogCmd)
	sessionCmd.AddCommand(sessionEndCmd)
	sessionCmd.AddCommand(sessionListCmd)
	rootCmd.AddCommand(sessionCmd)
}

func requireTracker() (driving.TrackerService, error) {
	if trackerService == nil {
		return nil, errors.New("tracker service not configured")
	}
	return trackerService, nil
}

func runSessionStart(cmd *cobra.Command, _ []string) error {
	tracker, err := requireTracker()
	if err != nil {
		return err
	}
	stress, err := stressFromFlags(cmd)
	if err != nil {
		return err
	}

	id, err := tracker.StartSession(cmd.Context(), sessionLabel, stress.Before)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	cmd.Printf("Started session #%d (%s)\n", id, sessionLabel)
	return nil
}

func runSessionLog(cmd *cobra.Command, args []string) error {
	tracker, err := requireTracker()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	event, err := tracker.LogEvent(cmd.Context(), domain.EventInput{
		SessionID: id,
		Phase:     domain.Phase(eventPhase),
		Name:      eventName,
		Ms:        eventMs,
		Notes:     eventNotes,
	})
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	cmd.Printf("Logged event #%d: %s/%s %d ms\n", event.ID, event.Phase, event.Name, event.Ms)
	return nil
}

func runSessionEnd(cmd *cobra.Command, args []string) error {
	tracker, err := requireTracker()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	stress, err := stressFromFlags(cmd)
	if err != nil {
		return err
	}

	err = tracker.EndSession(cmd.Context(), id, stress.After)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("session %d not found", id)
	case errors.Is(err, domain.ErrSessionClosed):
		return fmt.Errorf("session %d is already closed", id)
	case err != nil:
		return fmt.Errorf("failed to end session: %w", err)
	}
	cmd.Printf("Ended session #%d\n", id)
	return nil
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	tracker, err := requireTracker()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	sessions, err := tracker.Sessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		cmd.Println("No sessions tracked yet.")
		return nil
	}

	for i := range sessions {
		s := &sessions[i]
		state := "open"
		if !s.IsOpen() {
			state = fmt.Sprintf("%d ms", s.Duration().Milliseconds())
		}
		cmd.Printf("#%d %s  %s  stress %d -> %s  [%s]\n",
			s.ID, s.Label, s.StartedAt.Local().Format(dateLayout),
			s.StressBefore, formatStress(s.StressAfter), state)

		events, err := tracker.SessionEvents(ctx, s.ID)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		for j := range events {
			line := fmt.Sprintf("    %-8s %-12s %6d ms", events[j].Phase, events[j].Name, events[j].Ms)
			if events[j].Notes != "" {
				line += "  " + events[j].Notes
			}
			cmd.Println(line)
		}
	}
	return nil
}
