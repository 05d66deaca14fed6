package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

func TestSessionCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(sessionCmd.Commands()))
	for _, c := range sessionCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"start", "log", "end", "list"}, names)
}

func TestSessionCmd_Lifecycle(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "session", "start", "--label", "Fix flaky test", "-b", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Started session #1 (Fix flaky test)")

	out, err = execute(t, "session", "log", "1", "--phase", "Fix", "--name", "edit", "--ms", "42000", "--notes", "retry")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged event #1: Fix/edit 42000 ms")

	out, err = execute(t, "session", "end", "1", "-a", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Ended session #1")

	session, err := env.tracker.Session(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, session.IsOpen())
	assert.Equal(t, 7, session.StressBefore)
	require.NotNil(t, session.StressAfter)
	assert.Equal(t, 3, *session.StressAfter)

	events, err := env.tracker.SessionEvents(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.PhaseFix, events[0].Phase)
	assert.Equal(t, "retry", events[0].Notes)
}

func TestSessionEndCmd_Unknown(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "session", "end", "99")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "session 99 not found")
}

func TestSessionEndCmd_AlreadyClosed(t *testing.T) {
	env := setupTestServices(t)
	id, err := env.tracker.StartSession(context.Background(), "Manual", 5)
	require.NoError(t, err)
	require.NoError(t, env.tracker.EndSession(context.Background(), id, 4))

	_, err = execute(t, "session", "end", "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already closed")
}

func TestSessionLogCmd_RequiresName(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "session", "log", "1", "--ms", "10")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestSessionLogCmd_NegativeDuration(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "session", "log", "1", "--name", "x", "--ms=-5")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeDuration)
}

func TestSessionListCmd(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions tracked yet.")

	ingestTexts(t, env, "note")
	_, err = env.tracker.StartSession(context.Background(), "Manual", 6)
	require.NoError(t, err)

	out, err = execute(t, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Ingest")
	assert.Contains(t, out, "stress 5 -> 4")
	assert.Contains(t, out, "#2 Manual")
	assert.Contains(t, out, "stress 6 -> -  [open]")
	assert.Contains(t, out, "Ingest")
}

func TestSessionCmd_ErrorsWithoutTracker(t *testing.T) {
	setupTestServices(t)
	trackerService = nil

	_, err := execute(t, "session", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracker service not configured")
}
