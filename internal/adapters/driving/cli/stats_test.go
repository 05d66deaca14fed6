package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

func TestStatsCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Total Sessions:        0")
	assert.Contains(t, out, "Items Stored:          0")
	assert.Contains(t, out, "Throughput by phase")
	assert.Contains(t, out, "No sessions yet.")
}

func TestStatsCmd_AfterSeed(t *testing.T) {
	env := setupTestServices(t)
	_, err := env.library.Seed(context.Background())
	require.NoError(t, err)

	out, err := execute(t, "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Total Sessions:        1")
	assert.Contains(t, out, "Items Stored:          5")
	assert.Contains(t, out, "Throughput by phase (session #1 Seed)")
	assert.Contains(t, out, "S1")
	assert.NotContains(t, out, "No sessions yet.")
}

func TestStatsCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	ingestTexts(t, env, "note")

	out, err := execute(t, "stats", "--json")
	require.NoError(t, err)

	var dash domain.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Equal(t, 1, dash.Summary.TotalSessions)
	assert.Equal(t, 1, dash.Summary.ItemsStored)
	assert.InDelta(t, 1.0, dash.Summary.AvgStressReduction, 0.001)
	assert.Len(t, dash.Throughput, len(domain.ChartPhases))
	assert.Len(t, dash.Performance, 1)
}

func TestStatsCmd_ErrorsWithoutService(t *testing.T) {
	setupTestServices(t)
	metricsService = nil

	_, err := execute(t, "stats")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics service not configured")
}
