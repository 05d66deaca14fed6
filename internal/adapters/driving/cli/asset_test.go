package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

func TestAssetCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(assetCmd.Commands()))
	for _, c := range assetCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "get")
	assert.Contains(t, names, "count")
	assert.Contains(t, names, "terms")
}

func TestAssetGetCmd_RequiresArg(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "asset", "get")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAssetGetCmd_ShowsFullText(t *testing.T) {
	env := setupTestServices(t)
	ingestTexts(t, env, "line one\nline two")

	out, err := execute(t, "asset", "get", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Asset #1 (conversation)")
	assert.Contains(t, out, "line one\nline two")
}

func TestAssetGetCmd_ShowsEnrichment(t *testing.T) {
	env := setupTestServices(t)
	ingestTexts(t, env, "I feel dirty. Stuck in a loop.")

	out, err := execute(t, "asset", "get", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Keywords:  feel, dirty, stuck, loop\n")
	assert.Contains(t, out, "Metaphors: dirty→impurity, loop→radical scavenger")
	assert.Contains(t, out, "Topics:    Impurity control, Chelation, Buffers, Radical control")
	assert.Contains(t, out, "  - solvent change: fresh towel, new scent, sunlight")
	assert.Contains(t, out, "Summary:   Mapped dirty, loop to impurity, radical scavenger.")
	assert.Contains(t, out, "Expansion: Feeling of dirtiness: change solvent/context.")
}

func TestAssetGetCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	ingestTexts(t, env, "washed")

	out, err := execute(t, "asset", "get", "1", "--json")

	require.NoError(t, err)
	var got struct {
		Asset     domain.Asset      `json:"asset"`
		Expansion *domain.Expansion `json:"expansion"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []domain.MetaphorPair{{Cue: "washed", Concept: "solvent wash"}}, got.Asset.Metaphors)
	require.NotNil(t, got.Expansion)
	assert.Equal(t, int64(1), got.Expansion.AssetID)
}

func TestAssetGetCmd_PlainTextHasNoEnrichment(t *testing.T) {
	env := setupTestServices(t)
	ingestTexts(t, env, "ok")

	out, err := execute(t, "asset", "get", "1")

	require.NoError(t, err)
	assert.NotContains(t, out, "Keywords:")
	assert.NotContains(t, out, "Expansion:")
}

func TestAssetTermsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "asset", "terms")

	require.NoError(t, err)
	assert.Contains(t, out, "impurity")
	assert.Contains(t, out, "(obviology)")
	assert.Contains(t, out, "Friend/humor stops loops; Trusted friend/humor")
}

func TestAssetGetCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "asset", "get", "42")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "asset 42 not found")
}

func TestAssetGetCmd_InvalidID(t *testing.T) {
	setupTestServices(t)

	for _, id := range []string{"abc", "0", "-3"} {
		_, err := execute(t, "asset", "get", "--", id)
		require.Error(t, err, id)
		assert.Contains(t, err.Error(), "invalid id", id)
	}
}

func TestAssetCountCmd(t *testing.T) {
	env := setupTestServices(t)
	ingestTexts(t, env, "a", "b")

	out, err := execute(t, "asset", "count")

	require.NoError(t, err)
	assert.Contains(t, out, "2 assets stored")
}

func TestParseID(t *testing.T) {
	id, err := parseID("17")
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	_, err = parseID("1.5")
	assert.Error(t, err)
}
