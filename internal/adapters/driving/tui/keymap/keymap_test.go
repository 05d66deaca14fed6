package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"submit", km.Submit, []string{"enter"}},
		{"next field", km.NextField, []string{"tab"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"new search", km.NewSearch, []string{"n"}},
		{"refresh", km.Refresh, []string{"r"}},
		{"seed", km.Seed, []string{"s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Len(t, km.FormHelp(), 3)
	assert.Len(t, km.ResultsHelp(), 4)
	assert.Len(t, km.MetricsHelp(), 3)

	full := km.FullHelp()
	require.Len(t, full, 3)
	assert.Len(t, full[2], 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("down", km.Down))
	assert.True(t, Matches("r", km.Refresh))
	assert.False(t, Matches("x", km.Up))
	assert.False(t, Matches("", km.Quit))
}
