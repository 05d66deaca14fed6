package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/services"
)

var defaultStress = domain.StressReading{Before: 5, After: 4}

func newTestView(t *testing.T, display domain.DisplaySettings, texts ...string) *View {
	t.Helper()
	store := memory.NewStore()
	library := services.NewLibraryService(store, store, domain.TimingSettings{})
	for _, text := range texts {
		_, err := library.Ingest(context.Background(), text, defaultStress)
		require.NoError(t, err)
	}
	v := NewView(nil, nil, library, defaultStress, display)
	v.SetDimensions(100, 40)
	return v
}

// runSearch submits the current query and feeds the result back.
func runSearch(t *testing.T, v *View) messages.SearchCompleted {
	t.Helper()
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	completed, ok := cmd().(messages.SearchCompleted)
	require.True(t, ok)
	v.Update(completed)
	return completed
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil, defaultStress, domain.DisplaySettings{})

	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Search_CaseInsensitive(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{}, "Retry with BACKOFF", "cache warmup", "backoff jitter")
	v.SetQuery("backoff")

	completed := runSearch(t, v)

	require.NoError(t, completed.Err)
	require.Len(t, v.Results(), 2)
	assert.Equal(t, "backoff jitter", v.Results()[0].RawText)
	assert.False(t, v.InputFocused())
	assert.Contains(t, v.View(), "session #4")
}

func TestView_Search_EmptyQueryListsAll(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{}, "a", "b", "c")

	runSearch(t, v)

	assert.Len(t, v.Results(), 3)
	assert.Contains(t, v.View(), `"(all)"`)
}

func TestView_Search_TruncatesToLimit(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{ResultLimit: 2}, "n1", "n2", "n3")

	runSearch(t, v)

	assert.Len(t, v.Results(), 2)
	assert.Equal(t, 3, v.Total())
	assert.Contains(t, v.View(), "Showing first 2 of 3.")
}

func TestView_ResultsNavigation(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{}, "a", "b", "c")
	runSearch(t, v)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.SelectedIndex())
}

func TestView_NewSearch(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{}, "a")
	v.SetQuery("a")
	runSearch(t, v)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
}

func TestView_SearchError(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{})

	v.Update(messages.SearchCompleted{Err: errors.New("store offline")})

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "store offline")
}

func TestView_InvalidStress(t *testing.T) {
	store := memory.NewStore()
	library := services.NewLibraryService(store, store, domain.TimingSettings{})
	v := NewView(nil, nil, library, domain.StressReading{Before: 12, After: 4}, domain.DisplaySettings{})
	v.SetDimensions(80, 24)

	completed := runSearch(t, v)

	assert.ErrorIs(t, completed.Err, domain.ErrInvalidStress)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidStress)
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil, nil, defaultStress, domain.DisplaySettings{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, messages.ErrorOccurred{Err: ErrNoLibraryService}, msg)

	v.Update(msg)
	assert.ErrorIs(t, v.Err(), ErrNoLibraryService)
}

func TestView_Esc(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{}, "a")
	runSearch(t, v)

	v.Reset()

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Results())
	assert.NoError(t, v.Err())
	assert.NotContains(t, v.View(), "session #")
}

func TestView_Search_FilterTokens(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{}, "Stuck in a loop again", "I feel dirty", "plain note")
	v.SetQuery("metaphor:loop")

	completed := runSearch(t, v)

	require.NoError(t, completed.Err)
	require.Len(t, v.Results(), 1)
	assert.Equal(t, "Stuck in a loop again", v.Results()[0].RawText)
}

func TestView_ShowsEnrichmentOfSelected(t *testing.T) {
	v := newTestView(t, domain.DisplaySettings{}, "plain note", "I feel dirty")
	runSearch(t, v)

	assert.Equal(t, []string{
		"Topics:    Impurity control, Chelation, Buffers",
		"Metaphors: dirty→impurity",
		"Strategy:  solvent change, chelation, buffer, remove product",
		"Summary:   Mapped dirty to impurity. Controls: solvent change, chelation, buffer, remove product.",
	}, v.Details())
	assert.Contains(t, v.View(), "Topics:    Impurity control")

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, v.Details())
	assert.NotContains(t, v.View(), "Topics:")
}
