// Package search provides the search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.AssetList
	statusbar *status.Bar

	library driving.LibraryService
	stress  domain.StressReading
	ctx     context.Context

	lastQuery  string
	sessionID  int64
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	library driving.LibraryService,
	stress domain.StressReading,
	display domain.DisplaySettings,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewAssetList(s, display.ResultLimit, display.PreviewLength),
		statusbar:  status.NewBar(s, km.ShortHelp()),
		library:    library,
		stress:     stress,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Enter in input mode submits search; an empty query lists everything.
	if msg.Type == tea.KeyEnter && v.focusInput {
		v.statusbar.SetState(status.StateWorking)
		v.statusbar.SetMessage("Searching...")
		return v, v.performSearch(v.input.Value())
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	// Results mode
	switch msg.String() {
	case "n":
		v.focusInput = true
		v.input.SetValue("")
		v.statusbar.SetHints(v.keymap.ShortHelp())
		return v, v.input.Focus()
	default:
		v.list, _ = v.list.Update(msg)
	}

	return v, nil
}

// performSearch runs a tracked search.
func (v *View) performSearch(query string) tea.Cmd {
	library := v.library
	stress := v.stress
	ctx := v.ctx
	return func() tea.Msg {
		if library == nil {
			return messages.ErrorOccurred{Err: ErrNoLibraryService}
		}
		result, err := library.Search(ctx, query, stress)
		return messages.SearchCompleted{Result: result, Err: err}
	}
}

// handleSearchCompleted processes search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.lastQuery = msg.Result.Query
	v.sessionID = msg.Result.SessionID
	v.list.SetAssets(msg.Result.Assets)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(msg.Result.Count())
	v.statusbar.SetHints(v.keymap.ResultsHelp())

	// Switch to results mode after successful search
	v.focusInput = false
	v.input.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Ripple · Search"), "")
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.sessionID > 0 {
		label := v.lastQuery
		if label == "" {
			label = "(all)"
		}
		sections = append(sections, v.styles.Muted.Render(
			fmt.Sprintf("Query %q tracked as session #%d", label, v.sessionID)), "")
	}

	sections = append(sections, v.list.View(), "")
	if !v.focusInput {
		if details := v.Details(); len(details) > 0 {
			for _, line := range details {
				sections = append(sections, v.styles.Muted.Render(line))
			}
			sections = append(sections, "")
		}
	}
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Details returns the enrichment lines of the selected result, or nil
// when nothing is selected or the asset has no enrichment.
func (v *View) Details() []string {
	asset := v.list.SelectedAsset()
	if asset == nil {
		return nil
	}

	var lines []string
	if len(asset.Sections) > 0 {
		lines = append(lines, "Topics:    "+strings.Join(asset.Sections, ", "))
	}
	if len(asset.Metaphors) > 0 {
		pairs := make([]string, len(asset.Metaphors))
		for i, p := range asset.Metaphors {
			pairs[i] = p.String()
		}
		lines = append(lines, "Metaphors: "+strings.Join(pairs, ", "))
	}
	if len(asset.Strategies) > 0 {
		controls := make([]string, len(asset.Strategies))
		for i, st := range asset.Strategies {
			controls[i] = st.Control
		}
		lines = append(lines, "Strategy:  "+strings.Join(controls, ", "))
	}
	if asset.Summary != "" {
		lines = append(lines, "Summary:   "+asset.Summary)
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-15) // Reserve space for header, input, details, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the displayed assets.
func (v *View) Results() []domain.Asset {
	return v.list.Assets()
}

// Total returns the number of matches before truncation.
func (v *View) Total() int {
	return v.list.Total()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetAssets(nil)
	v.err = nil
	v.lastQuery = ""
	v.sessionID = 0
	v.statusbar.Clear()
	v.statusbar.SetHints(v.keymap.ShortHelp())
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
