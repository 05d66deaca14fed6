// Package ingest provides the text entry view for the TUI.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

// ErrNoLibraryService indicates that no library service was provided.
var ErrNoLibraryService = errors.New("library service is required")

// Field indexes.
const (
	fieldText = iota
	fieldBefore
	fieldAfter
	fieldCount
)

// View collects text plus the stress readings and stores it.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    [fieldCount]*input.Field
	focused   int
	statusbar *status.Bar

	library  driving.LibraryService
	defaults domain.StressReading
	ctx      context.Context

	last   *domain.Asset
	err    error
	width  int
	height int
	ready  bool
}

// NewView creates a new ingest view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	library driving.LibraryService,
	defaults domain.StressReading,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		statusbar: status.NewBar(s, km.FormHelp()),
		library:   library,
		defaults:  defaults,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.fields[fieldText] = input.NewField(s, "Text", "Paste or type a note...", 0)
	v.fields[fieldBefore] = input.NewField(s, "Stress before", "0-10", 2)
	v.fields[fieldAfter] = input.NewField(s, "Stress after", "0-10", 2)
	v.Reset()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.fields[fieldText].Init()
}

// Update handles messages for the ingest view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.IngestCompleted:
		v.handleIngestCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case msg.Type == tea.KeyTab:
		v.focus((v.focused + 1) % fieldCount)
		return v, nil
	case msg.Type == tea.KeyShiftTab:
		v.focus((v.focused + fieldCount - 1) % fieldCount)
		return v, nil
	case msg.Type == tea.KeyEnter:
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return v, cmd
}

func (v *View) focus(index int) {
	for i, f := range v.fields {
		if i == index {
			f.Focus()
		} else {
			f.Blur()
		}
	}
	v.focused = index
}

// submit validates the form and returns the command that stores the text.
func (v *View) submit() tea.Cmd {
	text := v.fields[fieldText].Value()
	if strings.TrimSpace(text) == "" {
		v.setError(domain.ErrEmptyInput)
		return nil
	}

	stress, err := v.stress()
	if err != nil {
		v.setError(err)
		return nil
	}

	v.err = nil
	v.statusbar.SetState(status.StateWorking)
	v.statusbar.SetMessage("Storing...")

	library := v.library
	ctx := v.ctx
	return func() tea.Msg {
		if library == nil {
			return messages.ErrorOccurred{Err: ErrNoLibraryService}
		}
		asset, err := library.Ingest(ctx, text, stress)
		return messages.IngestCompleted{Asset: asset, Err: err}
	}
}

func (v *View) stress() (domain.StressReading, error) {
	before, err := parseStress(v.fields[fieldBefore].Value())
	if err != nil {
		return domain.StressReading{}, fmt.Errorf("stress before: %w", err)
	}
	after, err := parseStress(v.fields[fieldAfter].Value())
	if err != nil {
		return domain.StressReading{}, fmt.Errorf("stress after: %w", err)
	}
	r := domain.StressReading{Before: before, After: after}
	return r, r.Validate()
}

func parseStress(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.ErrInvalidStress
	}
	return n, nil
}

func (v *View) handleIngestCompleted(msg messages.IngestCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.last = msg.Asset
	v.fields[fieldText].Reset()
	v.focus(fieldText)
	v.statusbar.SetState(status.StateDone)
	message := fmt.Sprintf("Stored asset #%d (%d chars)",
		msg.Asset.ID, utf8.RuneCountInString(msg.Asset.RawText))
	if len(msg.Asset.Sections) > 0 {
		message += "; topics: " + strings.Join(msg.Asset.Sections, ", ")
	}
	v.statusbar.SetMessage(message)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the ingest view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Ripple · Ingest"), "")
	for _, f := range v.fields {
		sections = append(sections, f.View())
	}
	sections = append(sections, "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	} else if v.last != nil {
		sections = append(sections, v.styles.Muted.Render("Last stored: "+v.last.Preview(60)), "")
	}

	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, f := range v.fields {
		f.SetWidth(width)
	}
	v.statusbar.SetWidth(width)
}

// Reset clears the text and restores the default stress readings.
func (v *View) Reset() {
	v.fields[fieldText].Reset()
	v.fields[fieldBefore].SetValue(strconv.Itoa(v.defaults.Before))
	v.fields[fieldAfter].SetValue(strconv.Itoa(v.defaults.After))
	v.focus(fieldText)
	v.err = nil
	v.last = nil
	v.statusbar.Clear()
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focused
}

// Text returns the current text value.
func (v *View) Text() string {
	return v.fields[fieldText].Value()
}

// LastAsset returns the most recently stored asset.
func (v *View) LastAsset() *domain.Asset {
	return v.last
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
