// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

// ErrNoSettingsService indicates that no settings service was provided.
var ErrNoSettingsService = errors.New("settings service not available")

// View lists every setting and edits one at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	entries  []driving.SettingEntry
	path     string
	err      error
	notice   string
	selected int

	editing bool
	editor  textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	editor := textinput.New()
	editor.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		editor:          editor,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		entries, err := svc.Entries()
		return messages.SettingsLoaded{Entries: entries, Path: svc.Path(), Err: err}
	}
}

// saveSetting returns a command that persists one setting.
func (v *View) saveSetting(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingSaved{Key: key, Err: ErrNoSettingsService}
		}
		return messages.SettingSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.entries = msg.Entries
		v.path = msg.Path
		v.err = nil
		if v.selected >= len(v.entries) {
			v.selected = 0
		}
		return v, nil

	case messages.SettingSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = fmt.Sprintf("Saved %s", msg.Key)
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case "enter":
		if len(v.entries) == 0 {
			return v, nil
		}
		v.editing = true
		v.notice = ""
		v.editor.SetValue(v.entries[v.selected].Value)
		v.editor.CursorEnd()
		return v, v.editor.Focus()
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only the form keys are handled here
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.editor.Blur()
		return v, nil
	case tea.KeyEnter:
		v.editing = false
		v.editor.Blur()
		return v, v.saveSetting(v.entries[v.selected].Key, v.editor.Value())
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Ripple · Settings"))
	b.WriteString("\n")
	if v.path != "" {
		b.WriteString(v.styles.Muted.Render(v.path))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	keyWidth := 0
	for _, e := range v.entries {
		if len(e.Key) > keyWidth {
			keyWidth = len(e.Key)
		}
	}

	for i, e := range v.entries {
		value := e.Value
		if value == "" {
			value = "(unset)"
		}
		if v.editing && i == v.selected {
			value = v.editor.View()
		}

		line := fmt.Sprintf("%-*s  %s", keyWidth, e.Key, value)
		switch {
		case i == v.selected && !v.editing:
			b.WriteString(v.styles.Selected.Render("> " + line))
		case e.Value != e.Default:
			b.WriteString("  " + v.styles.Warning.Render(line))
		default:
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		if e.Value != e.Default && e.Default != "" {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  (default %s)", e.Default)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[Enter] Save  [Esc] Cancel")
	}
	return v.styles.Help.Render("[j/k] Navigate  [Enter] Edit  [Esc] Back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.editor.Width = width - 40
	if v.editor.Width < 20 {
		v.editor.Width = 20
	}
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.editing = false
	v.editor.Blur()
	v.notice = ""
	v.err = nil
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Entries returns the loaded settings.
func (v *View) Entries() []driving.SettingEntry {
	return v.entries
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
