package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/views/ingest"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/views/metrics"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles

	menuView     *menu.View
	ingestView   *ingest.View
	searchView   *search.View
	metricsView  *metrics.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		ingestView:   ingest.NewView(s, km, ports.Library, opts.Stress),
		searchView:   search.NewView(s, km, ports.Library, opts.Stress, opts.Display),
		metricsView:  metrics.NewView(s, km, ports.Metrics),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.ingestView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.metricsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ripple"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewIngest:
			a.ingestView.Reset()
			return a, a.ingestView.Init()
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewMetrics:
			return a, a.metricsView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.IngestCompleted:
		a.err = msg.Err
		a.ingestView, cmd = a.ingestView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.err = msg.Err
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.SeedRequested:
		return a, a.seed()

	case messages.SeedCompleted:
		a.err = msg.Err
		if msg.Err != nil {
			a.menuView.SetNotice("Seed failed: " + msg.Err.Error())
		} else {
			a.menuView.SetNotice(fmt.Sprintf("Seeded sample data in session #%d", msg.Session.ID))
		}
		if a.currentView == messages.ViewMetrics {
			return a, a.metricsView.Init()
		}
		return a, nil

	case messages.MetricsLoaded:
		a.metricsView, cmd = a.metricsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewIngest:
		a.ingestView, cmd = a.ingestView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewMetrics:
		a.metricsView, cmd = a.metricsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// seed runs the sample data session.
func (a *App) seed() tea.Cmd {
	library := a.ports.Library
	ctx := a.ctx
	return func() tea.Msg {
		session, err := library.Seed(ctx)
		return messages.SeedCompleted{Session: session, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewIngest:
		return a.ingestView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewMetrics:
		return a.metricsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Ingest:
  tab         Next field (text, stress before, stress after)
  enter       Store the text

Search:
  (type)      Case-insensitive substring; empty lists everything
  enter       Submit search
  j/k         Navigate results
  n           New search

Metrics:
  r           Refresh
  s           Seed sample data

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.ingestView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.metricsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
