// Package metrics provides the KPI and chart view for the TUI.
package metrics

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ripple-cli/internal/chart"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

// ErrNoMetricsService indicates that no metrics service was provided.
var ErrNoMetricsService = errors.New("metrics service is required")

// Chart grid bounds in terminal cells.
const (
	minChartCols = 30
	maxChartCols = 100
	chartRows    = 8
)

// View shows the KPI panel with the throughput and performance charts.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	metrics driving.MetricsService
	ctx     context.Context

	dashboard *domain.Dashboard
	loading   bool
	err       error
	width     int
	height    int
	ready     bool
}

// NewView creates a new metrics view.
func NewView(s *styles.Styles, km *keymap.KeyMap, metrics driving.MetricsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: status.NewBar(s, km.MetricsHelp()),
		metrics:   metrics,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the dashboard.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	v.statusbar.SetState(status.StateWorking)
	v.statusbar.SetMessage("Loading metrics...")

	metrics := v.metrics
	ctx := v.ctx
	return func() tea.Msg {
		if metrics == nil {
			return messages.MetricsLoaded{Err: ErrNoMetricsService}
		}
		dashboard, err := metrics.Dashboard(ctx)
		return messages.MetricsLoaded{Dashboard: dashboard, Err: err}
	}
}

// Update handles messages for the metrics view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.MetricsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.dashboard = msg.Dashboard
		v.statusbar.Clear()
		return v, nil

	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyEsc:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(msg.String(), v.keymap.Refresh):
			return v, v.load()
		case keymap.Matches(msg.String(), v.keymap.Seed):
			v.statusbar.SetState(status.StateWorking)
			v.statusbar.SetMessage("Seeding...")
			return v, func() tea.Msg { return messages.SeedRequested{} }
		}
	}

	return v, nil
}

// View renders the metrics view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Ripple · Metrics"), "")

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.dashboard == nil:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	default:
		sections = append(sections, v.renderKPIs(), "")
		sections = append(sections, v.renderCharts()...)
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderKPIs() string {
	s := v.dashboard.Summary
	tiles := []struct{ value, label string }{
		{fmt.Sprintf("%d", s.TotalSessions), "Total Sessions"},
		{fmt.Sprintf("%d", s.ItemsStored), "Items Stored"},
		{fmt.Sprintf("%d ms", s.AvgResponseMs), "Avg Response Time"},
		{fmt.Sprintf("%.1f", s.AvgStressReduction), "Avg Stress Reduction"},
	}

	boxes := make([]string, len(tiles))
	for i, tile := range tiles {
		boxes[i] = v.styles.KPIBox.Render(lipgloss.JoinVertical(lipgloss.Left,
			v.styles.KPIValue.Render(tile.value),
			v.styles.KPILabel.Render(tile.label),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (v *View) renderCharts() []string {
	cols := v.width - 12
	if cols > maxChartCols {
		cols = maxChartCols
	}
	if cols < minChartCols {
		cols = minChartCols
	}

	throughput := chart.NewLayout(chart.ThroughputPoints(v.dashboard.Throughput),
		chart.DefaultOptions(chart.ColorThroughput))
	performance := chart.NewLayout(chart.PerformancePoints(v.dashboard.Performance),
		chart.DefaultOptions(chart.ColorPerformance))

	title := "Throughput by phase (last session)"
	if last := v.dashboard.LastSession; last != nil {
		title = fmt.Sprintf("Throughput by phase (session #%d %s)", last.ID, last.Label)
	}

	out := []string{
		v.styles.Subtitle.Render(title),
		v.styles.ThroughputChart.Render(chart.Text(throughput, cols, chartRows)),
		"",
		v.styles.Subtitle.Render("Session performance (code seconds)"),
	}
	if len(v.dashboard.Performance) == 0 {
		return append(out, v.styles.Muted.Render("No sessions yet"))
	}
	return append(out, v.styles.PerformanceChart.Render(chart.Text(performance, cols, chartRows)))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
}

// Dashboard returns the last loaded dashboard.
func (v *View) Dashboard() *domain.Dashboard {
	return v.dashboard
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
