package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/metrics"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
)

// Ensure HTMLRenderer implements the interface.
var _ driven.ReportRenderer = (*HTMLRenderer)(nil)

// ContentTypeHTML is the MIME type of the rendered report.
const ContentTypeHTML = "text/html; charset=utf-8"

//go:embed report.html.tmpl
var reportTmpl string

var reportTemplate = template.Must(template.New("report").Parse(reportTmpl))

// HTMLRenderer renders the report with html/template.
type HTMLRenderer struct {
	now func() time.Time
}

// NewHTMLRenderer creates a new renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{now: time.Now}
}

// reportData is the template input.
type reportData struct {
	Sessions    []domain.Session
	Events      []domain.Event
	Phases      []domain.Phase
	Summary     domain.Summary
	GeneratedAt string
}

// Render writes the report for the given collections to w.
// Items stored is not part of the report, so its KPI is omitted.
func (r *HTMLRenderer) Render(w io.Writer, sessions []domain.Session, events []domain.Event) error {
	if sessions == nil {
		sessions = []domain.Session{}
	}
	if events == nil {
		events = []domain.Event{}
	}

	data := reportData{
		Sessions:    sessions,
		Events:      events,
		Phases:      domain.ChartPhases,
		Summary:     metrics.Summarize(sessions, events, 0),
		GeneratedAt: domain.FormatExportTime(r.now()),
	}
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("executing report template: %w", err)
	}
	return nil
}

// ContentType returns the MIME type of the rendered document.
func (r *HTMLRenderer) ContentType() string {
	return ContentTypeHTML
}
