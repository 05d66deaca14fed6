package httpapi

import (
	_ "embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/ripple-cli/internal/chart"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/logger"
)

//go:embed dashboard.html.tmpl
var dashboardTmpl string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardTmpl))

type resultRow struct {
	ID        int64
	CreatedAt string
	Preview   string
	Sections  string
	Summary   string
}

type dashboardData struct {
	Notice      string
	Summary     domain.Summary
	Stress      domain.StressSettings
	Query       string
	Searched    bool
	Total       int
	Shown       int
	Results     []resultRow
	Throughput  template.HTML
	Performance template.HTML
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := dashboardData{
		Notice: r.URL.Query().Get("notice"),
		Stress: s.opts.Stress,
	}

	if r.URL.Query().Has("q") {
		data.Query = r.URL.Query().Get("q")
		result, err := s.ports.Library.Search(ctx, data.Query, s.opts.Stress.Reading())
		if err != nil {
			s.renderFailure(w, err)
			return
		}
		shown := truncate(result.Assets, s.opts.Display.ResultLimit)
		data.Searched = true
		data.Total = result.Count()
		data.Shown = len(shown)
		data.Results = make([]resultRow, len(shown))
		for i, a := range shown {
			data.Results[i] = resultRow{
				ID:        a.ID,
				CreatedAt: domain.FormatExportTime(a.CreatedAt),
				Preview:   a.Preview(s.opts.Display.PreviewLength),
				Sections:  strings.Join(a.Sections, ", "),
				Summary:   a.Summary,
			}
		}
	}

	dash, err := s.ports.Metrics.Dashboard(ctx)
	if err != nil {
		s.renderFailure(w, err)
		return
	}
	data.Summary = dash.Summary

	if data.Throughput, err = chart.SVG("a", chart.NewLayout(
		chart.ThroughputPoints(dash.Throughput), chart.DefaultOptions(chart.ColorThroughput))); err != nil {
		s.renderFailure(w, err)
		return
	}
	if data.Performance, err = chart.SVG("b", chart.NewLayout(
		chart.PerformancePoints(dash.Performance), chart.DefaultOptions(chart.ColorPerformance))); err != nil {
		s.renderFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		logger.Warn("render dashboard: %v", err)
	}
}

func (s *Server) handleFormIngest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithNotice(w, r, "Could not read the form.")
		return
	}

	stress := s.opts.Stress.Reading()
	if v, err := formInt(r, "stress_before"); err == nil {
		stress.Before = v
	}
	if v, err := formInt(r, "stress_after"); err == nil {
		stress.After = v
	}

	asset, err := s.ports.Library.Ingest(r.Context(), r.PostForm.Get("text"), stress)
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		redirectWithNotice(w, r, "Please enter some text.")
	case err != nil:
		redirectWithNotice(w, r, "Ingest failed: "+err.Error())
	default:
		redirectWithNotice(w, r, "Stored asset #"+strconv.FormatInt(asset.ID, 10)+".")
	}
}

func (s *Server) handleFormSeed(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ports.Library.Seed(r.Context()); err != nil {
		redirectWithNotice(w, r, "Seed failed: "+err.Error())
		return
	}
	redirectWithNotice(w, r, "Inserted sample rows.")
}

func (s *Server) renderFailure(w http.ResponseWriter, err error) {
	logger.Warn("dashboard: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, notice string) {
	http.Redirect(w, r, "/?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

func formInt(r *http.Request, key string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(r.PostForm.Get(key)))
}
