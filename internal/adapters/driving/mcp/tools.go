package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// contentTypeJSON is the MIME type of the JSON snapshot.
const contentTypeJSON = "application/json"

// stressReading fills missing readings from def.
func stressReading(before, after *int, def domain.StressReading) domain.StressReading {
	r := def
	if before != nil {
		r.Before = *before
	}
	if after != nil {
		r.After = *after
	}
	return r
}

// AssetOutput is an asset as returned by tools.
type AssetOutput struct {
	ID         int64            `json:"id"`
	Type       string           `json:"type"`
	RawText    string           `json:"raw_text"`
	CreatedAt  string           `json:"created_at"`
	Keywords   []string         `json:"keywords,omitempty"`
	Metaphors  [][]string       `json:"metaphors,omitempty"`
	Sections   []string         `json:"sections,omitempty"`
	Strategies []StrategyOutput `json:"strategies,omitempty"`
	Summary    string           `json:"summary,omitempty"`
}

// StrategyOutput is one chemistry control with its human actions.
type StrategyOutput struct {
	Control string   `json:"chem_control"`
	Actions []string `json:"actions"`
}

func toAssetOutput(a *domain.Asset) AssetOutput {
	out := AssetOutput{
		ID:        a.ID,
		Type:      a.Type,
		RawText:   a.RawText,
		CreatedAt: domain.FormatExportTime(a.CreatedAt),
		Keywords:  a.Keywords,
		Sections:  a.Sections,
		Summary:   a.Summary,
	}
	for _, pair := range a.Metaphors {
		out.Metaphors = append(out.Metaphors, []string{pair.Cue, pair.Concept})
	}
	for _, st := range a.Strategies {
		out.Strategies = append(out.Strategies, StrategyOutput{Control: st.Control, Actions: st.Actions})
	}
	return out
}

// SessionOutput is a session as returned by tools.
type SessionOutput struct {
	ID           int64  `json:"id"`
	Label        string `json:"label"`
	StartedAt    string `json:"started_at"`
	EndedAt      string `json:"ended_at,omitempty"`
	StressBefore int    `json:"stress_before"`
	StressAfter  *int   `json:"stress_after,omitempty"`
}

func toSessionOutput(s *domain.Session) SessionOutput {
	out := SessionOutput{
		ID:           s.ID,
		Label:        s.Label,
		StartedAt:    domain.FormatExportTime(s.StartedAt),
		StressBefore: s.StressBefore,
		StressAfter:  s.StressAfter,
	}
	if s.EndedAt != nil {
		out.EndedAt = domain.FormatExportTime(*s.EndedAt)
	}
	return out
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Text         string `json:"text" jsonschema:"the text to store"`
	StressBefore *int   `json:"stress_before,omitempty" jsonschema:"stress reading 0-10 before the operation"`
	StressAfter  *int   `json:"stress_after,omitempty" jsonschema:"stress reading 0-10 after the operation"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	Asset AssetOutput `json:"asset"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query        string `json:"query" jsonschema:"case-insensitive substring to look for, optionally with topic:<x> metaphor:<x> hasStrategy:true filters; empty lists everything"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of results to return"`
	StressBefore *int   `json:"stress_before,omitempty" jsonschema:"stress reading 0-10 before the operation"`
	StressAfter  *int   `json:"stress_after,omitempty" jsonschema:"stress reading 0-10 after the operation"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query     string        `json:"query"`
	Total     int           `json:"total"`
	SessionID int64         `json:"session_id"`
	Results   []AssetOutput `json:"results"`
}

// SeedInput is the input schema for the seed tool.
type SeedInput struct{}

// SeedOutput is the output schema for the seed tool.
type SeedOutput struct {
	Session SessionOutput `json:"session"`
	Items   int           `json:"items_stored"`
}

// TermsInput is the input schema for the terms tool.
type TermsInput struct{}

// TermsOutput is the output schema for the terms tool.
type TermsOutput struct {
	Terms []TermOutput `json:"terms"`
}

// TermOutput is one dictionary row.
type TermOutput struct {
	Term                 string `json:"term"`
	Domain               string `json:"domain"`
	ScienceDefinition    string `json:"science_definition"`
	HumanAnalogy         string `json:"human_analogy"`
	HumanContextStrategy string `json:"human_context_strategy"`
	Version              string `json:"version"`
}

// MetricsInput is the input schema for the metrics tool.
type MetricsInput struct{}

// MetricsOutput is the output schema for the metrics tool.
type MetricsOutput struct {
	Summary     domain.Summary        `json:"summary"`
	LastSession *SessionOutput        `json:"last_session,omitempty"`
	Throughput  []domain.PhasePoint   `json:"throughput"`
	Performance []domain.SessionPoint `json:"performance"`
}

// ExportInput is the input schema for the export tool.
type ExportInput struct {
	Format string `json:"format,omitempty" jsonschema:"json (default) or html"`
}

// ExportOutput is the output schema for the export tool.
type ExportOutput struct {
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Store a text note as a new asset; tracked as an Ingest session",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find stored notes by case-insensitive substring, most recent first; topic:, metaphor: and hasStrategy:true tokens filter on the enrichment",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "terms",
		Description: "List the cross-domain term dictionary used to frame metaphors",
	}, s.handleTerms)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "seed",
		Description: "Insert the sample notes inside one Seed session",
	}, s.handleSeed)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "metrics",
		Description: "Return the KPI summary with the throughput and performance series",
	}, s.handleMetrics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export",
		Description: "Export all sessions, events and assets as JSON or an HTML report",
	}, s.handleExport)
}

func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	asset, err := s.ports.Library.Ingest(ctx, input.Text, stressReading(input.StressBefore, input.StressAfter, s.opts.Stress))
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, IngestOutput{Asset: toAssetOutput(asset)}, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.opts.ResultLimit
	}

	result, err := s.ports.Library.Search(ctx, input.Query, stressReading(input.StressBefore, input.StressAfter, s.opts.Stress))
	if err != nil {
		return nil, SearchOutput{}, err
	}

	assets := result.Assets
	if len(assets) > limit {
		assets = assets[:limit]
	}
	output := SearchOutput{
		Query:     result.Query,
		Total:     result.Count(),
		SessionID: result.SessionID,
		Results:   make([]AssetOutput, len(assets)),
	}
	for i := range assets {
		output.Results[i] = toAssetOutput(&assets[i])
	}

	return nil, output, nil
}

func (s *Server) handleSeed(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SeedInput,
) (*mcp.CallToolResult, SeedOutput, error) {
	session, err := s.ports.Library.Seed(ctx)
	if err != nil {
		return nil, SeedOutput{}, err
	}
	count, err := s.ports.Library.Count(ctx)
	if err != nil {
		return nil, SeedOutput{}, err
	}
	return nil, SeedOutput{Session: toSessionOutput(session), Items: count}, nil
}

func (s *Server) handleTerms(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ TermsInput,
) (*mcp.CallToolResult, TermsOutput, error) {
	terms, err := s.ports.Library.Terms(ctx)
	if err != nil {
		return nil, TermsOutput{}, err
	}
	output := TermsOutput{Terms: make([]TermOutput, len(terms))}
	for i, t := range terms {
		output.Terms[i] = TermOutput{
			Term:                 t.Term,
			Domain:               t.Domain,
			ScienceDefinition:    t.ScienceDefinition,
			HumanAnalogy:         t.HumanAnalogy,
			HumanContextStrategy: t.HumanContextStrategy,
			Version:              t.Version,
		}
	}
	return nil, output, nil
}

func (s *Server) handleMetrics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ MetricsInput,
) (*mcp.CallToolResult, MetricsOutput, error) {
	dashboard, err := s.ports.Metrics.Dashboard(ctx)
	if err != nil {
		return nil, MetricsOutput{}, err
	}

	output := MetricsOutput{
		Summary:     dashboard.Summary,
		Throughput:  dashboard.Throughput,
		Performance: dashboard.Performance,
	}
	if dashboard.LastSession != nil {
		last := toSessionOutput(dashboard.LastSession)
		output.LastSession = &last
	}
	return nil, output, nil
}

func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = "json"
	}

	var buf bytes.Buffer
	output := ExportOutput{Format: format}
	switch format {
	case "json":
		if err := s.ports.Export.WriteSnapshot(ctx, &buf); err != nil {
			return nil, ExportOutput{}, fmt.Errorf("writing snapshot: %w", err)
		}
		output.ContentType = contentTypeJSON
	case "html":
		if err := s.ports.Export.WriteReport(ctx, &buf); err != nil {
			return nil, ExportOutput{}, fmt.Errorf("writing report: %w", err)
		}
		output.ContentType = s.ports.Export.ReportContentType()
	default:
		return nil, ExportOutput{}, fmt.Errorf("%w: %q", ErrUnknownFormat, input.Format)
	}
	output.Content = buf.String()

	return nil, output, nil
}
