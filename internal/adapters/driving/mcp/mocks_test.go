package mcp

import (
	"context"
	"io"
	"time"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

var (
	_ driving.LibraryService = (*mockLibraryService)(nil)
	_ driving.MetricsService = (*mockMetricsService)(nil)
	_ driving.ExportService  = (*mockExportService)(nil)
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	asset     *domain.Asset
	result    *domain.SearchResult
	session   *domain.Session
	expansion *domain.Expansion
	terms     []domain.Term
	count     int
	err       error

	lastText   string
	lastQuery  string
	lastStress domain.StressReading
}

func (m *mockLibraryService) Ingest(
	_ context.Context,
	text string,
	stress domain.StressReading,
) (*domain.Asset, error) {
	m.lastText = text
	m.lastStress = stress
	return m.asset, m.err
}

func (m *mockLibraryService) Search(
	_ context.Context,
	query string,
	stress domain.StressReading,
) (*domain.SearchResult, error) {
	m.lastQuery = query
	m.lastStress = stress
	return m.result, m.err
}

func (m *mockLibraryService) Seed(_ context.Context) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockLibraryService) Get(_ context.Context, _ int64) (*domain.Asset, error) {
	return m.asset, m.err
}

func (m *mockLibraryService) Count(_ context.Context) (int, error) {
	return m.count, m.err
}

func (m *mockLibraryService) Expansion(_ context.Context, _ int64) (*domain.Expansion, error) {
	if m.expansion == nil && m.err == nil {
		return nil, domain.ErrNotFound
	}
	return m.expansion, m.err
}

func (m *mockLibraryService) Terms(_ context.Context) ([]domain.Term, error) {
	return m.terms, m.err
}

// mockMetricsService is a mock implementation of driving.MetricsService.
type mockMetricsService struct {
	dashboard *domain.Dashboard
	err       error
}

func (m *mockMetricsService) Dashboard(_ context.Context) (*domain.Dashboard, error) {
	return m.dashboard, m.err
}

func (m *mockMetricsService) PhaseThroughput(_ context.Context) ([]domain.PhasePoint, error) {
	if m.dashboard == nil {
		return nil, m.err
	}
	return m.dashboard.Throughput, m.err
}

func (m *mockMetricsService) SessionPerformance(_ context.Context) ([]domain.SessionPoint, error) {
	if m.dashboard == nil {
		return nil, m.err
	}
	return m.dashboard.Performance, m.err
}

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct {
	snapshot *domain.Snapshot
	json     string
	html     string
	err      error
}

func (m *mockExportService) Snapshot(_ context.Context) (*domain.Snapshot, error) {
	return m.snapshot, m.err
}

func (m *mockExportService) WriteSnapshot(_ context.Context, w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, m.json)
	return err
}

func (m *mockExportService) WriteReport(_ context.Context, w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, m.html)
	return err
}

func (m *mockExportService) ReportContentType() string {
	return "text/html; charset=utf-8"
}

func newMockPorts() (*Ports, *mockLibraryService, *mockMetricsService, *mockExportService) {
	library := &mockLibraryService{}
	metrics := &mockMetricsService{}
	export := &mockExportService{}
	return &Ports{Library: library, Metrics: metrics, Export: export}, library, metrics, export
}

func defaultOptions() Options {
	return Options{Stress: domain.StressReading{Before: 5, After: 4}, ResultLimit: 10}
}

func intPtr(v int) *int {
	return &v
}
