package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// ExportService produces portable artifacts from the full data model.
type ExportService interface {
	// Snapshot returns every session, event and asset with the export time.
	Snapshot(ctx context.Context) (*domain.Snapshot, error)

	// WriteSnapshot writes the snapshot as indented JSON.
	WriteSnapshot(ctx context.Context, w io.Writer) error

	// WriteReport writes the standalone visual report.
	WriteReport(ctx context.Context, w io.Writer) error

	// ReportContentType returns the MIME type of WriteReport's output.
	ReportContentType() string
}
