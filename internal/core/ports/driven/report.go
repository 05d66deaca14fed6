package driven

import (
	"io"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// ReportRenderer produces the standalone visual metrics report.
// The output must be self-contained: data and drawing logic inline,
// no external resources.
type ReportRenderer interface {
	// Render writes the report for the given collections to w.
	Render(w io.Writer, sessions []domain.Session, events []domain.Event) error

	// ContentType returns the MIME type of the rendered document.
	ContentType() string
}
