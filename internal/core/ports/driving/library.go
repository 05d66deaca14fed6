package driving

import (
	"context"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// LibraryService exposes the tracked user operations on stored text.
// Every operation opens a session, logs its timed steps and closes the
// session with the closing stress reading.
type LibraryService interface {
	// Ingest stores text. Blank text is rejected with domain.ErrEmptyInput
	// before any session is opened.
	Ingest(ctx context.Context, text string, stress domain.StressReading) (*domain.Asset, error)

	// Search finds assets by case-insensitive substring. The query may
	// carry "topic:", "metaphor:" and "hasStrategy:true" tokens that
	// filter on the enrichment (see domain.ParseQuery). A blank query
	// returns every asset. Results are most recent first.
	Search(ctx context.Context, query string, stress domain.StressReading) (*domain.SearchResult, error)

	// Seed inserts the fixed sample texts inside one session and returns
	// the closed seed session.
	Seed(ctx context.Context) (*domain.Session, error)

	// Get retrieves one asset without opening a session.
	Get(ctx context.Context, id int64) (*domain.Asset, error)

	// Count returns the number of stored assets without opening a session.
	Count(ctx context.Context) (int, error)

	// Expansion returns the newest expansion of an asset.
	// Returns domain.ErrNotFound when the asset has none.
	Expansion(ctx context.Context, assetID int64) (*domain.Expansion, error)

	// Terms returns the term dictionary.
	Terms(ctx context.Context) ([]domain.Term, error)
}
