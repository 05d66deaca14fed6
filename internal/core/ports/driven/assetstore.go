package driven

import (
	"context"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// AssetStore persists ingested text entries with their enrichment, the
// expansions framed from them and the term dictionary.
// The store accepts any string; input validation is the caller's concern.
type AssetStore interface {
	// Insert appends a new asset and, when in.Expansion is set, its
	// expansion. Both are written or neither is.
	Insert(ctx context.Context, in domain.AssetInput) (*domain.Asset, error)

	// Search returns assets passing every filter of query, most recent
	// first. A zero query returns all assets.
	Search(ctx context.Context, query domain.AssetQuery) ([]domain.Asset, error)

	// Get retrieves an asset by id. Returns domain.ErrNotFound on a miss.
	Get(ctx context.Context, id int64) (*domain.Asset, error)

	// Count returns the number of stored assets.
	Count(ctx context.Context) (int, error)

	// LatestExpansion returns the newest expansion of an asset.
	// Returns domain.ErrNotFound when the asset has none.
	LatestExpansion(ctx context.Context, assetID int64) (*domain.Expansion, error)

	// ListTerms returns the term dictionary in id order.
	ListTerms(ctx context.Context) ([]domain.Term, error)
}
