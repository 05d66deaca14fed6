package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driven"
)

// assetStore implements driven.AssetStore.
type assetStore struct {
	store *Store
}

var _ driven.AssetStore = (*assetStore)(nil)

const assetColumns = `id, type, created_at, raw_text,
	keywords_json, metaphors_json, structure_json, strategy_json, summary_text`

// Insert appends a new asset and its optional expansion in one transaction.
func (s *assetStore) Insert(ctx context.Context, in domain.AssetInput) (*domain.Asset, error) {
	asset := domain.Asset{
		Type:       domain.AssetTypeConversation,
		CreatedAt:  fromUnix(toUnix(in.CreatedAt)),
		RawText:    in.RawText,
		Enrichment: compactEnrichment(in.Enrichment.Clone()),
	}
	cols, err := encodeEnrichment(asset.Enrichment)
	if err != nil {
		return nil, err
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO assets (type, created_at, raw_text,
			keywords_json, metaphors_json, structure_json, strategy_json, summary_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, asset.Type, toUnix(asset.CreatedAt), asset.RawText,
		cols.keywords, cols.metaphors, cols.structure, cols.strategy, cols.summary)
	if err != nil {
		return nil, fmt.Errorf("inserting asset: %w", err)
	}

	asset.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading asset id: %w", err)
	}

	if in.Expansion != nil {
		if err := insertExpansion(ctx, tx, asset.ID, in.Expansion); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing asset: %w", err)
	}
	return &asset, nil
}

// Search returns matching assets, most recent first.
// lower() folds ASCII letters only.
func (s *assetStore) Search(ctx context.Context, query domain.AssetQuery) ([]domain.Asset, error) {
	var (
		where []string
		args  []any
	)
	if strings.TrimSpace(query.Text) != "" {
		where = append(where, `instr(lower(raw_text), lower(?)) > 0`)
		args = append(args, query.Text)
	}
	if query.Topic != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM json_each(assets.structure_json, '$.sections') AS sec
			WHERE instr(lower(sec.value), lower(?)) > 0)`)
		args = append(args, query.Topic)
	}
	if query.Metaphor != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM json_each(assets.metaphors_json, '$.pairs') AS pair
			WHERE instr(lower(json_extract(pair.value, '$[0]')), lower(?)) > 0
			   OR instr(lower(json_extract(pair.value, '$[1]')), lower(?)) > 0)`)
		args = append(args, query.Metaphor, query.Metaphor)
	}
	if query.HasStrategy {
		where = append(where, `json_array_length(strategy_json) > 0`)
	}

	stmt := "SELECT " + assetColumns + " FROM assets"
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY id DESC"

	rows, err := s.store.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying assets: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.Asset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}
	return assets, nil
}

// Get retrieves an asset by id.
func (s *assetStore) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+assetColumns+" FROM assets WHERE id = ?", id)

	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return asset, err
}

// Count returns the number of stored assets.
func (s *assetStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting assets: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(row scanner) (*domain.Asset, error) {
	var (
		asset     domain.Asset
		createdAt int64
		cols      enrichmentColumns
	)
	err := row.Scan(&asset.ID, &asset.Type, &createdAt, &asset.RawText,
		&cols.keywords, &cols.metaphors, &cols.structure, &cols.strategy, &cols.summary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning asset: %w", err)
	}
	asset.CreatedAt = fromUnix(createdAt)
	asset.Enrichment, err = decodeEnrichment(cols)
	if err != nil {
		return nil, fmt.Errorf("decoding asset %d: %w", asset.ID, err)
	}
	return &asset, nil
}
