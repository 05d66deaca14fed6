package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// enrichmentColumns holds the JSON columns of one assets row.
// Rows older than the enrichment migration have them all NULL.
type enrichmentColumns struct {
	keywords  sql.NullString
	metaphors sql.NullString
	structure sql.NullString
	strategy  sql.NullString
	summary   sql.NullString
}

// metaphorsDoc is the metaphors_json layout: {"pairs": [["dirty","impurity"]]}.
type metaphorsDoc struct {
	Pairs []domain.MetaphorPair `json:"pairs"`
}

// structureDoc is the structure_json layout: {"sections": ["Buffers"]}.
type structureDoc struct {
	Sections []string `json:"sections"`
}

func encodeEnrichment(e domain.Enrichment) (enrichmentColumns, error) {
	var cols enrichmentColumns
	var err error

	if cols.keywords, err = jsonColumn(nonNil(e.Keywords)); err != nil {
		return cols, fmt.Errorf("encoding keywords: %w", err)
	}
	if cols.metaphors, err = jsonColumn(metaphorsDoc{Pairs: nonNil(e.Metaphors)}); err != nil {
		return cols, fmt.Errorf("encoding metaphors: %w", err)
	}
	if cols.structure, err = jsonColumn(structureDoc{Sections: nonNil(e.Sections)}); err != nil {
		return cols, fmt.Errorf("encoding structure: %w", err)
	}
	if cols.strategy, err = jsonColumn(nonNil(e.Strategies)); err != nil {
		return cols, fmt.Errorf("encoding strategy: %w", err)
	}
	cols.summary = nullString(e.Summary)
	return cols, nil
}

func decodeEnrichment(cols enrichmentColumns) (domain.Enrichment, error) {
	var (
		e         domain.Enrichment
		metaphors metaphorsDoc
		structure structureDoc
	)
	if err := decodeColumn(cols.keywords, &e.Keywords); err != nil {
		return e, fmt.Errorf("keywords: %w", err)
	}
	if err := decodeColumn(cols.metaphors, &metaphors); err != nil {
		return e, fmt.Errorf("metaphors: %w", err)
	}
	if err := decodeColumn(cols.structure, &structure); err != nil {
		return e, fmt.Errorf("structure: %w", err)
	}
	if err := decodeColumn(cols.strategy, &e.Strategies); err != nil {
		return e, fmt.Errorf("strategy: %w", err)
	}
	e.Metaphors = metaphors.Pairs
	e.Sections = structure.Sections
	e.Summary = cols.summary.String
	return compactEnrichment(e), nil
}

// compactEnrichment turns empty lists into nil so stored and returned
// values compare equal.
func compactEnrichment(e domain.Enrichment) domain.Enrichment {
	if len(e.Keywords) == 0 {
		e.Keywords = nil
	}
	if len(e.Metaphors) == 0 {
		e.Metaphors = nil
	}
	if len(e.Sections) == 0 {
		e.Sections = nil
	}
	if len(e.Strategies) == 0 {
		e.Strategies = nil
	}
	return e
}

func insertExpansion(ctx context.Context, tx *sql.Tx, assetID int64, exp *domain.Expansion) error {
	framed, err := json.Marshal(nonNil(exp.FramedTerms))
	if err != nil {
		return fmt.Errorf("encoding framed terms: %w", err)
	}
	windows, err := json.Marshal(nonNil(exp.Windows))
	if err != nil {
		return fmt.Errorf("encoding windows: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO expansions (asset_id, framed_terms_json, raw_filter_json, humanized_summary_text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, assetID, string(framed), string(windows), exp.HumanizedSummary, toUnix(exp.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting expansion: %w", err)
	}
	return nil
}

// LatestExpansion returns the newest expansion of an asset.
func (s *assetStore) LatestExpansion(ctx context.Context, assetID int64) (*domain.Expansion, error) {
	var (
		exp       domain.Expansion
		framed    string
		windows   string
		createdAt int64
	)
	err := s.store.db.QueryRowContext(ctx, `
		SELECT id, asset_id, framed_terms_json, raw_filter_json, humanized_summary_text, created_at
		FROM expansions WHERE asset_id = ? ORDER BY id DESC LIMIT 1
	`, assetID).Scan(&exp.ID, &exp.AssetID, &framed, &windows, &exp.HumanizedSummary, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying expansion: %w", err)
	}

	if err := json.Unmarshal([]byte(framed), &exp.FramedTerms); err != nil {
		return nil, fmt.Errorf("decoding framed terms: %w", err)
	}
	if err := json.Unmarshal([]byte(windows), &exp.Windows); err != nil {
		return nil, fmt.Errorf("decoding windows: %w", err)
	}
	exp.CreatedAt = fromUnix(createdAt)
	return &exp, nil
}

// ListTerms returns the term dictionary in id order.
func (s *assetStore) ListTerms(ctx context.Context) ([]domain.Term, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, term, domain, science_definition, human_analogy, human_context_strategy, version
		FROM x_domain_dict ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying terms: %w", err)
	}
	defer rows.Close()

	terms := make([]domain.Term, 0)
	for rows.Next() {
		var t domain.Term
		if err := rows.Scan(&t.ID, &t.Term, &t.Domain, &t.ScienceDefinition,
			&t.HumanAnalogy, &t.HumanContextStrategy, &t.Version); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating terms: %w", err)
	}
	return terms, nil
}

func jsonColumn(v any) (sql.NullString, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeColumn(col sql.NullString, v any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), v)
}

// nonNil makes nil slices encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
