package domain

import (
	"strings"
	"time"
)

// AssetTypeConversation is the only asset type currently produced by ingest.
const AssetTypeConversation = "conversation"

// Asset is one stored text entry. Assets are append-only: once created
// they are never updated or deleted.
type Asset struct {
	// ID is assigned by the store, strictly increasing and never reused.
	ID int64 `json:"id"`

	// Type is the asset kind tag.
	Type string `json:"type"`

	// CreatedAt is the insertion time (UTC, second resolution).
	CreatedAt time.Time `json:"created_at"`

	// RawText is the stored text.
	RawText string `json:"raw_text"`

	Enrichment
}

// Preview returns the text truncated to maxRunes runes, with an ellipsis
// appended when truncation happened. A non-positive maxRunes disables
// truncation.
func (a Asset) Preview(maxRunes int) string {
	if maxRunes <= 0 {
		return a.RawText
	}
	runes := []rune(a.RawText)
	if len(runes) <= maxRunes {
		return a.RawText
	}
	return string(runes[:maxRunes]) + "…"
}

// ValidateText checks text submitted for ingestion.
// Blank or whitespace-only text is rejected with ErrEmptyInput.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	return nil
}

// SearchResult is the outcome of a tracked search operation.
type SearchResult struct {
	// Query is the query as submitted ("" means all assets).
	Query string `json:"query"`

	// Assets are the matches, most recent first.
	Assets []Asset `json:"assets"`

	// SessionID is the session that tracked this search.
	SessionID int64 `json:"session_id"`
}

// Count returns the number of matching assets.
func (r *SearchResult) Count() int {
	return len(r.Assets)
}
