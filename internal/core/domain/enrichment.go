package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Enrichment is the metaphor analysis attached to an asset when it is
// ingested. Every field is derived from the raw text; nothing is edited
// afterwards.
type Enrichment struct {
	// Keywords are distinct lowercase words of four or more characters,
	// in order of first appearance, capped at 50.
	Keywords []string `json:"keywords,omitempty"`

	// Metaphors pair each cue word found in the text with the chemistry
	// concept it maps to.
	Metaphors []MetaphorPair `json:"metaphors,omitempty"`

	// Sections are the topic headings the cues fall under.
	Sections []string `json:"sections,omitempty"`

	// Strategies list the chemistry controls and their human actions.
	Strategies []Strategy `json:"strategies,omitempty"`

	// Summary is a one-line description of the mapping. Empty when no cue matched.
	Summary string `json:"summary,omitempty"`
}

// MetaphorPair maps a cue word to a concept. It encodes as a two-element
// JSON array: ["dirty", "impurity"].
type MetaphorPair struct {
	Cue     string
	Concept string
}

// MarshalJSON encodes the pair as [cue, concept].
func (p MetaphorPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Cue, p.Concept})
}

// UnmarshalJSON decodes a [cue, concept] array.
func (p *MetaphorPair) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("metaphor pair: want 2 elements, got %d", len(pair))
	}
	p.Cue, p.Concept = pair[0], pair[1]
	return nil
}

// String renders the pair as "cue→concept".
func (p MetaphorPair) String() string {
	return p.Cue + "→" + p.Concept
}

// Strategy is one chemistry control with the human actions that mirror it.
type Strategy struct {
	Control string   `json:"chem_control"`
	Actions []string `json:"actions"`
}

// HasStrategy reports whether at least one strategy was derived.
func (e Enrichment) HasStrategy() bool {
	return len(e.Strategies) > 0
}

// HasTopic reports whether any section contains topic, ignoring case.
func (e Enrichment) HasTopic(topic string) bool {
	needle := strings.ToLower(topic)
	for _, section := range e.Sections {
		if strings.Contains(strings.ToLower(section), needle) {
			return true
		}
	}
	return false
}

// HasMetaphor reports whether either side of any pair contains m, ignoring case.
func (e Enrichment) HasMetaphor(m string) bool {
	needle := strings.ToLower(m)
	for _, pair := range e.Metaphors {
		if strings.Contains(strings.ToLower(pair.Cue), needle) ||
			strings.Contains(strings.ToLower(pair.Concept), needle) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (e Enrichment) Clone() Enrichment {
	out := Enrichment{Summary: e.Summary}
	if e.Keywords != nil {
		out.Keywords = append([]string(nil), e.Keywords...)
	}
	if e.Metaphors != nil {
		out.Metaphors = append([]MetaphorPair(nil), e.Metaphors...)
	}
	if e.Sections != nil {
		out.Sections = append([]string(nil), e.Sections...)
	}
	if e.Strategies != nil {
		out.Strategies = make([]Strategy, len(e.Strategies))
		for i, s := range e.Strategies {
			out.Strategies[i] = Strategy{Control: s.Control, Actions: append([]string(nil), s.Actions...)}
		}
	}
	return out
}

// Expansion frames the cue words of one asset against the term dictionary.
// It is written in the same transaction as its asset.
type Expansion struct {
	ID               int64        `json:"id"`
	AssetID          int64        `json:"asset_id"`
	FramedTerms      []FramedTerm `json:"framed_terms"`
	Windows          []TermWindow `json:"windows"`
	HumanizedSummary string       `json:"humanized_summary"`
	CreatedAt        time.Time    `json:"created_at"`
}

// FramedTerm annotates a cue with its chemistry concept.
type FramedTerm struct {
	Term string    `json:"term"`
	Note FrameNote `json:"note"`
}

// FrameNote is the chemistry side of a framed term.
type FrameNote struct {
	Chem  string `json:"chem"`
	Frame string `json:"frame"`
}

// TermWindow is the sentence a cue was found in. Position is the
// zero-based index of the cue's word within the window.
type TermWindow struct {
	Term     string `json:"term"`
	Window   string `json:"window"`
	Position int    `json:"position"`
}

// AssetInput is everything written when an asset is stored.
type AssetInput struct {
	RawText    string
	CreatedAt  time.Time
	Enrichment Enrichment

	// Expansion is optional. Its ID and AssetID are assigned by the store.
	Expansion *Expansion
}

// DictionaryVersion tags the baseline term rows.
const DictionaryVersion = "v1"

// Term is one row of the cross-domain dictionary.
type Term struct {
	ID                   int64  `json:"id"`
	Term                 string `json:"term"`
	Domain               string `json:"domain"`
	ScienceDefinition    string `json:"science_definition"`
	HumanAnalogy         string `json:"human_analogy"`
	HumanContextStrategy string `json:"human_context_strategy"`
	Version              string `json:"version"`
}

// BaselineTerms seed an empty dictionary.
var BaselineTerms = []Term{
	{Term: "impurity", Domain: "chemistry", ScienceDefinition: "Unwanted substance in a system",
		HumanAnalogy: "Feeling of dirtiness", HumanContextStrategy: "Change solvent/context", Version: DictionaryVersion},
	{Term: "solvent wash", Domain: "chemistry", ScienceDefinition: "Use solvent to remove impurities",
		HumanAnalogy: "Shower/clean environment", HumanContextStrategy: "Fresh towel/new scent/sunlight", Version: DictionaryVersion},
	{Term: "chelation", Domain: "chemistry", ScienceDefinition: "Ligand binds ions to remove them",
		HumanAnalogy: "Support binds sticky thought", HumanContextStrategy: "Supportive partner/therapist dialogue", Version: DictionaryVersion},
	{Term: "buffer", Domain: "chemistry", ScienceDefinition: "Resists pH change",
		HumanAnalogy: "Stabilizing self-talk/norms", HumanContextStrategy: "Affirmations/ground rules", Version: DictionaryVersion},
	{Term: "radical scavenger", Domain: "chemistry", ScienceDefinition: "Quenches reactive radicals",
		HumanAnalogy: "Friend/humor stops loops", HumanContextStrategy: "Trusted friend/humor", Version: DictionaryVersion},
	{Term: "symbolic closure", Domain: "obviology", ScienceDefinition: "Ritual removes residue",
		HumanAnalogy: "Closure after task", HumanContextStrategy: "New clothes/clean sheets", Version: DictionaryVersion},
}

// Search tokens recognised by ParseQuery, matched case-insensitively.
const (
	TokenTopic       = "topic:"
	TokenMetaphor    = "metaphor:"
	TokenHasStrategy = "hasstrategy:true"
)

// AssetQuery is a parsed search query. Zero-valued fields do not filter.
type AssetQuery struct {
	// Text is matched case-insensitively against the raw text.
	Text string

	// Topic is matched against the enrichment sections.
	Topic string

	// Metaphor is matched against either side of each metaphor pair.
	Metaphor string

	// HasStrategy keeps only assets with at least one strategy.
	HasStrategy bool
}

// ParseQuery splits q on whitespace and lifts out the filter tokens
// "topic:<x>", "metaphor:<x>" and "hasStrategy:true". The remaining
// words, joined by single spaces, become the text filter. A query with
// no filter tokens is used verbatim.
func ParseQuery(q string) AssetQuery {
	var (
		query    AssetQuery
		rest     []string
		filtered bool
	)
	for _, word := range strings.Fields(q) {
		lower := strings.ToLower(word)
		switch {
		case strings.HasPrefix(lower, TokenTopic) && len(word) > len(TokenTopic):
			query.Topic = word[len(TokenTopic):]
			filtered = true
		case strings.HasPrefix(lower, TokenMetaphor) && len(word) > len(TokenMetaphor):
			query.Metaphor = word[len(TokenMetaphor):]
			filtered = true
		case lower == TokenHasStrategy:
			query.HasStrategy = true
			filtered = true
		default:
			rest = append(rest, word)
		}
	}
	if !filtered {
		query.Text = q
		return query
	}
	query.Text = strings.Join(rest, " ")
	return query
}

// Matches reports whether asset passes every filter of q.
// Case folding is Unicode-aware.
func (q AssetQuery) Matches(asset *Asset) bool {
	if strings.TrimSpace(q.Text) != "" &&
		!strings.Contains(strings.ToLower(asset.RawText), strings.ToLower(q.Text)) {
		return false
	}
	if q.Topic != "" && !asset.HasTopic(q.Topic) {
		return false
	}
	if q.Metaphor != "" && !asset.HasMetaphor(q.Metaphor) {
		return false
	}
	if q.HasStrategy && !asset.HasStrategy() {
		return false
	}
	return true
}
