package enrich

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// MaxKeywords caps the keyword list of one asset.
const MaxKeywords = 50

type cue struct {
	word    string
	concept string
}

// cues are checked in order against the lowercased text, as substrings.
var cues = []cue{
	{word: "dirty", concept: "impurity"},
	{word: "washed", concept: "solvent wash"},
	{word: "clean", concept: "solvent wash"},
	{word: "loop", concept: "radical scavenger"},
}

var (
	impurityCues = []string{"dirty", "washed", "clean"}
	loopCues     = []string{"loop"}
)

var (
	keywordPattern  = regexp.MustCompile(`[a-z][a-z0-9\-.]{3,}`)
	sentencePattern = regexp.MustCompile(`[^.!?\n]+`)
)

// Analyze derives the enrichment of text.
func Analyze(text string) domain.Enrichment {
	lower := strings.ToLower(text)

	e := domain.Enrichment{Keywords: keywords(lower)}
	for _, c := range cues {
		if strings.Contains(lower, c.word) {
			e.Metaphors = append(e.Metaphors, domain.MetaphorPair{Cue: c.word, Concept: c.concept})
		}
	}

	if containsAny(lower, impurityCues) {
		e.Sections = append(e.Sections, "Impurity control", "Chelation", "Buffers")
		e.Strategies = append(e.Strategies,
			domain.Strategy{Control: "solvent change", Actions: []string{"fresh towel", "new scent", "sunlight"}},
			domain.Strategy{Control: "chelation", Actions: []string{"supportive partner/therapist dialogue"}},
			domain.Strategy{Control: "buffer", Actions: []string{"self-statement: 'I'm clean now'"}},
			domain.Strategy{Control: "remove product", Actions: []string{"symbolic closure: new clothes, clean sheets"}},
		)
	}
	if containsAny(lower, loopCues) {
		e.Sections = append(e.Sections, "Radical control")
		e.Strategies = append(e.Strategies,
			domain.Strategy{Control: "radical scavenger", Actions: []string{"trusted friend/humor reassurance"}},
		)
	}

	e.Summary = summarize(e)
	return e
}

// Expand frames the metaphors of e against terms. Returns nil when e
// has no metaphors. Concepts missing from terms keep an empty frame and
// are left out of the humanized summary.
func Expand(text string, e domain.Enrichment, terms []domain.Term) *domain.Expansion {
	if len(e.Metaphors) == 0 {
		return nil
	}

	dict := make(map[string]domain.Term, len(terms))
	for _, t := range terms {
		dict[strings.ToLower(t.Term)] = t
	}
	sentences := sentencePattern.FindAllString(text, -1)

	exp := &domain.Expansion{
		FramedTerms: make([]domain.FramedTerm, 0, len(e.Metaphors)),
		Windows:     make([]domain.TermWindow, 0, len(e.Metaphors)),
	}
	seen := make(map[string]bool)
	var human []string
	for _, pair := range e.Metaphors {
		term, known := dict[pair.Concept]
		exp.FramedTerms = append(exp.FramedTerms, domain.FramedTerm{
			Term: pair.Cue,
			Note: domain.FrameNote{Chem: pair.Concept, Frame: term.ScienceDefinition},
		})
		if w, ok := window(sentences, pair.Cue); ok {
			exp.Windows = append(exp.Windows, w)
		}
		if known && !seen[pair.Concept] {
			seen[pair.Concept] = true
			human = append(human, fmt.Sprintf("%s: %s.", term.HumanAnalogy, strings.ToLower(term.HumanContextStrategy)))
		}
	}
	exp.HumanizedSummary = strings.Join(human, " ")
	return exp
}

// keywords returns distinct matches of keywordPattern in first-seen
// order, with trailing punctuation trimmed.
func keywords(lower string) []string {
	matches := keywordPattern.FindAllString(lower, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, min(len(matches), MaxKeywords))
	for _, m := range matches {
		m = strings.TrimRight(m, ".-")
		if len(m) < 4 || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
		if len(out) == MaxKeywords {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func window(sentences []string, cueWord string) (domain.TermWindow, bool) {
	for _, sentence := range sentences {
		if !strings.Contains(strings.ToLower(sentence), cueWord) {
			continue
		}
		words := strings.Fields(sentence)
		for i, w := range words {
			if strings.Contains(strings.ToLower(w), cueWord) {
				return domain.TermWindow{Term: cueWord, Window: strings.Join(words, " "), Position: i}, true
			}
		}
	}
	return domain.TermWindow{}, false
}

func summarize(e domain.Enrichment) string {
	if len(e.Metaphors) == 0 {
		return ""
	}
	var cueWords, concepts, controls []string
	seen := make(map[string]bool)
	for _, pair := range e.Metaphors {
		cueWords = append(cueWords, pair.Cue)
		if !seen[pair.Concept] {
			seen[pair.Concept] = true
			concepts = append(concepts, pair.Concept)
		}
	}
	for _, s := range e.Strategies {
		controls = append(controls, s.Control)
	}
	return fmt.Sprintf("Mapped %s to %s. Controls: %s.",
		strings.Join(cueWords, ", "), strings.Join(concepts, ", "), strings.Join(controls, ", "))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
