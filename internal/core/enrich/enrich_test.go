package enrich

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantMetaphors  []domain.MetaphorPair
		wantSections   []string
		wantControls   []string
		wantSummaryHas string
	}{
		{
			name:           "impurity cue",
			text:           "I feel dirty after that meeting.",
			wantMetaphors:  []domain.MetaphorPair{{Cue: "dirty", Concept: "impurity"}},
			wantSections:   []string{"Impurity control", "Chelation", "Buffers"},
			wantControls:   []string{"solvent change", "chelation", "buffer", "remove product"},
			wantSummaryHas: "Mapped dirty to impurity.",
		},
		{
			name:           "loop cue",
			text:           "Stuck in a LOOP of worry",
			wantMetaphors:  []domain.MetaphorPair{{Cue: "loop", Concept: "radical scavenger"}},
			wantSections:   []string{"Radical control"},
			wantControls:   []string{"radical scavenger"},
			wantSummaryHas: "Controls: radical scavenger.",
		},
		{
			name: "both cues",
			text: "Washed and clean but still in a loop",
			wantMetaphors: []domain.MetaphorPair{
				{Cue: "washed", Concept: "solvent wash"},
				{Cue: "clean", Concept: "solvent wash"},
				{Cue: "loop", Concept: "radical scavenger"},
			},
			wantSections:   []string{"Impurity control", "Chelation", "Buffers", "Radical control"},
			wantControls:   []string{"solvent change", "chelation", "buffer", "remove product", "radical scavenger"},
			wantSummaryHas: "to solvent wash, radical scavenger.",
		},
		{
			name: "no cue",
			text: "Python is widely used for data science.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Analyze(tt.text)

			assert.Equal(t, tt.wantMetaphors, e.Metaphors)
			assert.Equal(t, tt.wantSections, e.Sections)
			var controls []string
			for _, s := range e.Strategies {
				controls = append(controls, s.Control)
				assert.NotEmpty(t, s.Actions)
			}
			assert.Equal(t, tt.wantControls, controls)
			if tt.wantSummaryHas == "" {
				assert.Empty(t, e.Summary)
			} else {
				assert.Contains(t, e.Summary, tt.wantSummaryHas)
			}
		})
	}
}

func TestAnalyze_Keywords(t *testing.T) {
	e := Analyze("SQLite is perfect for embedded/local apps; sqlite v3.45 rocks. a-b ab abc")

	assert.Equal(t, []string{"sqlite", "perfect", "embedded", "local", "apps", "v3.45", "rocks"}, e.Keywords)
}

func TestAnalyze_KeywordCap(t *testing.T) {
	words := make([]string, 0, 80)
	for i := 0; i < 80; i++ {
		words = append(words, fmt.Sprintf("word%d", i))
	}

	e := Analyze(strings.Join(words, " "))

	require.Len(t, e.Keywords, MaxKeywords)
	assert.Equal(t, "word0", e.Keywords[0])
	assert.Equal(t, "word49", e.Keywords[MaxKeywords-1])
}

func TestExpand(t *testing.T) {
	text := "Long day. I feel dirty again! Then the loop starts"
	e := Analyze(text)

	exp := Expand(text, e, domain.BaselineTerms)

	require.NotNil(t, exp)
	assert.Equal(t, []domain.FramedTerm{
		{Term: "dirty", Note: domain.FrameNote{Chem: "impurity", Frame: "Unwanted substance in a system"}},
		{Term: "loop", Note: domain.FrameNote{Chem: "radical scavenger", Frame: "Quenches reactive radicals"}},
	}, exp.FramedTerms)
	assert.Equal(t, []domain.TermWindow{
		{Term: "dirty", Window: "I feel dirty again", Position: 2},
		{Term: "loop", Window: "Then the loop starts", Position: 2},
	}, exp.Windows)
	assert.Equal(t,
		"Feeling of dirtiness: change solvent/context. Friend/humor stops loops: trusted friend/humor.",
		exp.HumanizedSummary)
}

func TestExpand_SharedConceptOnce(t *testing.T) {
	text := "washed and clean"

	exp := Expand(text, Analyze(text), domain.BaselineTerms)

	require.NotNil(t, exp)
	assert.Len(t, exp.FramedTerms, 2)
	assert.Equal(t, "Shower/clean environment: fresh towel/new scent/sunlight.", exp.HumanizedSummary)
}

func TestExpand_UnknownConcept(t *testing.T) {
	text := "dirty"

	exp := Expand(text, Analyze(text), nil)

	require.NotNil(t, exp)
	assert.Equal(t, "impurity", exp.FramedTerms[0].Note.Chem)
	assert.Empty(t, exp.FramedTerms[0].Note.Frame)
	assert.Empty(t, exp.HumanizedSummary)
}

func TestExpand_NoMetaphors(t *testing.T) {
	text := "plain note"

	assert.Nil(t, Expand(text, Analyze(text), domain.BaselineTerms))
}
