package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/skrive/internal/core/suggest"
)

func sentenceStrings(text string) []string {
	var out []string
	for _, sp := range SplitSentences(text) {
		out = append(out, text[sp.Start:sp.End])
	}
	return out
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "single sentence",
			text: "Dette er viktig.",
			want: []string{"Dette er viktig."},
		},
		{
			name: "mixed terminators and whitespace",
			text: "  Hei! Går det bra?\nJa.  ",
			want: []string{"Hei!", "Går det bra?", "Ja."},
		},
		{
			name: "punctuation run",
			text: "Hva?! Nei...  Jo.",
			want: []string{"Hva?!", "Nei...", "Jo."},
		},
		{
			name: "trailing fragment without terminator",
			text: "Første setning. Andre uten punktum",
			want: []string{"Første setning.", "Andre uten punktum"},
		},
		{
			name: "decimal is not a break",
			text: "Det kostet 2.5 kroner. Billig.",
			want: []string{"Det kostet 2.5 kroner.", "Billig."},
		},
		{
			name: "abbreviations split naively",
			text: "Dr. Hansen kom.",
			want: []string{"Dr.", "Hansen kom."},
		},
		{
			name: "non-ascii text",
			text: "Blåbær er gode. Ærlig talt!",
			want: []string{"Blåbær er gode.", "Ærlig talt!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sentenceStrings(tt.text))
		})
	}
}

func TestLocate(t *testing.T) {
	text := "Innledning her. Vi mener at dette er viktig. Det er slik at vi starter. Avslutning."

	tests := []struct {
		name     string
		s        suggest.Suggestion
		wantTier MatchTier
		wantText string
	}{
		{
			name:     "whole sentence",
			s:        suggest.Suggestion{Original: "Vi mener at dette er viktig.", Improved: "Dette er viktig."},
			wantTier: MatchSentenceRun,
			wantText: "Vi mener at dette er viktig.",
		},
		{
			name: "multi sentence original",
			s: suggest.Suggestion{
				Original: "Vi mener at dette er viktig. Det er slik at vi starter.",
				Improved: "Dette er viktig, og vi starter.",
			},
			wantTier: MatchSentenceRun,
			wantText: "Vi mener at dette er viktig. Det er slik at vi starter.",
		},
		{
			name:     "partial sentence falls back to substring",
			s:        suggest.Suggestion{Original: "Det er slik at", Improved: "Slik"},
			wantTier: MatchSubstring,
			wantText: "Det er slik at",
		},
		{
			name:     "missing original",
			s:        suggest.Suggestion{Original: "Finnes ikke.", Improved: "Nei."},
			wantTier: MatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Locate(text, tt.s)
			assert.Equal(t, tt.wantTier, got.Tier)
			if tt.wantTier == MatchNone {
				assert.False(t, got.Found())
				return
			}
			assert.Equal(t, tt.wantText, text[got.Start:got.End])
		})
	}
}

func TestLocate_ImprovedFragments(t *testing.T) {
	// After acceptance the document holds the improved text split into
	// several sentences; the whole replacement is highlighted.
	s := suggest.Suggestion{
		Original: "Spørsmålene er semistrukturerte, noe som betyr at de skal veilede samtalen.",
		Improved: "Spørsmålene er semistrukturerte. De skal veilede samtalen.",
	}
	text := "Start. Spørsmålene er semistrukturerte. De skal veilede samtalen. Slutt."

	got := Locate(text, s)
	assert.Equal(t, MatchSentenceRun, got.Tier)
	assert.Equal(t, "Spørsmålene er semistrukturerte. De skal veilede samtalen.", text[got.Start:got.End])
}

func TestLocate_LongestRunWins(t *testing.T) {
	s := suggest.Suggestion{
		Original: "Ja.",
		Improved: "Ja. Helt sikkert. Uten tvil.",
	}
	text := "Ja. Kanskje. Ja. Helt sikkert. Uten tvil."

	got := Locate(text, s)
	assert.Equal(t, MatchSentenceRun, got.Tier)
	assert.Equal(t, "Ja. Helt sikkert. Uten tvil.", text[got.Start:got.End])
}

func TestAnnotate(t *testing.T) {
	text := "Innledning. Vi mener at dette er veldig viktig."
	s := suggest.Suggestion{Original: "Vi mener at dette er veldig viktig.", Improved: "Dette er viktig."}
	target := Locate(text, s)

	marks := Annotate(text, target, []suggest.Annotation{
		{Kind: "strike-through", Text: "Vi mener at"},
		{Kind: "underline", Text: "finnes ikke"},
		{Kind: "highlight", Text: ""},
		{Kind: "bølge", Text: "veldig"},
	})

	if assert.Len(t, marks, 2) {
		assert.Equal(t, "strike-through", marks[0].Kind)
		assert.Equal(t, "Vi mener at", text[marks[0].Start:marks[0].End])
		assert.Equal(t, "bølge", marks[1].Kind)
		assert.Equal(t, "veldig", text[marks[1].Start:marks[1].End])
	}

	assert.Nil(t, Annotate(text, Target{Tier: MatchNone}, s.Annotations))
}

func TestAnnotate_OnlyInsideRegion(t *testing.T) {
	text := "Vi mener at noe. Vi mener at dette er viktig."
	s := suggest.Suggestion{Original: "Vi mener at dette er viktig.", Improved: "Dette er viktig."}
	target := Locate(text, s)

	marks := Annotate(text, target, []suggest.Annotation{{Kind: "underline", Text: "Vi mener at"}})
	if assert.Len(t, marks, 1) {
		assert.Equal(t, target.Start, marks[0].Start)
	}
}
