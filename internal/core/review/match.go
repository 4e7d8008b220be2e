package review

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/colonyops/skrive/internal/core/suggest"
)

// MatchTier records which tier of the matching policy located a target.
type MatchTier int

const (
	// MatchNone means nothing matched; the document renders without a region.
	MatchNone MatchTier = iota
	// MatchSubstring is a plain substring hit on the original sentence.
	MatchSubstring
	// MatchSentenceRun is a run of whole sentences.
	MatchSentenceRun
)

// String returns the string representation of the tier.
func (t MatchTier) String() string {
	switch t {
	case MatchNone:
		return "none"
	case MatchSubstring:
		return "substring"
	case MatchSentenceRun:
		return "sentence-run"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range [Start, End) into the document.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Target is the located region for a suggestion.
type Target struct {
	Span
	Tier MatchTier
}

// Found reports whether a region was located.
func (t Target) Found() bool {
	return t.Tier != MatchNone
}

// Mark is an annotation resolved to a document span.
type Mark struct {
	Span
	Kind string
	Text string
}

// View is the render state for the suggestion under the cursor.
type View struct {
	Index       int
	Total       int
	Suggestion  suggest.Suggestion
	Accepted    bool
	Target      Target
	Annotations []Mark
}

// Action returns the edit action available for the suggestion.
func (v View) Action() Action {
	if v.Accepted {
		return ActionRevert
	}
	return ActionAccept
}

// SplitSentences splits text into sentences. A sentence ends at a run of
// terminal punctuation (. ! ?) followed by whitespace or end of text; text
// after the last terminator forms a final sentence. Spans exclude
// surrounding whitespace. Abbreviations such as "Dr." split like any
// other terminator.
func SplitSentences(text string) []Span {
	var spans []Span

	start := -1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		if start < 0 {
			if !unicode.IsSpace(r) {
				start = i
			}
			i += size
			continue
		}

		if isTerminal(r) {
			end := i + size
			for end < len(text) && isTerminal(rune(text[end])) {
				end++
			}
			next, _ := utf8.DecodeRuneInString(text[end:])
			if end == len(text) || unicode.IsSpace(next) {
				spans = append(spans, Span{Start: start, End: end})
				start = -1
			}
			i = end
			continue
		}

		i += size
	}

	if start >= 0 {
		end := len(strings.TrimRightFunc(text, unicode.IsSpace))
		if end > start {
			spans = append(spans, Span{Start: start, End: end})
		}
	}

	return spans
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Locate finds the region of text that s refers to, trying in order:
//
//  1. the longest contiguous run of sentences, each contained in the
//     original or improved text, whose joined text contains the original
//     sentence or a sentence of the improved text;
//  2. a substring search for the original sentence;
//  3. no region.
func Locate(text string, s suggest.Suggestion) Target {
	if span, ok := locateSentenceRun(text, s); ok {
		return Target{Span: span, Tier: MatchSentenceRun}
	}

	if i := strings.Index(text, s.Original); s.Original != "" && i >= 0 {
		return Target{Span: Span{Start: i, End: i + len(s.Original)}, Tier: MatchSubstring}
	}

	return Target{Tier: MatchNone}
}

func locateSentenceRun(text string, s suggest.Suggestion) (Span, bool) {
	sentences := SplitSentences(text)
	fragments := sentenceTexts(s.Improved)

	belongs := func(sp Span) bool {
		sentence := text[sp.Start:sp.End]
		return strings.Contains(s.Original, sentence) || strings.Contains(s.Improved, sentence)
	}

	qualifies := func(run Span) bool {
		joined := text[run.Start:run.End]
		if s.Original != "" && strings.Contains(joined, s.Original) {
			return true
		}
		for _, f := range fragments {
			if strings.Contains(joined, f) {
				return true
			}
		}
		return false
	}

	var (
		best      Span
		bestCount int
	)

	for i := 0; i < len(sentences); {
		if !belongs(sentences[i]) {
			i++
			continue
		}

		j := i
		for j+1 < len(sentences) && belongs(sentences[j+1]) {
			j++
		}

		run := Span{Start: sentences[i].Start, End: sentences[j].End}
		if count := j - i + 1; count > bestCount && qualifies(run) {
			best, bestCount = run, count
		}
		i = j + 1
	}

	return best, bestCount > 0
}

func sentenceTexts(text string) []string {
	spans := SplitSentences(text)
	out := make([]string, 0, len(spans))
	for _, sp := range spans {
		out = append(out, text[sp.Start:sp.End])
	}
	return out
}

// Annotate resolves annotations to spans inside target. Annotations whose
// text is empty or absent from the region are skipped.
func Annotate(text string, target Target, annotations []suggest.Annotation) []Mark {
	if !target.Found() {
		return nil
	}

	region := text[target.Start:target.End]
	marks := make([]Mark, 0, len(annotations))
	for _, a := range annotations {
		if a.Text == "" {
			continue
		}
		i := strings.Index(region, a.Text)
		if i < 0 {
			continue
		}
		start := target.Start + i
		marks = append(marks, Mark{
			Span: Span{Start: start, End: start + len(a.Text)},
			Kind: a.Kind,
			Text: a.Text,
		})
	}
	return marks
}
