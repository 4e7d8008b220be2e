package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/skrive/internal/core/suggest"
)

const pronounText = "Vi mener at dette er viktig."

func pronounSuggestion() suggest.Suggestion {
	return suggest.Suggestion{
		Original: "Vi mener at dette er viktig.",
		Improved: "Dette er viktig.",
		Rules:    []string{"Vær forsiktig med personlige pronomen"},
		Annotations: []suggest.Annotation{
			{Kind: "strike-through", Text: "Vi mener at"},
		},
	}
}

const guideText = "Denne intervjuguiden er designet for bruk i en bacheloroppgave. " +
	"Spørsmålene er semistrukturerte, noe som betyr at de er ment å veilede samtalen. " +
	"Hvert spørsmål er basert på elementer fra CVF."

func guideSuggestions() []suggest.Suggestion {
	return []suggest.Suggestion{
		{
			Original: "Denne intervjuguiden er designet for bruk i en bacheloroppgave.",
			Improved: "Intervjuguiden skal brukes i en bacheloroppgave.",
			Rules:    []string{"Sløs ikke med ord og bokstaver"},
		},
		{
			Original: "Spørsmålene er semistrukturerte, noe som betyr at de er ment å veilede samtalen.",
			Improved: "Spørsmålene er semistrukturerte. De skal veilede samtalen.",
			Rules:    []string{"Det er ingen skam å sette punktum"},
		},
		{
			Original: "Hvert spørsmål er basert på elementer fra CVF.",
			Improved: "Spørsmålene bygger på elementer fra CVF.",
		},
	}
}

func startGuide(t *testing.T) *Navigator {
	t.Helper()
	n := NewNavigator()
	require.NoError(t, n.Start(guideSuggestions(), guideText))
	return n
}

func TestNavigator_PronounScenario(t *testing.T) {
	n := NewNavigator()
	require.NoError(t, n.Start([]suggest.Suggestion{pronounSuggestion()}, pronounText))

	require.NoError(t, n.Accept())
	snap := n.Snapshot()
	assert.Equal(t, "Dette er viktig.", snap.CurrentText)
	assert.Equal(t, []int{0}, snap.Accepted)
	assert.True(t, snap.IsAccepted(0))

	require.NoError(t, n.Revert())
	snap = n.Snapshot()
	assert.Equal(t, pronounText, snap.CurrentText)
	assert.Empty(t, snap.Accepted)
}

func TestNavigator_StartEmpty(t *testing.T) {
	n := NewNavigator()
	err := n.Start(nil, "tekst")
	require.ErrorIs(t, err, ErrEmptySuggestionSet)
	assert.Equal(t, StateUninitialized, n.State())

	// A failed start leaves an existing session intact.
	n = startGuide(t)
	require.NoError(t, n.Accept())
	before := n.Snapshot()
	require.ErrorIs(t, n.Start([]suggest.Suggestion{}, "annen tekst"), ErrEmptySuggestionSet)
	assert.Equal(t, before, n.Snapshot())
}

func TestNavigator_StartResetsSession(t *testing.T) {
	n := startGuide(t)
	require.NoError(t, n.Accept())
	require.NoError(t, n.Navigate(Forward))
	firstID := n.ID()

	require.NoError(t, n.Start([]suggest.Suggestion{pronounSuggestion()}, pronounText))
	snap := n.Snapshot()
	assert.Equal(t, StateReviewing, snap.State)
	assert.Equal(t, 0, snap.Cursor)
	assert.Empty(t, snap.Accepted)
	assert.Equal(t, 1, snap.Total)
	assert.Equal(t, pronounText, snap.OriginalText)
	assert.NotEqual(t, firstID, snap.ID)
}

func TestNavigator_UninitializedOperations(t *testing.T) {
	n := NewNavigator()

	_, err := n.Current()
	require.ErrorIs(t, err, ErrNotReviewing)
	require.ErrorIs(t, n.Accept(), ErrNotReviewing)
	require.ErrorIs(t, n.Revert(), ErrNotReviewing)
	require.ErrorIs(t, n.Navigate(Forward), ErrNotReviewing)
	require.ErrorIs(t, n.Advance(), ErrNotReviewing)
	assert.False(t, n.IsExhausted())
}

func TestNavigator_AcceptRevertRestoresText(t *testing.T) {
	intro := suggest.Suggestion{Original: "Innledning.", Improved: "Dette er viktig. Innledning."}

	tests := []struct {
		name        string
		text        string
		suggestions []suggest.Suggestion
		accept      []int
		revert      []int
		want        string
	}{
		{
			name:        "improved text appears earlier",
			text:        "Dette er viktig. Vi mener at dette er viktig.",
			suggestions: []suggest.Suggestion{pronounSuggestion()},
			accept:      []int{0},
			revert:      []int{0},
			want:        "Dette er viktig. Vi mener at dette er viktig.",
		},
		{
			name:        "improved text appears later",
			text:        "Vi mener at dette er viktig. Dette er viktig.",
			suggestions: []suggest.Suggestion{pronounSuggestion()},
			accept:      []int{0},
			revert:      []int{0},
			want:        "Vi mener at dette er viktig. Dette er viktig.",
		},
		{
			name:        "repeated original reverts second copy",
			text:        "Vi mener at dette er viktig. Vi mener at dette er viktig.",
			suggestions: []suggest.Suggestion{pronounSuggestion(), pronounSuggestion()},
			accept:      []int{0, 1},
			revert:      []int{1},
			want:        "Dette er viktig. Vi mener at dette er viktig.",
		},
		{
			name:        "earlier edit shifts offset",
			text:        "Innledning. Vi mener at dette er viktig.",
			suggestions: []suggest.Suggestion{pronounSuggestion(), intro},
			accept:      []int{0, 1},
			revert:      []int{0},
			want:        "Dette er viktig. Innledning. Vi mener at dette er viktig.",
		},
		{
			name:        "reverts in reverse order",
			text:        "Innledning. Vi mener at dette er viktig.",
			suggestions: []suggest.Suggestion{pronounSuggestion(), intro},
			accept:      []int{0, 1},
			revert:      []int{1, 0},
			want:        "Innledning. Vi mener at dette er viktig.",
		},
		{
			name: "falls back when edit moved",
			text: "A. B.",
			suggestions: []suggest.Suggestion{
				{Original: "A.", Improved: "X."},
				{Original: "X. B.", Improved: "B. X."},
			},
			accept: []int{0, 1},
			revert: []int{0},
			want:   "B. A.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNavigator()
			require.NoError(t, n.Start(tt.suggestions, tt.text))

			for _, i := range tt.accept {
				require.NoError(t, n.Seek(i))
				require.NoError(t, n.Accept())
			}
			for _, i := range tt.revert {
				require.NoError(t, n.Seek(i))
				require.NoError(t, n.Revert())
			}

			assert.Equal(t, tt.want, n.Snapshot().CurrentText)
		})
	}
}

func TestNavigator_AcceptRevertGuide(t *testing.T) {
	for i := range guideSuggestions() {
		n := startGuide(t)
		for j := 0; j < i; j++ {
			require.NoError(t, n.Navigate(Forward))
		}

		before := n.Snapshot().CurrentText
		require.NoError(t, n.Accept())
		assert.NotEqual(t, before, n.Snapshot().CurrentText)
		require.NoError(t, n.Revert())
		assert.Equal(t, before, n.Snapshot().CurrentText, "suggestion %d", i)
	}
}

func TestNavigator_AcceptIdempotent(t *testing.T) {
	n := startGuide(t)

	require.NoError(t, n.Accept())
	once := n.Snapshot()
	require.NoError(t, n.Accept())
	assert.Equal(t, once, n.Snapshot())
}

func TestNavigator_RevertIdempotent(t *testing.T) {
	n := startGuide(t)

	require.NoError(t, n.Revert())
	assert.Equal(t, guideText, n.Snapshot().CurrentText)

	require.NoError(t, n.Accept())
	require.NoError(t, n.Revert())
	once := n.Snapshot()
	require.NoError(t, n.Revert())
	assert.Equal(t, once, n.Snapshot())
}

func TestNavigator_NavigateFullCycle(t *testing.T) {
	n := startGuide(t)
	require.NoError(t, n.Navigate(Forward))
	require.NoError(t, n.Accept())
	before := n.Snapshot()

	for i := 0; i < n.Total(); i++ {
		require.NoError(t, n.Navigate(Forward))
	}
	assert.Equal(t, before, n.Snapshot())

	for i := 0; i < n.Total(); i++ {
		require.NoError(t, n.Navigate(Backward))
	}
	assert.Equal(t, before, n.Snapshot())
}

func TestNavigator_NavigateWraps(t *testing.T) {
	n := startGuide(t)

	require.NoError(t, n.Navigate(Backward))
	assert.Equal(t, 2, n.Snapshot().Cursor)
	require.NoError(t, n.Navigate(Forward))
	assert.Equal(t, 0, n.Snapshot().Cursor)
}

func TestNavigator_TargetNotFound(t *testing.T) {
	overlapping := []suggest.Suggestion{
		{Original: "Vi mener at dette er viktig.", Improved: "Dette er viktig."},
		{Original: "Vi mener at", Improved: "Vi tror at"},
	}

	n := NewNavigator()
	require.NoError(t, n.Start(overlapping, pronounText))
	require.NoError(t, n.Accept())
	require.NoError(t, n.Navigate(Forward))

	before := n.Snapshot()
	err := n.Accept()
	require.ErrorIs(t, err, ErrTargetNotFound)
	assert.Equal(t, before, n.Snapshot())
}

func TestNavigator_RevertTargetNotFound(t *testing.T) {
	suggestions := []suggest.Suggestion{
		{Original: "Vi mener at dette er viktig.", Improved: "Vi tror at dette er viktig."},
		{Original: "Vi tror at", Improved: "Vi vet at"},
	}

	n := NewNavigator()
	require.NoError(t, n.Start(suggestions, pronounText))
	require.NoError(t, n.Accept())
	require.NoError(t, n.Navigate(Forward))
	require.NoError(t, n.Accept())
	require.NoError(t, n.Navigate(Backward))

	before := n.Snapshot()
	require.ErrorIs(t, n.Revert(), ErrTargetNotFound)
	assert.Equal(t, before, n.Snapshot())
}

func TestNavigator_AdvanceExhausts(t *testing.T) {
	n := startGuide(t)

	require.NoError(t, n.Advance())
	require.NoError(t, n.Advance())
	assert.False(t, n.IsExhausted())
	assert.Equal(t, 2, n.Snapshot().Cursor)

	require.NoError(t, n.Advance())
	assert.True(t, n.IsExhausted())
	assert.Equal(t, StateExhausted, n.State())

	require.ErrorIs(t, n.Accept(), ErrNotReviewing)
	require.ErrorIs(t, n.Navigate(Forward), ErrNotReviewing)

	require.NoError(t, n.Start(guideSuggestions(), guideText))
	assert.Equal(t, StateReviewing, n.State())
	assert.False(t, n.IsExhausted())
}

func TestNavigator_ExhaustedWhenAllAccepted(t *testing.T) {
	n := startGuide(t)

	for i := 0; i < n.Total(); i++ {
		assert.False(t, n.IsExhausted())
		require.NoError(t, n.Accept())
		require.NoError(t, n.Navigate(Forward))
	}
	assert.True(t, n.IsExhausted())
	assert.Equal(t, StateReviewing, n.State())
}

func TestNavigator_Decline(t *testing.T) {
	n := startGuide(t)
	require.NoError(t, n.Accept())

	require.NoError(t, n.Decline())
	snap := n.Snapshot()
	assert.Equal(t, guideText, snap.CurrentText)
	assert.Empty(t, snap.Accepted)
	assert.Equal(t, 1, snap.Cursor)
}

func TestNavigator_Finish(t *testing.T) {
	n := startGuide(t)
	n.Finish()
	assert.True(t, n.IsExhausted())

	fresh := NewNavigator()
	fresh.Finish()
	assert.Equal(t, StateUninitialized, fresh.State())
}

func TestNavigator_AcceptAll(t *testing.T) {
	suggestions := append(guideSuggestions(), suggest.Suggestion{
		Original: "Finnes ikke i teksten.",
		Improved: "Ny.",
	})

	n := NewNavigator()
	require.NoError(t, n.Start(suggestions, guideText))
	require.NoError(t, n.Navigate(Forward))

	skipped, err := n.AcceptAll()
	require.NoError(t, err)
	assert.Equal(t, []int{3}, skipped)

	snap := n.Snapshot()
	assert.Equal(t, 1, snap.Cursor)
	assert.Equal(t, []int{0, 1, 2}, snap.Accepted)
	assert.Equal(t,
		"Intervjuguiden skal brukes i en bacheloroppgave. "+
			"Spørsmålene er semistrukturerte. De skal veilede samtalen. "+
			"Spørsmålene bygger på elementer fra CVF.",
		snap.CurrentText)

	sum := n.Summary()
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 3, sum.Accepted)
	assert.Equal(t, 1, sum.Declined)
	assert.True(t, sum.Changed)
}

func TestNavigator_CurrentRenderState(t *testing.T) {
	n := NewNavigator()
	require.NoError(t, n.Start([]suggest.Suggestion{pronounSuggestion()}, pronounText))

	v, err := n.Current()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, 1, v.Total)
	assert.False(t, v.Accepted)
	assert.Equal(t, ActionAccept, v.Action())
	assert.Equal(t, MatchSentenceRun, v.Target.Tier)
	assert.Equal(t, Span{Start: 0, End: len(pronounText)}, v.Target.Span)
	require.Len(t, v.Annotations, 1)
	assert.Equal(t, "strike-through", v.Annotations[0].Kind)
	assert.Equal(t, Span{Start: 0, End: len("Vi mener at")}, v.Annotations[0].Span)

	require.NoError(t, n.Accept())
	v, err = n.Current()
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Equal(t, ActionRevert, v.Action())
	assert.Equal(t, MatchSentenceRun, v.Target.Tier)
	assert.Equal(t, "Dette er viktig.", n.Snapshot().CurrentText[v.Target.Start:v.Target.End])
	assert.Empty(t, v.Annotations, "struck text no longer present")
}
