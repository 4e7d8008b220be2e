package review

import (
	"errors"
	"fmt"

	"github.com/colonyops/skrive/internal/core/suggest"
)

// Outcome is the result of applying a selection of suggestions in one pass.
type Outcome struct {
	Summary
	Skipped []int // selected indices whose target was not found
}

// ApplySelection accepts the suggestions at indices against text, in
// suggestion order, and returns the resulting document. Duplicate indices
// are ignored. Suggestions whose target cannot be found are skipped and
// reported in Outcome.Skipped.
func ApplySelection(suggestions []suggest.Suggestion, text string, indices []int) (Outcome, error) {
	n := NewNavigator()
	if err := n.Start(suggestions, text); err != nil {
		return Outcome{}, err
	}

	selected := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(suggestions) {
			return Outcome{}, fmt.Errorf("select %d of %d: %w", i, len(suggestions), ErrIndexOutOfRange)
		}
		selected[i] = true
	}

	var skipped []int
	for i := range suggestions {
		if !selected[i] {
			continue
		}
		if err := n.Seek(i); err != nil {
			return Outcome{}, err
		}
		if err := n.Accept(); err != nil {
			if !errors.Is(err, ErrTargetNotFound) {
				return Outcome{}, err
			}
			skipped = append(skipped, i)
		}
	}

	n.Finish()
	return Outcome{Summary: n.Summary(), Skipped: skipped}, nil
}
