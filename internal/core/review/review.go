// Package review implements the edit navigator: a state machine that steps
// through a list of suggestions against a live document, applying and
// reverting edits while keeping the document and acceptance set consistent.
//
// All operations are synchronous and in-memory. A Navigator is owned by a
// single review flow and is not safe for concurrent use.
package review

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/colonyops/skrive/internal/core/suggest"
)

// Sentinel errors for navigator operations. None of them change session state.
var (
	ErrEmptySuggestionSet = errors.New("no suggestions to review")
	ErrTargetNotFound     = errors.New("target text not found in document")
	ErrNotReviewing       = errors.New("review session is not active")
	ErrIndexOutOfRange    = errors.New("suggestion index out of range")
)

// State is the lifecycle state of a review session.
type State int

const (
	StateUninitialized State = iota
	StateReviewing
	StateExhausted
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReviewing:
		return "reviewing"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Direction selects which way Navigate moves the cursor.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Action is the edit action available for the suggestion under the cursor.
type Action int

const (
	ActionAccept Action = iota
	ActionRevert
)

// Snapshot is a read-only copy of session state for rendering.
type Snapshot struct {
	ID           string
	State        State
	OriginalText string
	CurrentText  string
	Cursor       int
	Accepted     []int // sorted ascending
	Total        int
}

// IsAccepted reports whether index i is in the accepted set.
func (s Snapshot) IsAccepted(i int) bool {
	idx := sort.SearchInts(s.Accepted, i)
	return idx < len(s.Accepted) && s.Accepted[idx] == i
}

// Summary describes the outcome of a finished review.
type Summary struct {
	Total        int
	Accepted     int
	Declined     int
	OriginalText string
	FinalText    string
	Changed      bool
}

// Navigator owns one review session.
type Navigator struct {
	id           string
	suggestions  []suggest.Suggestion
	originalText string
	currentText  string
	cursor       int
	accepted     map[int]int // index -> byte offset of its improved text
	state        State
}

// NewNavigator returns a navigator in the uninitialized state.
func NewNavigator() *Navigator {
	return &Navigator{state: StateUninitialized}
}

// Start begins a new session over suggestions and text, replacing any
// previous session. Returns ErrEmptySuggestionSet, leaving the navigator
// untouched, when there is nothing to review.
func (n *Navigator) Start(suggestions []suggest.Suggestion, text string) error {
	if len(suggestions) == 0 {
		return ErrEmptySuggestionSet
	}

	owned := make([]suggest.Suggestion, len(suggestions))
	copy(owned, suggestions)

	*n = Navigator{
		id:           uuid.NewString(),
		suggestions:  owned,
		originalText: text,
		currentText:  text,
		cursor:       0,
		accepted:     make(map[int]int, len(owned)),
		state:        StateReviewing,
	}
	return nil
}

// ID returns the session identifier, empty before Start.
func (n *Navigator) ID() string {
	return n.id
}

// State returns the lifecycle state.
func (n *Navigator) State() State {
	return n.state
}

// Total returns the number of suggestions in the session.
func (n *Navigator) Total() int {
	return len(n.suggestions)
}

// Current returns the suggestion under the cursor with its render state.
func (n *Navigator) Current() (View, error) {
	if n.state != StateReviewing {
		return View{}, ErrNotReviewing
	}

	s := n.suggestions[n.cursor]
	target := Locate(n.currentText, s)

	return View{
		Index:       n.cursor,
		Total:       len(n.suggestions),
		Suggestion:  s,
		Accepted:    n.isAccepted(n.cursor),
		Target:      target,
		Annotations: Annotate(n.currentText, target, s.Annotations),
	}, nil
}

// Accept applies the suggestion under the cursor by replacing the first
// occurrence of its original sentence. Accepting an accepted suggestion is a
// no-op.
func (n *Navigator) Accept() error {
	if n.state != StateReviewing {
		return ErrNotReviewing
	}
	if n.isAccepted(n.cursor) {
		return nil
	}

	s := n.suggestions[n.cursor]
	at := indexOf(n.currentText, s.Original)
	if at < 0 {
		return fmt.Errorf("accept suggestion %d: %w", n.cursor, ErrTargetNotFound)
	}

	n.splice(at, len(s.Original), s.Improved)
	n.accepted[n.cursor] = at
	return nil
}

// Revert undoes an accepted suggestion, restoring the original sentence at
// the spot Accept edited. If that spot no longer holds the improved text,
// the first occurrence of it is restored instead. Reverting a suggestion that
// is not accepted is a no-op.
func (n *Navigator) Revert() error {
	if n.state != StateReviewing {
		return ErrNotReviewing
	}
	at, ok := n.accepted[n.cursor]
	if !ok {
		return nil
	}

	s := n.suggestions[n.cursor]
	if at > len(n.currentText) || !strings.HasPrefix(n.currentText[at:], s.Improved) {
		at = indexOf(n.currentText, s.Improved)
	}
	if at < 0 {
		return fmt.Errorf("revert suggestion %d: %w", n.cursor, ErrTargetNotFound)
	}

	delete(n.accepted, n.cursor)
	n.splice(at, len(s.Improved), s.Original)
	return nil
}

// Navigate moves the cursor one step, wrapping at both ends.
func (n *Navigator) Navigate(dir Direction) error {
	if n.state != StateReviewing {
		return ErrNotReviewing
	}

	total := len(n.suggestions)
	switch dir {
	case Backward:
		n.cursor = (n.cursor - 1 + total) % total
	default:
		n.cursor = (n.cursor + 1) % total
	}
	return nil
}

// Seek moves the cursor directly to suggestion i.
func (n *Navigator) Seek(i int) error {
	if n.state != StateReviewing {
		return ErrNotReviewing
	}
	if i < 0 || i >= len(n.suggestions) {
		return fmt.Errorf("seek %d of %d: %w", i, len(n.suggestions), ErrIndexOutOfRange)
	}
	n.cursor = i
	return nil
}

// Advance moves forward without wrapping. Advancing from the last suggestion
// finishes the session.
func (n *Navigator) Advance() error {
	if n.state != StateReviewing {
		return ErrNotReviewing
	}

	if n.cursor >= len(n.suggestions)-1 {
		n.state = StateExhausted
		return nil
	}
	n.cursor++
	return nil
}

// Decline keeps the original text for the suggestion under the cursor,
// reverting it first if it was accepted, and advances.
func (n *Navigator) Decline() error {
	if err := n.Revert(); err != nil {
		return err
	}
	return n.Advance()
}

// AcceptAll visits every suggestion in order and accepts it. Suggestions whose
// target cannot be found are skipped and returned. The cursor is restored.
func (n *Navigator) AcceptAll() ([]int, error) {
	if n.state != StateReviewing {
		return nil, ErrNotReviewing
	}

	start := n.cursor
	var skipped []int
	for i := range n.suggestions {
		n.cursor = i
		if err := n.Accept(); err != nil {
			if !errors.Is(err, ErrTargetNotFound) {
				n.cursor = start
				return skipped, err
			}
			skipped = append(skipped, i)
		}
	}
	n.cursor = start
	return skipped, nil
}

// Finish marks the session exhausted regardless of position.
func (n *Navigator) Finish() {
	if n.state == StateReviewing {
		n.state = StateExhausted
	}
}

// IsExhausted reports whether the review is over: either every suggestion is
// accepted or the caller finished or advanced past the end.
func (n *Navigator) IsExhausted() bool {
	switch n.state {
	case StateExhausted:
		return true
	case StateReviewing:
		return len(n.accepted) == len(n.suggestions)
	default:
		return false
	}
}

// Snapshot returns a copy of the session state.
func (n *Navigator) Snapshot() Snapshot {
	accepted := make([]int, 0, len(n.accepted))
	for i := range n.accepted {
		accepted = append(accepted, i)
	}
	sort.Ints(accepted)

	return Snapshot{
		ID:           n.id,
		State:        n.state,
		OriginalText: n.originalText,
		CurrentText:  n.currentText,
		Cursor:       n.cursor,
		Accepted:     accepted,
		Total:        len(n.suggestions),
	}
}

// Summary reports the outcome of the session so far.
func (n *Navigator) Summary() Summary {
	accepted := len(n.accepted)
	return Summary{
		Total:        len(n.suggestions),
		Accepted:     accepted,
		Declined:     len(n.suggestions) - accepted,
		OriginalText: n.originalText,
		FinalText:    n.currentText,
		Changed:      n.currentText != n.originalText,
	}
}

func (n *Navigator) isAccepted(i int) bool {
	_, ok := n.accepted[i]
	return ok
}

// splice replaces size bytes at at with replacement and shifts the recorded
// offsets of accepted edits that lie after the replaced range.
func (n *Navigator) splice(at, size int, replacement string) {
	n.currentText = n.currentText[:at] + replacement + n.currentText[at+size:]

	delta := len(replacement) - size
	if delta == 0 {
		return
	}
	for i, off := range n.accepted {
		if off >= at+size {
			n.accepted[i] = off + delta
		}
	}
}

// indexOf is strings.Index that never matches an empty needle.
func indexOf(text, sub string) int {
	if sub == "" {
		return -1
	}
	return strings.Index(text, sub)
}
