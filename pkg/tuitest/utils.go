// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// views can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight(line, " "))
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}}
}

// KeyType creates a key press message for a special key such as
// tea.KeyCtrlS or tea.KeyLeft.
func KeyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// KeyEnter creates an enter key press message.
func KeyEnter() tea.KeyMsg {
	return KeyType(tea.KeyEnter)
}

// KeyDown creates a down arrow key press message.
func KeyDown() tea.KeyMsg {
	return KeyType(tea.KeyDown)
}

// KeyUp creates an up arrow key press message.
func KeyUp() tea.KeyMsg {
	return KeyType(tea.KeyUp)
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

// Type returns one key press message per rune of s.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, KeyPress(r))
	}
	return msgs
}
