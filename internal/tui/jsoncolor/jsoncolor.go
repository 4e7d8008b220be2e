// Package jsoncolor pretty-prints JSON with syntax coloring for terminals.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the style for each JSON token class.
type Palette struct {
	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Literal     lipgloss.Style // true, false
	Null        lipgloss.Style
	Punctuation lipgloss.Style // : { } [ ]
}

// DefaultPalette matches the review screen colors.
func DefaultPalette() Palette {
	return Palette{
		Key:         lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")),
		String:      lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		Number:      lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")),
		Literal:     lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")),
		Null:        lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
		Punctuation: lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
	}
}

// Colorize indents data and styles each token with p. Invalid JSON is
// returned unchanged.
func Colorize(data []byte, p Palette) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	raw := buf.String()
	var out strings.Builder

	for i := 0; i < len(raw); {
		ch := raw[i]
		switch {
		case ch == '"':
			end := findStringEnd(raw, i)
			str := raw[i : end+1]
			if isKey(raw[end+1:]) {
				out.WriteString(p.Key.Render(str))
			} else {
				out.WriteString(p.String.Render(str))
			}
			i = end + 1

		case ch == '-' || isDigit(ch):
			end := i + 1
			for end < len(raw) && isNumberByte(raw[end]) {
				end++
			}
			out.WriteString(p.Number.Render(raw[i:end]))
			i = end

		case strings.HasPrefix(raw[i:], "true"):
			out.WriteString(p.Literal.Render("true"))
			i += len("true")

		case strings.HasPrefix(raw[i:], "false"):
			out.WriteString(p.Literal.Render("false"))
			i += len("false")

		case strings.HasPrefix(raw[i:], "null"):
			out.WriteString(p.Null.Render("null"))
			i += len("null")

		case strings.IndexByte(":{}[]", ch) >= 0:
			out.WriteString(p.Punctuation.Render(string(ch)))
			i++

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

// isKey reports whether the text after a string starts with a colon.
func isKey(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest != "" && rest[0] == ':'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isNumberByte(b byte) bool {
	return isDigit(b) || strings.IndexByte(".eE+-", b) >= 0
}

// findStringEnd returns the index of the closing quote for the JSON string
// starting at pos.
func findStringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			return i
		}
	}
	return len(s) - 1
}
