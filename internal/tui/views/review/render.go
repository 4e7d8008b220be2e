package review

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	corereview "github.com/colonyops/skrive/internal/core/review"
)

// segment is a run of document text rendered with one style.
type segment struct {
	Text   string
	Region bool   // inside the located target
	Mark   string // annotation kind, empty when unmarked
}

// segments splits text into plain, region and annotation runs for v.
// Overlapping annotations are dropped in favor of the earlier one.
func segments(text string, v corereview.View) []segment {
	if !v.Target.Found() {
		if text == "" {
			return nil
		}
		return []segment{{Text: text}}
	}

	marks := make([]corereview.Mark, len(v.Annotations))
	copy(marks, v.Annotations)
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].Start < marks[j].Start })

	var out []segment
	add := func(s segment) {
		if s.Text != "" {
			out = append(out, s)
		}
	}

	add(segment{Text: text[:v.Target.Start]})

	pos := v.Target.Start
	for _, mk := range marks {
		if mk.Start < pos || mk.End > v.Target.End {
			continue
		}
		add(segment{Text: text[pos:mk.Start], Region: true})
		add(segment{Text: text[mk.Start:mk.End], Region: true, Mark: mk.Kind})
		pos = mk.End
	}
	add(segment{Text: text[pos:v.Target.End], Region: true})
	add(segment{Text: text[v.Target.End:]})

	return out
}

// renderDocument styles text for v and wraps it to width (0 disables wrapping).
func renderDocument(text string, v corereview.View, width int) string {
	var b strings.Builder
	for _, s := range segments(text, v) {
		switch {
		case s.Mark != "":
			b.WriteString(renderLines(markStyle(s.Mark), s.Text))
		case s.Region:
			b.WriteString(renderLines(regionStyle, s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return wrap(b.String(), width)
}

// regionOffset returns the line on which the target region starts once the
// document is wrapped to width.
func regionOffset(text string, v corereview.View, width int) int {
	if !v.Target.Found() || v.Target.Start == 0 {
		return 0
	}
	prefix := wrap(text[:v.Target.Start]+"x", width)
	return lipgloss.Height(prefix) - 1
}

// renderLines styles each line separately so backgrounds do not bleed across
// line breaks.
func renderLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
