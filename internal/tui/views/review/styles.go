package review

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorBlue   = lipgloss.Color("#7aa2f7")
	colorGray   = lipgloss.Color("#565f89")
	colorWhite  = lipgloss.Color("#c0caf5")
	colorGreen  = lipgloss.Color("#9ece6a")
	colorRed    = lipgloss.Color("#f7768e")
	colorYellow = lipgloss.Color("#e0af68")
	colorRegion = lipgloss.Color("#292e42")
	colorMark   = lipgloss.Color("#3d59a1")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	subtleStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	originalStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	improvedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	acceptedBadge = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	pendingBadge = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#dc3545")).
			Foreground(colorRed).
			PaddingLeft(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(0, 1)

	regionStyle = lipgloss.NewStyle().
			Background(colorRegion)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(1)
)

// markStyle returns the style for an annotation kind. Kinds are matched
// case-insensitively in English and Norwegian; unknown kinds render bold.
func markStyle(kind string) lipgloss.Style {
	base := regionStyle
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "underline", "understrek", "understreking":
		return base.Underline(true)
	case "strike-through", "strikethrough", "gjennomstreking", "overstreking":
		return base.Strikethrough(true).Foreground(colorRed)
	case "highlight", "utheving", "markering":
		return base.Background(colorMark)
	default:
		return base.Bold(true)
	}
}
