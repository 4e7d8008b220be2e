// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5")).Bold(true).Underline(true)
)

// Printer writes human-oriented output. Machine-readable output goes to the
// command's writer directly, not through a Printer.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

type ctxKey struct{}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(prefix string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if prefix == "" {
		_, _ = fmt.Fprintln(p.w, msg)
		return
	}
	_, _ = fmt.Fprintln(p.w, prefix+" "+msg)
}

// Printf prints an unadorned line.
func (p *Printer) Printf(format string, args ...any) {
	p.line("", format, args...)
}

// Successf prints a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(successStyle.Render("✔"), format, args...)
}

// Infof prints an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(infoStyle.Render("•"), format, args...)
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(warnStyle.Render("!"), format, args...)
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(errorStyle.Render("✘"), format, args...)
}

// Section prints a heading preceded by a blank line.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.w)
	_, _ = fmt.Fprintln(p.w, sectionStyle.Render(strings.TrimSpace(title)))
}
