package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/skrive/internal/core/completion"
	"github.com/colonyops/skrive/internal/core/logging"
	corereview "github.com/colonyops/skrive/internal/core/review"
	"github.com/colonyops/skrive/internal/core/suggest"
)

// Mode is the screen the model is showing.
type Mode int

const (
	ModeCompose Mode = iota
	ModeSubmitting
	ModeReviewing
	ModeSummary
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeCompose:
		return "compose"
	case ModeSubmitting:
		return "submitting"
	case ModeReviewing:
		return "reviewing"
	case ModeSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Options configures a Model.
type Options struct {
	Context         context.Context
	Submitter       *completion.Submitter
	Text            string // initial document text
	Width           int    // wrap width, 0 = terminal width
	HideRules       bool
	AdvanceOnAccept bool
}

// suggestionsMsg carries a successful submission back to the model.
type suggestionsMsg struct {
	text   string
	result *suggest.Result
}

// submitErrMsg carries a failed submission back to the model.
type submitErrMsg struct {
	err error
}

// Model is the bubbletea model for the review flow.
type Model struct {
	ctx       context.Context
	submitter *completion.Submitter
	nav       *corereview.Navigator
	result    *suggest.Result

	mode     Mode
	editor   textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	width     int
	height    int
	wrapWidth int
	hideRules bool
	advance   bool

	errMsg   string
	notice   string
	panel    string
	quitting bool
}

// New creates a review model in compose mode.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ta := textarea.New()
	ta.Placeholder = "Lim inn eller skriv teksten din her…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetValue(opts.Text)
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(colorBlue)

	h := help.New()
	h.Styles.ShortKey = subtleStyle
	h.Styles.ShortDesc = subtleStyle
	h.Styles.ShortSeparator = subtleStyle
	h.ShortSeparator = " • "

	return Model{
		ctx:       ctx,
		submitter: opts.Submitter,
		nav:       corereview.NewNavigator(),
		mode:      ModeCompose,
		editor:    ta,
		spinner:   sp,
		viewport:  viewport.New(0, 0),
		help:      h,
		keys:      defaultKeyMap(),
		wrapWidth: opts.Width,
		hideRules: opts.HideRules,
		advance:   opts.AdvanceOnAccept,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Mode returns the active mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Err returns the message shown for the last failed operation.
func (m Model) Err() string {
	return m.errMsg
}

// Navigator exposes the review session.
func (m Model) Navigator() *corereview.Navigator {
	return m.nav
}

// FinalText returns the document as it stands: the reviewed text once a
// session has started, otherwise the editor contents.
func (m Model) FinalText() string {
	reviewed := m.mode == ModeReviewing || m.mode == ModeSummary
	if reviewed && m.nav.State() != corereview.StateUninitialized {
		return m.nav.Snapshot().CurrentText
	}
	return m.editor.Value()
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(max(m.docWidth(), 20))
		m.editor.SetHeight(max(m.height-6, 3))
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.mode != ModeSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case suggestionsMsg:
		return m.handleSuggestions(msg), nil

	case submitErrMsg:
		m.mode = ModeCompose
		m.errMsg = completion.UserMessage(msg.err)
		return m, m.editor.Focus()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQ) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case ModeCompose:
			return m.updateCompose(msg)
		case ModeSubmitting:
			if key.Matches(msg, m.keys.Submit) {
				m.errMsg = completion.MsgBusy
			}
			return m, nil
		case ModeReviewing:
			return m.updateReviewing(msg)
		case ModeSummary:
			return m.updateSummary(msg)
		}
	}

	if m.mode == ModeCompose {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Submit) {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	text := m.editor.Value()
	if strings.TrimSpace(text) == "" {
		m.errMsg = completion.MsgEmptyText
		return m, nil
	}

	m.errMsg = ""
	m.mode = ModeSubmitting
	m.keys.mode = m.mode
	m.editor.Blur()
	return m, tea.Batch(m.spinner.Tick, m.submitCmd(text))
}

// submitCmd runs the submission off the update loop.
func (m Model) submitCmd(text string) tea.Cmd {
	submitter, ctx := m.submitter, m.ctx
	return func() tea.Msg {
		if submitter == nil {
			return submitErrMsg{err: errors.New("no completion backend configured")}
		}
		result, err := submitter.Submit(ctx, text)
		if err != nil {
			return submitErrMsg{err: err}
		}
		return suggestionsMsg{text: text, result: result}
	}
}

func (m Model) handleSuggestions(msg suggestionsMsg) Model {
	m.result = msg.result
	m.errMsg = ""
	m.notice = ""

	if err := m.nav.Start(msg.result.Suggestions, msg.text); err != nil {
		if errors.Is(err, corereview.ErrEmptySuggestionSet) {
			// Nothing to review; show the overall comment with the text as submitted.
			m.nav = corereview.NewNavigator()
			m.editor.SetValue(msg.text)
			m.notice = "Ingen forslag til endringer."
			m.setMode(ModeSummary)
			return m
		}
		m.errMsg = err.Error()
		m.setMode(ModeCompose)
		return m
	}

	log := logging.ComponentCtx(logging.WithReviewID(m.ctx, m.nav.ID()), "tui")
	log.Info().Int("suggestions", m.nav.Total()).Msg("review started")

	m.setMode(ModeReviewing)
	return m
}

func (m Model) updateReviewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error

	switch {
	case key.Matches(msg, m.keys.Accept):
		err = m.nav.Accept()
		if err == nil && m.advance {
			err = m.nav.Advance()
		}
	case key.Matches(msg, m.keys.Decline):
		err = m.nav.Decline()
	case key.Matches(msg, m.keys.Revert):
		err = m.nav.Revert()
	case key.Matches(msg, m.keys.Next):
		err = m.nav.Navigate(corereview.Forward)
	case key.Matches(msg, m.keys.Prev):
		err = m.nav.Navigate(corereview.Backward)
	case key.Matches(msg, m.keys.Finish):
		m.nav.Finish()
	case key.Matches(msg, m.keys.Edit):
		return m.backToCompose()
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.ScrollDn):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	default:
		return m, nil
	}

	if err != nil {
		m.errMsg = actionError(err)
	} else {
		m.errMsg = ""
	}

	if m.nav.IsExhausted() {
		m.nav.Finish()
		m.setMode(ModeSummary)
		return m, nil
	}

	m.refresh()
	return m, nil
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		return m.backToCompose()
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Accept):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.ScrollDn):
		m.viewport.LineDown(1)
	}
	return m, nil
}

func (m Model) backToCompose() (tea.Model, tea.Cmd) {
	m.editor.SetValue(m.FinalText())
	m.errMsg = ""
	m.notice = ""
	m.setMode(ModeCompose)
	return m, m.editor.Focus()
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.keys.mode = mode
	m.viewport.GotoTop()
	m.refresh()
}

func actionError(err error) string {
	switch {
	case errors.Is(err, corereview.ErrTargetNotFound):
		return "Fant ikke teksten som skal endres i dokumentet."
	case errors.Is(err, corereview.ErrNotReviewing):
		return "Gjennomgangen er ikke aktiv."
	default:
		return err.Error()
	}
}

func (m Model) docWidth() int {
	if m.wrapWidth > 0 {
		return m.wrapWidth
	}
	return max(m.width-2, 0)
}

// refresh re-renders the panel and viewport content from navigator state.
func (m *Model) refresh() {
	var content string
	offset := -1

	switch m.mode {
	case ModeReviewing:
		v, err := m.nav.Current()
		if err != nil {
			return
		}
		text := m.nav.Snapshot().CurrentText
		content = renderDocument(text, v, m.docWidth())
		offset = regionOffset(text, v, m.docWidth())
		m.panel = m.renderPanel(v)
	case ModeSummary:
		content = m.renderSummary()
		m.panel = ""
	default:
		m.panel = ""
		return
	}

	m.viewport.Width = max(m.width, m.docWidth())
	m.viewport.Height = m.viewportHeight(content)
	m.viewport.SetContent(content)
	if offset >= 0 {
		m.viewport.SetYOffset(max(offset-1, 0))
	}
}

func (m Model) viewportHeight(content string) int {
	if m.height == 0 {
		return lipgloss.Height(content)
	}
	chrome := 2 + lipgloss.Height(m.help.View(m.keys))
	if m.panel != "" {
		chrome += lipgloss.Height(m.panel)
	}
	if m.errMsg != "" {
		chrome++
	}
	return max(m.height-chrome, 3)
}

func (m Model) renderPanel(v corereview.View) string {
	var b strings.Builder

	status := pendingBadge.Render("Ikke godtatt")
	if v.Accepted {
		status = acceptedBadge.Render("✓ Godtatt")
	}
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render(fmt.Sprintf("Forslag %d av %d", v.Index+1, v.Total)), status)

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Original:"), originalStyle.Render(v.Suggestion.Original))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Forbedret:"), improvedStyle.Render(v.Suggestion.Improved))

	if !m.hideRules && len(v.Suggestion.Rules) > 0 {
		b.WriteString(labelStyle.Render("Regler:") + "\n")
		for _, r := range v.Suggestion.Rules {
			b.WriteString(subtleStyle.Render("  • "+r) + "\n")
		}
	}

	if v.Suggestion.Comment != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Kommentar:"), v.Suggestion.Comment)
	}

	if !v.Target.Found() {
		b.WriteString(subtleStyle.Render("Fant ikke setningen i dokumentet.") + "\n")
	}

	if v.Action() == corereview.ActionRevert {
		b.WriteString("\n" + subtleStyle.Render("[r] Angre endring   [d] Behold original"))
	} else {
		b.WriteString("\n" + subtleStyle.Render("[a] Godta endring   [d] Behold original"))
	}

	width := m.docWidth()
	if width > 4 {
		return panelStyle.Width(width - 2).Render(b.String())
	}
	return panelStyle.Render(b.String())
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Gjennomgang fullført!") + "\n\n")

	if m.notice != "" {
		b.WriteString(m.notice + "\n\n")
	}

	if m.nav.State() != corereview.StateUninitialized {
		sum := m.nav.Summary()
		fmt.Fprintf(&b, "%d av %d endringer godtatt.\n\n", sum.Accepted, sum.Total)
	}

	if m.result != nil && m.result.OverallComment != "" {
		b.WriteString(labelStyle.Render("Gjennomgående kommentar") + "\n")
		b.WriteString(renderMarkdown(m.result.OverallComment, m.docWidth()) + "\n")
	}

	b.WriteString(labelStyle.Render("Ferdig tekst") + "\n")
	b.WriteString(wrap(m.FinalText(), m.docWidth()))
	return b.String()
}

// renderMarkdown renders md with glamour, falling back to the raw text.
func renderMarkdown(md string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithStylePath("dark")}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(max(width-4, 20)))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	switch m.mode {
	case ModeCompose:
		b.WriteString(titleStyle.Render("Skriv inn tekst") + "\n\n")
		b.WriteString(m.editor.View() + "\n")
	case ModeSubmitting:
		b.WriteString(titleStyle.Render("Skriv inn tekst") + "\n\n")
		b.WriteString(m.spinner.View() + " Analyserer teksten…\n")
	case ModeReviewing:
		b.WriteString(m.viewport.View() + "\n")
		b.WriteString(m.panel + "\n")
	case ModeSummary:
		b.WriteString(m.viewport.View() + "\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Feil: "+m.errMsg) + "\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}
