package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/skrive/internal/core/completion"
	review "github.com/colonyops/skrive/internal/tui/views/review"
	"github.com/colonyops/skrive/pkg/iojson"
)

type ReviewCmd struct {
	flags *Flags
	input iojson.TextReader
	print bool
	width int
}

// NewReviewCmd creates a new review command.
func NewReviewCmd(flags *Flags) *ReviewCmd {
	return &ReviewCmd{flags: flags}
}

// Flags returns the review flags so they can also be set on the root
// command, where review is the default action.
func (cmd *ReviewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		cmd.input.Flag(),
		&cli.BoolFlag{
			Name:        "print",
			Usage:       "print the final text to stdout on exit",
			Destination: &cmd.print,
		},
		&cli.IntFlag{
			Name:        "width",
			Usage:       "wrap width for the document (0 = terminal width)",
			Destination: &cmd.width,
		},
	}
}

// Register adds the review command to the application.
func (cmd *ReviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "review",
		Usage: "Write or load a text and review the suggested improvements",
		Description: `Review opens the interactive editor. Write or paste a text, press ctrl+s
to request suggestions, then accept or keep the original for each one.

Examples:
  skrive                         # Start with an empty editor
  skrive review -f rapport.txt   # Start with the contents of a file
  skrive review -f rapport.txt --print > rapport.ny.txt`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run launches the review TUI.
func (cmd *ReviewCmd) Run(ctx context.Context, c *cli.Command) error {
	var text string
	if cmd.input.Path() != "" {
		var err error
		if text, err = cmd.input.Read(); err != nil {
			return err
		}
	}

	completer, err := cmd.flags.completer()
	if err != nil {
		return err
	}

	cfg := cmd.flags.config()
	width := cfg.Review.Width
	if cmd.width > 0 {
		width = cmd.width
	}

	m := review.New(review.Options{
		Context:         ctx,
		Submitter:       completion.NewSubmitter(completer),
		Text:            text,
		Width:           width,
		HideRules:       cfg.Review.HideRules,
		AdvanceOnAccept: cfg.Review.AdvanceAfterAccept(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run review TUI: %w", err)
	}

	if cmd.print {
		if fm, ok := final.(review.Model); ok {
			_, err := fmt.Fprint(c.Root().Writer, fm.FinalText())
			return err
		}
	}
	return nil
}
