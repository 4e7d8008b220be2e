package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/skrive/internal/core/completion"
	"github.com/colonyops/skrive/internal/core/logging"
	"github.com/colonyops/skrive/internal/core/review"
	"github.com/colonyops/skrive/internal/core/suggest"
	"github.com/colonyops/skrive/internal/printer"
	"github.com/colonyops/skrive/pkg/iojson"
)

// Choice is a reviewer decision for one suggestion.
type Choice int

const (
	ChoiceAccept Choice = iota
	ChoiceKeep
	ChoiceRevert
	ChoiceBack
	ChoiceFinish
)

// decider asks the reviewer what to do with the suggestion in v.
type decider interface {
	Decide(v review.View) (Choice, error)
}

// errReadSuggestions marks a failure to read the --suggestions file, which
// is a local problem and not a completion failure.
var errReadSuggestions = errors.New("read suggestions")

type ApplyCmd struct {
	flags       *Flags
	input       iojson.TextReader
	suggestions string
	decider     decider
}

// NewApplyCmd creates a new apply command.
func NewApplyCmd(flags *Flags) *ApplyCmd {
	return &ApplyCmd{flags: flags}
}

// Register adds the apply command to the application.
func (cmd *ApplyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "apply",
		Usage:     "Review suggestions one prompt at a time and print the result",
		UsageText: "skrive apply -f file [--suggestions response.txt]",
		Description: `Apply walks through the suggestions for a document with simple prompts
instead of the full-screen review, then prints the final text to stdout.

Suggestions come from the configured completion backend, or from a saved
model response given with --suggestions.

Examples:
  skrive apply -f rapport.txt > rapport.ny.txt
  skrive apply -f rapport.txt --suggestions svar.txt`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.StringFlag{
				Name:        "suggestions",
				Aliases:     []string{"s"},
				Usage:       "read suggestions from a saved model response instead of requesting them",
				Destination: &cmd.suggestions,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ApplyCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	text, err := cmd.input.Read()
	if err != nil {
		return err
	}

	result, err := cmd.loadSuggestions(ctx, text)
	if err != nil {
		if errors.Is(err, errReadSuggestions) {
			p.Errorf("%s", err)
		} else {
			p.Errorf("%s", completion.UserMessage(err))
		}
		return err
	}

	nav := review.NewNavigator()
	if err := nav.Start(result.Suggestions, text); err != nil {
		if errors.Is(err, review.ErrEmptySuggestionSet) {
			p.Infof("Ingen forslag til endringer.")
			_, err := fmt.Fprint(c.Root().Writer, text)
			return err
		}
		return err
	}

	d := cmd.decider
	if d == nil {
		d = huhDecider{hideRules: cmd.flags.config().Review.HideRules}
	}

	ctx = logging.WithReviewID(ctx, nav.ID())
	if err := reviewLoop(ctx, nav, d); err != nil {
		return err
	}

	sum := nav.Summary()
	p.Section("Gjennomgang fullført!")
	p.Successf("%d av %d endringer godtatt", sum.Accepted, sum.Total)
	if result.OverallComment != "" {
		p.Printf("%s", result.OverallComment)
	}

	_, err = fmt.Fprint(c.Root().Writer, sum.FinalText)
	return err
}

func (cmd *ApplyCmd) loadSuggestions(ctx context.Context, text string) (*suggest.Result, error) {
	if cmd.suggestions != "" {
		raw, err := os.ReadFile(cmd.suggestions)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errReadSuggestions, err)
		}
		return suggest.ParseText(string(raw))
	}

	completer, err := cmd.flags.completer()
	if err != nil {
		return nil, err
	}
	return completion.NewSubmitter(completer).Submit(ctx, text)
}

// reviewLoop asks d about each suggestion until the session is exhausted.
// Suggestions whose target is missing are reported and skipped.
func reviewLoop(ctx context.Context, nav *review.Navigator, d decider) error {
	log := logging.ComponentCtx(ctx, "apply")
	p := printer.Ctx(ctx)

	for !nav.IsExhausted() {
		v, err := nav.Current()
		if err != nil {
			return err
		}

		choice, err := d.Decide(v)
		if err != nil {
			return err
		}

		switch choice {
		case ChoiceAccept:
			if err = nav.Accept(); err == nil {
				err = nav.Advance()
			}
		case ChoiceKeep:
			err = nav.Decline()
		case ChoiceRevert:
			err = nav.Revert()
		case ChoiceBack:
			err = nav.Navigate(review.Backward)
		case ChoiceFinish:
			nav.Finish()
		default:
			return fmt.Errorf("unknown choice %d", choice)
		}

		if errors.Is(err, review.ErrTargetNotFound) {
			log.Warn().Err(err).Int("index", v.Index).Msg("skipping suggestion")
			p.Warnf("Fant ikke setningen for forslag %d i teksten; hopper over.", v.Index+1)
			err = nav.Advance()
		}
		if err != nil {
			return err
		}
	}

	nav.Finish()
	return nil
}

type huhDecider struct {
	hideRules bool
}

func (d huhDecider) Decide(v review.View) (Choice, error) {
	options := []huh.Option[Choice]{
		huh.NewOption("Godta endring", ChoiceAccept),
		huh.NewOption("Behold original", ChoiceKeep),
	}
	if v.Accepted {
		options = append(options, huh.NewOption("Angre endring", ChoiceRevert))
	}
	if v.Index > 0 {
		options = append(options, huh.NewOption("Forrige forslag", ChoiceBack))
	}
	options = append(options, huh.NewOption("Fullfør gjennomgangen", ChoiceFinish))

	var choice Choice
	err := huh.NewSelect[Choice]().
		Title(fmt.Sprintf("Forslag %d av %d", v.Index+1, v.Total)).
		Description(describe(v, d.hideRules)).
		Options(options...).
		Value(&choice).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ChoiceFinish, nil
	}
	return choice, err
}

// describe renders the suggestion as plain text for a prompt.
func describe(v review.View, hideRules bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Original:  %s\n", v.Suggestion.Original)
	fmt.Fprintf(&b, "Forbedret: %s\n", v.Suggestion.Improved)

	if !hideRules && len(v.Suggestion.Rules) > 0 {
		fmt.Fprintf(&b, "Regler:    %s\n", strings.Join(v.Suggestion.Rules, "; "))
	}
	if v.Suggestion.Comment != "" {
		fmt.Fprintf(&b, "Kommentar: %s\n", v.Suggestion.Comment)
	}
	if v.Accepted {
		b.WriteString("(godtatt)\n")
	}
	if !v.Target.Found() {
		b.WriteString("(fant ikke setningen i teksten)\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
