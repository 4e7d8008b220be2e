package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/skrive/internal/core/completion"
	"github.com/colonyops/skrive/internal/core/logging"
	"github.com/colonyops/skrive/internal/core/review"
	"github.com/colonyops/skrive/internal/core/suggest"
	"github.com/colonyops/skrive/internal/printer"
	"github.com/colonyops/skrive/pkg/iojson"
	"github.com/colonyops/skrive/pkg/utils"
)

// CheckReport is the JSON output for one checked document.
type CheckReport struct {
	File    string          `json:"file,omitempty"`
	Result  *suggest.Result `json:"result,omitempty"`
	Text    string          `json:"text,omitempty"`
	Skipped []int           `json:"skipped,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

type CheckCmd struct {
	flags     *Flags
	input     iojson.TextReader
	glob      string
	acceptAll bool
	jobs      int
}

// NewCheckCmd creates a new check command.
func NewCheckCmd(flags *Flags) *CheckCmd {
	return &CheckCmd{flags: flags}
}

// Register adds the check command to the application.
func (cmd *CheckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "check",
		Usage:     "Get suggestions for a document without the interactive review",
		UsageText: "skrive check [-f file | --glob pattern] [--accept-all]",
		Description: `Check submits a document for completion, parses the response and prints
the suggestions as JSON.

With --accept-all every suggestion is applied and the resulting text is
printed instead. With --glob every matching file is checked and one JSON
report is printed per file, in match order.

Examples:
  skrive check -f rapport.txt
  skrive check -f rapport.txt --accept-all > rapport.ny.txt
  skrive check --glob 'kapitler/**/*.md' --jobs 4`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.StringFlag{
				Name:        "glob",
				Aliases:     []string{"g"},
				Usage:       "check every file matching the pattern (supports **)",
				Destination: &cmd.glob,
			},
			&cli.BoolFlag{
				Name:        "accept-all",
				Usage:       "apply every suggestion and print the resulting text",
				Destination: &cmd.acceptAll,
			},
			&cli.IntFlag{
				Name:        "jobs",
				Aliases:     []string{"j"},
				Usage:       "number of files checked concurrently with --glob",
				Value:       2,
				Destination: &cmd.jobs,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CheckCmd) run(ctx context.Context, c *cli.Command) error {
	completer, err := cmd.flags.completer()
	if err != nil {
		return err
	}

	if cmd.glob != "" {
		return cmd.runGlob(ctx, c, completer)
	}

	text, err := cmd.input.Read()
	if err != nil {
		return err
	}

	report, err := checkText(ctx, completion.NewSubmitter(completer), text, cmd.acceptAll)
	if err != nil {
		_ = iojson.WriteError(c.Root().ErrWriter, completion.UserMessage(err), map[string]any{
			"code":  errorCode(err),
			"error": err.Error(),
		})
		return cli.Exit("", 1)
	}

	if cmd.acceptAll {
		if len(report.Skipped) > 0 {
			printer.Ctx(ctx).Warnf("%d suggestion(s) could not be applied: %v", len(report.Skipped), report.Skipped)
		}
		_, err := fmt.Fprint(c.Root().Writer, report.Text)
		return err
	}

	return writeJSON(c, report.Result)
}

func (cmd *CheckCmd) runGlob(ctx context.Context, c *cli.Command, completer completion.Completer) error {
	log := logging.Component("check")

	files, err := doublestar.FilepathGlob(cmd.glob, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("expand glob: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %q", cmd.glob)
	}

	out := utils.NewOrderedWriter(c.Root().Writer, len(files))
	reports := make([]CheckReport, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cmd.jobs, 1))

	for i, file := range files {
		g.Go(func() error {
			reports[i] = checkFile(gctx, completion.NewSubmitter(completer), file, cmd.acceptAll)
			if reports[i].Error != "" {
				log.Warn().Str("file", file).Str("code", reports[i].Code).Msg("check failed")
			}
			if err := iojson.WriteWith(out.Slot(i), c.Root().ErrWriter, reports[i]); err != nil {
				return err
			}
			return out.Done(i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Error != "" {
			failed++
		}
	}

	p := printer.Ctx(ctx)
	if failed > 0 {
		p.Errorf("%d of %d file(s) failed", failed, len(files))
		return cli.Exit("", 1)
	}
	p.Successf("checked %d file(s)", len(files))
	return nil
}

func checkFile(ctx context.Context, sub *completion.Submitter, file string, acceptAll bool) CheckReport {
	data, err := os.ReadFile(file)
	if err != nil {
		return CheckReport{File: file, Error: err.Error(), Code: "READ_FAILED"}
	}

	report, err := checkText(ctx, sub, string(data), acceptAll)
	report.File = file
	if err != nil {
		report.Error = err.Error()
		report.Code = errorCode(err)
	}
	return report
}

// checkText submits text and, when acceptAll is set, applies every
// suggestion to it.
func checkText(ctx context.Context, sub *completion.Submitter, text string, acceptAll bool) (CheckReport, error) {
	result, err := sub.Submit(ctx, text)
	if err != nil {
		return CheckReport{}, err
	}

	report := CheckReport{Result: result}
	if !acceptAll {
		return report, nil
	}

	all := make([]int, result.Len())
	for i := range all {
		all[i] = i
	}

	outcome, err := review.ApplySelection(result.Suggestions, text, all)
	switch {
	case errors.Is(err, review.ErrEmptySuggestionSet):
		report.Text = text
	case err != nil:
		return CheckReport{}, err
	default:
		report.Text = outcome.FinalText
		report.Skipped = outcome.Skipped
	}
	return report, nil
}
