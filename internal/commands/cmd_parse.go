package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/skrive/internal/core/suggest"
	"github.com/colonyops/skrive/pkg/iojson"
)

type ParseCmd struct {
	flags *Flags
	input iojson.TextReader
}

// NewParseCmd creates a new parse command.
func NewParseCmd(flags *Flags) *ParseCmd {
	return &ParseCmd{flags: flags}
}

// Register adds the parse command to the application.
func (cmd *ParseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "parse",
		Usage:     "Extract suggestions from a raw model response",
		UsageText: "skrive parse [-f file]",
		Description: `Parse runs only the suggestion parser on a raw completion payload and
prints the normalized result as JSON.

The payload may be assistant text containing one fenced json block, a bare
JSON object with an "endringer" list, or a full chat completion response.

Examples:
  skrive parse -f response.txt
  curl ... | skrive parse`,
		Flags:  []cli.Flag{cmd.input.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ParseCmd) run(ctx context.Context, c *cli.Command) error {
	raw, err := cmd.input.Read()
	if err != nil {
		return err
	}

	result, err := suggest.ParseText(raw)
	if err != nil {
		_ = iojson.WriteError(c.Root().ErrWriter, "could not parse payload", map[string]any{
			"code":  errorCode(err),
			"error": err.Error(),
		})
		return cli.Exit("", 1)
	}

	return writeJSON(c, result)
}
