package commands

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/skrive/internal/core/config"
	"github.com/colonyops/skrive/internal/printer"
)

// ValidationError is one failed check in a validation report.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "skrive config validate [options]",
				Description: "Validates the configuration file, checking the completion endpoint, prompt template syntax, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.config()
	errs := validationErrors(cfg.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []ValidationError          `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(errs) == 0,
			Errors:   errs,
			Warnings: warnings,
		}

		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
		if len(errs) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	p := printer.Ctx(ctx)

	for _, warn := range warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, e := range errs {
		if e.Field != "" {
			p.Errorf("%s: %s", e.Field, e.Message)
		} else {
			p.Errorf("%s", e.Message)
		}
	}

	p.Printf("")
	if len(errs) == 0 {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(errs))
	return cli.Exit("", 1)
}

// validationErrors flattens err into per-field entries.
func validationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}
