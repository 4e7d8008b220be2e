package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/skrive/internal/commands"
	"github.com/colonyops/skrive/internal/core/config"
	"github.com/colonyops/skrive/internal/core/logging"
	"github.com/colonyops/skrive/internal/printer"
	"github.com/colonyops/skrive/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "skrive",
		Usage:     "Improve Norwegian texts with suggestions from a language model",
		UsageText: "skrive [global options] command [command options]",
		Description: `Skrive sends a text to a language model, parses the suggested sentence
rewrites and lets you review them one at a time.

Run 'skrive' with no arguments to open the interactive editor.
Run 'skrive check -f file' to print the suggestions as JSON.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SKRIVE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/skrive.log)",
				Sources:     cli.EnvVars("SKRIVE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (.yaml or .toml)",
				Sources:     cli.EnvVars("SKRIVE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("SKRIVE_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "mode",
				Usage:       "completion mode, overrides config (mock, live)",
				Sources:     cli.EnvVars("SKRIVE_MODE"),
				Destination: &flags.Mode,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/skrive.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "skrive.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if flags.Mode != "" {
				cfg.Completion.Mode = config.Mode(flags.Mode)
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("invalid --mode: %w", err)
				}
			}

			flags.Config = cfg
			log.Debug().
				Str("mode", string(cfg.Completion.Mode)).
				Str("model", cfg.Completion.Model).
				Msg("config loaded")

			return printer.NewContext(ctx, printer.New(os.Stderr)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	reviewCmd := commands.NewReviewCmd(flags)

	app = reviewCmd.Register(app)
	app = commands.NewCheckCmd(flags).Register(app)
	app = commands.NewParseCmd(flags).Register(app)
	app = commands.NewApplyCmd(flags).Register(app)
	app = commands.NewServeCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register review flags on root command
	app.Flags = append(app.Flags, reviewCmd.Flags()...)

	// Set review as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'skrive --help' for usage", c.Args().First())
		}
		return reviewCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		if msg := runErr.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		exitCode = 1
	}

	os.Exit(exitCode)
}
