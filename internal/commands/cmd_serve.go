package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/skrive/internal/core/completion"
	"github.com/colonyops/skrive/internal/printer"
	"github.com/colonyops/skrive/internal/server"
)

type ServeCmd struct {
	flags *Flags
	addr  string
	debug bool
	pprof bool
}

// NewServeCmd creates a new serve command.
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "serve",
		Usage: "Serve the suggestion API over HTTP",
		Description: `Serve exposes the suggestion pipeline for a browser front end:

  POST /api/suggestions  {"text": "..."}            → suggestions
  POST /api/parse        raw model response          → suggestions
  POST /api/apply        {"text", "endringer", "accepted"} → final text
  GET  /health

Only one completion runs at a time; concurrent requests get 409.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to server.addr from config)",
				Sources:     cli.EnvVars("SKRIVE_ADDR"),
				Destination: &cmd.addr,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "run gin in debug mode",
				Destination: &cmd.debug,
			},
			&cli.BoolFlag{
				Name:        "pprof",
				Usage:       "serve runtime profiles under /debug/pprof",
				Destination: &cmd.pprof,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	completer, err := cmd.flags.completer()
	if err != nil {
		return err
	}

	addr := cmd.addr
	if addr == "" {
		addr = cmd.flags.config().Server.Addr
	}

	if !cmd.debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(completion.NewSubmitter(completer))
	if cmd.pprof {
		srv.EnableProfiling()
	}

	printer.Ctx(ctx).Infof("listening on http://%s (%s mode)", addr, cmd.flags.config().Completion.Mode)
	return srv.Run(ctx, addr)
}
