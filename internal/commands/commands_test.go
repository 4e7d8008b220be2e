package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/skrive/internal/core/config"
	"github.com/colonyops/skrive/internal/printer"
)

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

type runResult struct {
	out    bytes.Buffer
	errOut bytes.Buffer
	status bytes.Buffer
}

// mockFlags returns flags with a loaded config in mock completion mode.
func mockFlags(t *testing.T) *Flags {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Completion.Mode = config.ModeMock
	return &Flags{DataDir: cfg.DataDir, Config: &cfg}
}

// runCmd registers cmd on a fresh root command and runs args against it.
func runCmd(t *testing.T, cmd registrar, args ...string) (*runResult, error) {
	t.Helper()
	res := &runResult{}

	app := &cli.Command{
		Name:           "skrive",
		Writer:         &res.out,
		ErrWriter:      &res.errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	cmd.Register(app)

	ctx := printer.NewContext(context.Background(), printer.New(&res.status))
	err := app.Run(ctx, append([]string{"skrive"}, args...))
	return res, err
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
