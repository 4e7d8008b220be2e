package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/skrive/internal/tui/jsoncolor"
	"github.com/colonyops/skrive/pkg/iojson"
)

// writeJSON prints obj to the command writer, colorized when it is a
// terminal.
func writeJSON(c *cli.Command, obj any) error {
	w := c.Root().Writer
	if !isTerminal(w) {
		return iojson.WriteWith(w, c.Root().ErrWriter, obj)
	}

	bits, err := json.Marshal(obj)
	if err != nil {
		return iojson.WriteError(c.Root().ErrWriter, "error marshaling output", map[string]any{"error": err.Error()})
	}
	_, err = fmt.Fprintln(w, jsoncolor.Colorize(bits, jsoncolor.DefaultPalette()))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
