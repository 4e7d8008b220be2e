package iojson

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// TextReader reads a command's text input from a file named by its flag, or
// from piped stdin.
type TextReader struct {
	fileFlagValue string
	stdin         io.Reader
	isTerminal    func() bool
}

// Flag returns the -f/--file flag bound to the reader.
func (tr *TextReader) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to input file (reads from stdin if not provided)",
		Destination: &tr.fileFlagValue,
	}
}

// Path returns the file flag value, empty when reading stdin.
func (tr *TextReader) Path() string {
	return tr.fileFlagValue
}

// SetPath sets the input file, as if passed with -f.
func (tr *TextReader) SetPath(path string) {
	tr.fileFlagValue = path
}

// Provided reports whether input is available without prompting: a file was
// named or stdin is not a terminal.
func (tr *TextReader) Provided() bool {
	return tr.fileFlagValue != "" || !tr.terminal()
}

// Read returns the full input.
func (tr *TextReader) Read() (string, error) {
	if tr.fileFlagValue != "" {
		data, err := os.ReadFile(tr.fileFlagValue)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	}

	if tr.terminal() {
		return "", fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe text input")
	}

	data, err := io.ReadAll(tr.in())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func (tr *TextReader) in() io.Reader {
	if tr.stdin != nil {
		return tr.stdin
	}
	return os.Stdin
}

func (tr *TextReader) terminal() bool {
	if tr.isTerminal != nil {
		return tr.isTerminal()
	}
	if tr.stdin != nil {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}
