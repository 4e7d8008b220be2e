package iojson

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]any{"endringer": []string{}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"endringer\": []\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalError(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)})
	require.NoError(t, err)
	assert.Empty(t, out.String())

	var e Error
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &e))
	assert.Equal(t, "error marshaling in iojson.Write", e.Message)
	assert.Contains(t, e.Data, "json_error")
}

func TestMarshalError(t *testing.T) {
	var e Error
	require.NoError(t, json.Unmarshal([]byte(MarshalError("parse failed", map[string]any{"code": "MALFORMED_JSON"})), &e))
	assert.Equal(t, "parse failed", e.Message)
	assert.Equal(t, "MALFORMED_JSON", e.Data["code"])
}

func TestTextReader(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tekst.txt")
		require.NoError(t, os.WriteFile(path, []byte("Vi mener at dette er viktig."), 0o644))

		tr := &TextReader{}
		tr.SetPath(path)
		assert.True(t, tr.Provided())

		got, err := tr.Read()
		require.NoError(t, err)
		assert.Equal(t, "Vi mener at dette er viktig.", got)
	})

	t.Run("missing file", func(t *testing.T) {
		tr := &TextReader{}
		tr.SetPath(filepath.Join(t.TempDir(), "nope.txt"))

		_, err := tr.Read()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read file")
	})

	t.Run("piped stdin", func(t *testing.T) {
		tr := &TextReader{stdin: strings.NewReader("fra stdin")}
		assert.True(t, tr.Provided())

		got, err := tr.Read()
		require.NoError(t, err)
		assert.Equal(t, "fra stdin", got)
	})

	t.Run("terminal stdin", func(t *testing.T) {
		tr := &TextReader{isTerminal: func() bool { return true }}
		assert.False(t, tr.Provided())

		_, err := tr.Read()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stdin is a terminal")
	})
}

func TestTextReader_Flag(t *testing.T) {
	tr := &TextReader{}
	f := tr.Flag()
	assert.Equal(t, "file", f.Name)
	assert.Equal(t, []string{"f"}, f.Aliases)
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, "boom", map[string]any{"code": "X"}))

	var e Error
	require.NoError(t, json.Unmarshal(buf.Bytes(), &e))
	assert.Equal(t, "boom", e.Message)
	assert.Equal(t, "X", e.Data["code"])
}
