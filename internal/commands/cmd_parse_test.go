package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/skrive/internal/core/suggest"
	"github.com/colonyops/skrive/pkg/iojson"
)

func TestParseCmd(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "svar.txt", "Her er forslagene mine:\n```json\n"+
		`{"endringer":[{"original_setning":"Vi mener at dette er viktig.","forbedret_setning":"Dette er viktig.","regler":["Vær forsiktig med personlige pronomen"]}],`+
		`"gjennomgående_kommentar":"Bra."}`+
		"\n```\n")

	res, err := runCmd(t, NewParseCmd(mockFlags(t)), "parse", "-f", path)
	require.NoError(t, err)

	var result suggest.Result
	require.NoError(t, json.Unmarshal(res.out.Bytes(), &result))
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Dette er viktig.", result.Suggestions[0].Improved)
	assert.Equal(t, []string{"Vær forsiktig med personlige pronomen"}, result.Suggestions[0].Rules)
	assert.Equal(t, "Bra.", result.OverallComment)
}

func TestParseCmd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantCode string
	}{
		{name: "no block", payload: "Ingen endringer her.", wantCode: "NO_STRUCTURED_BLOCK"},
		{name: "malformed", payload: "```json\n{\"endringer\": [}\n```", wantCode: "MALFORMED_JSON"},
		{name: "schema", payload: "```json\n{\"endringer\": [{\"original_setning\": \"x\"}]}\n```", wantCode: "SCHEMA_VIOLATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, t.TempDir(), "svar.txt", tt.payload)

			res, err := runCmd(t, NewParseCmd(mockFlags(t)), "parse", "-f", path)
			require.Error(t, err)
			assert.Empty(t, res.out.String())

			var e iojson.Error
			require.NoError(t, json.Unmarshal(res.errOut.Bytes(), &e))
			assert.Equal(t, tt.wantCode, e.Data["code"])
		})
	}
}
