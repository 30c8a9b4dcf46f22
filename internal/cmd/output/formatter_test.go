package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/internal/cmd/table"
	"github.com/harborline/mariner/pkg/errors"
)

type row struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Hidden  string `json:"-"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", "", false},
		{"table", FormatTable, false},
		{"WIDE", FormatWide, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.True(t, errors.IsValidationError(err), "ParseFormat(%q)", tt.input)
			continue
		}
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	var gotWide bool
	err := Render(&buf, FormatWide, nil, func(wide bool) table.Data {
		gotWide = wide
		return table.Data{Headers: []string{"ID", "Title"}, Rows: [][]string{{"leave-chit", "Leave Chit"}}}
	})
	require.NoError(t, err)
	assert.True(t, gotWide)
	assert.Contains(t, buf.String(), "leave-chit")
	assert.Contains(t, strings.ToUpper(buf.String()), "TITLE")
}

func TestRender_Structured(t *testing.T) {
	rows := []row{{ID: "a", Title: "Alpha"}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, rows, nil))
	assert.JSONEq(t, `[{"id":"a","title":"Alpha"}]`, buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, FormatYAML, rows, nil))
	assert.Contains(t, buf.String(), "id: a")
	assert.Contains(t, buf.String(), "title: Alpha")
}

func TestTableFormatter_Reflection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []row{{ID: "a", Title: "Alpha", Hidden: "secret"}}))
	out := buf.String()
	assert.Contains(t, out, "Alpha")
	assert.NotContains(t, out, "secret")

	buf.Reset()
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, row{ID: "b"}))
	assert.Contains(t, strings.ToUpper(buf.String()), "PROPERTY")

	buf.Reset()
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"n": 1}))
	assert.JSONEq(t, `{"n":1}`, buf.String())
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
	// Under go test stdout is not a terminal.
	assert.Contains(t, []Format{FormatJSON, FormatTable}, DetectFormat(""))
}
