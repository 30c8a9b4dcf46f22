package validate

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/internal/embedded"
)

func TestRun_Embedded(t *testing.T) {
	results, err := Run(embedded.Catalog())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(results), 5)
	assert.Equal(t, "forms", results[0].Component)
	assert.Equal(t, 18, results[0].Records)
	assert.Equal(t, "ships", results[1].Component)
	assert.Equal(t, 8, results[1].Records)
	for _, r := range results {
		assert.True(t, r.OK, r.Component)
	}
}

func TestRun_Invalid(t *testing.T) {
	fsys := fstest.MapFS{
		"forms.yaml": {Data: []byte("- id: a\n  title: A\n  category: galley\n")},
		"ships.yaml": {Data: []byte("[]\n")},
	}

	results, err := Run(fsys)
	require.Error(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.NotEmpty(t, results[0].Details)
}

func TestRun_Missing(t *testing.T) {
	_, err := Run(fstest.MapFS{})
	assert.Error(t, err)
}

func TestResultTable(t *testing.T) {
	data := resultTable([]Result{
		{Component: "forms", OK: true, Records: 18, Categories: 6},
		{Component: "content", Details: "bad"},
	})
	require.Len(t, data.Rows, 2)
	assert.Contains(t, data.Rows[0][1], "valid")
	assert.Contains(t, data.Rows[1][1], "invalid")
	assert.Equal(t, "18", data.Rows[0][2])
}
