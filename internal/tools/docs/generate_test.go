package docs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/pkg/assets"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/logging"
)

func testLibrary(t *testing.T) *catalogs.Library {
	t.Helper()
	c, err := mariner.New(mariner.WithLogger(logging.NewNopLogger()), mariner.WithRefreshDisabled())
	require.NoError(t, err)
	return c.Library()
}

func TestNew(t *testing.T) {
	g := New()
	assert.Equal(t, "./docs", g.OutputDir())

	g = New(WithOutputDir("/custom/path"), WithLogger(logging.NewNopLogger()))
	assert.Equal(t, "/custom/path", g.OutputDir())
}

func TestGenerate(t *testing.T) {
	lib := testLibrary(t)
	dir := t.TempDir()

	g := New(WithOutputDir(dir), WithLogger(logging.NewNopLogger()))
	require.NoError(t, g.Generate(context.Background(), lib))

	for _, name := range []string{"README.md", "forms.md", "ships.md"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	for _, p := range lib.Ports() {
		assert.FileExists(t, filepath.Join(dir, "ports", p.Slug+".md"))
	}

	index, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[Forms directory](forms.md)")
	assert.Contains(t, string(index), "[Rotterdam](ports/rotterdam.md)")
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New(WithOutputDir(t.TempDir()), WithLogger(logging.NewNopLogger()))
	assert.ErrorIs(t, g.Generate(ctx, testLibrary(t)), context.Canceled)
}

func TestWriteCatalog(t *testing.T) {
	lib := testLibrary(t)

	var buf bytes.Buffer
	require.NoError(t, writeCatalog(&buf, "Forms directory", lib.Forms, assets.NewResolver("https://cdn.example.org/forms")))
	out := buf.String()

	assert.Contains(t, out, "# Forms directory")
	assert.Contains(t, out, "## Leave")
	assert.Contains(t, out, "`leave-chit`")
	assert.Contains(t, out, "(https://cdn.example.org/forms/leave-chit.pdf)")
}

func TestWritePort(t *testing.T) {
	p, err := testLibrary(t).Port("rotterdam")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writePort(&buf, p))
	out := buf.String()

	assert.Contains(t, out, "# Rotterdam")
	assert.Contains(t, out, "Currency: EUR")
	assert.Contains(t, out, "openstreetmap.org")
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "-", location(nil))
	got := location(&catalogs.Location{Latitude: 51.9, Longitude: 4.47})
	assert.Contains(t, got, "[51.9000, 4.4700](")
}
