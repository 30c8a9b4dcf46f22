// Package docs generates markdown reference pages for a content library:
// an index, one page per catalog grouped by category and one page per
// port guide.
package docs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/harborline/mariner/pkg/assets"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
	"github.com/harborline/mariner/pkg/logging"
)

// Generator writes the documentation tree.
type Generator struct {
	outputDir string
	assets    assets.Resolver
	logger    *zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithOutputDir sets the directory the pages are written to.
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithAssets sets the resolver used for PDF links.
func WithAssets(r assets.Resolver) Option {
	return func(g *Generator) {
		g.assets = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a generator writing to ./docs by default.
func New(opts ...Option) *Generator {
	g := &Generator{
		outputDir: "./docs",
		assets:    assets.NewResolver(""),
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OutputDir returns the target directory.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

type page struct {
	path  string
	write func(io.Writer) error
}

// Generate writes README.md, forms.md, ships.md and ports/<slug>.md.
func (g *Generator) Generate(ctx context.Context, lib *catalogs.Library) error {
	portsDir := filepath.Join(g.outputDir, "ports")
	if err := os.MkdirAll(portsDir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", portsDir, err)
	}

	pages := []page{
		{"README.md", func(w io.Writer) error { return writeIndex(w, lib) }},
		{"forms.md", func(w io.Writer) error { return writeCatalog(w, "Forms directory", lib.Forms, g.assets) }},
		{"ships.md", func(w io.Writer) error { return writeCatalog(w, "Ship classes", lib.Ships, g.assets) }},
	}
	for _, p := range lib.Ports() {
		pages = append(pages, page{
			path:  filepath.Join("ports", p.Slug+".md"),
			write: func(w io.Writer) error { return writePort(w, p) },
		})
	}

	for _, pg := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.writeFile(pg); err != nil {
			return err
		}
	}

	g.logger.Info().
		Str("dir", g.outputDir).
		Int("pages", len(pages)).
		Msg("Documentation generated")
	return nil
}

func (g *Generator) writeFile(pg page) error {
	path := filepath.Join(g.outputDir, pg.path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := pg.write(f); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	g.logger.Debug().Str("file", path).Msg("Wrote page")
	return nil
}
