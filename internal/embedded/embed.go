// Package embedded carries the default mariner content compiled into the
// binary: forms, ship classes and port guides.
package embedded

import (
	"embed"
	"io/fs"
)

// FS embeds the content directory at build time.
//
//go:embed catalog
var FS embed.FS

// Catalog returns the content directory rooted at its top level, laid out
// the way catalogs.Load expects.
func Catalog() fs.FS {
	sub, err := fs.Sub(FS, "catalog")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
