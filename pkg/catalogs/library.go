package catalogs

import (
	"io/fs"
	"path"
	"slices"
	_ "time/tzdata" // embedded zone database for port time zones

	"github.com/goccy/go-yaml"

	"github.com/harborline/mariner/internal/validation"
	"github.com/harborline/mariner/pkg/errors"
)

// Data file layout inside a content directory.
const (
	FormsFile = "forms.yaml"
	ShipsFile = "ships.yaml"
	PortsGlob = "ports/*.yaml"
)

// Library is the complete loaded content set.
type Library struct {
	Forms *Store
	Ships *Store

	ports  []*Port
	bySlug map[string]*Port
}

// NewLibrary assembles a library, rejecting duplicate port slugs.
func NewLibrary(forms, ships *Store, ports ...*Port) (*Library, error) {
	if forms == nil || ships == nil {
		return nil, errors.NewValidationError("library", nil, "forms and ships stores are required")
	}
	l := &Library{
		Forms:  forms,
		Ships:  ships,
		ports:  make([]*Port, 0, len(ports)),
		bySlug: make(map[string]*Port, len(ports)),
	}
	for _, p := range ports {
		if _, dup := l.bySlug[p.Slug]; dup {
			return nil, &errors.DuplicateIDError{Store: "ports", ID: p.Slug}
		}
		l.bySlug[p.Slug] = p
		l.ports = append(l.ports, p)
	}
	return l, nil
}

// Ports returns the port guides in load order.
func (l *Library) Ports() []*Port {
	return slices.Clone(l.ports)
}

// Port returns the port guide with the given slug.
func (l *Library) Port(slug string) (*Port, error) {
	p, ok := l.bySlug[slug]
	if !ok {
		return nil, errors.NewNotFoundError("port", slug)
	}
	return p, nil
}

// Catalog returns a top-level store by name ("forms" or "ships").
func (l *Library) Catalog(name string) (*Store, error) {
	switch name {
	case CatalogForms:
		return l.Forms, nil
	case CatalogShips:
		return l.Ships, nil
	default:
		return nil, errors.NewNotFoundError("catalog", name)
	}
}

// Load reads a content directory: forms.yaml, ships.yaml and one
// ports/<slug>.yaml per port guide.
func Load(fsys fs.FS) (*Library, error) {
	forms, err := loadStore(fsys, FormsFile, CatalogForms, FormTaxonomy)
	if err != nil {
		return nil, err
	}
	ships, err := loadStore(fsys, ShipsFile, CatalogShips, ShipTaxonomy)
	if err != nil {
		return nil, err
	}

	files, err := fs.Glob(fsys, PortsGlob)
	if err != nil {
		return nil, errors.WrapIO("glob", PortsGlob, err)
	}

	v := validation.New()
	ports := make([]*Port, 0, len(files))
	for _, file := range files {
		p, err := loadPort(fsys, file, v)
		if err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}

	return NewLibrary(forms, ships, ports...)
}

func loadStore(fsys fs.FS, file, name string, taxonomy *Taxonomy) (*Store, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, errors.WrapIO("read", file, err)
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapParse("yaml", file, err)
	}

	return NewStore(name, taxonomy, records)
}

func loadPort(fsys fs.FS, file string, v *validation.Validator) (*Port, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, errors.WrapIO("read", file, err)
	}

	var pf portFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.WrapParse("yaml", file, err)
	}

	if pf.Slug == "" {
		pf.Slug = slugFromFile(file)
	}
	if err := v.Validate(pf.Port); err != nil {
		return nil, err
	}

	spots, err := NewStore(pf.Slug+" "+CatalogSpots, SpotTaxonomy, pf.Spots)
	if err != nil {
		return nil, err
	}

	p := pf.Port
	p.Spots = spots
	return &p, nil
}

func slugFromFile(file string) string {
	base := path.Base(file)
	return base[:len(base)-len(path.Ext(base))]
}
