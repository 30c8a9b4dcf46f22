package catalogs

import (
	"slices"

	"github.com/harborline/mariner/pkg/errors"
)

// Category is one value of a catalog's closed enumeration.
type Category string

// CategoryAll is the filter sentinel meaning "no category restriction".
// It is never stored on a record.
const CategoryAll Category = "all"

// String returns the category value.
func (c Category) String() string {
	return string(c)
}

// Form categories.
const (
	FormLeave          Category = "leave"
	FormMedical        Category = "medical"
	FormTraining       Category = "training"
	FormAdministrative Category = "administrative"
	FormCoastGuard     Category = "coast-guard"
	FormBenefits       Category = "benefits"
)

// Ship categories.
const (
	ShipContainer      Category = "container"
	ShipTanker         Category = "tanker"
	ShipBulkCarrier    Category = "bulk-carrier"
	ShipRoRo           Category = "ro-ro"
	ShipPassenger      Category = "passenger"
	ShipSpecialPurpose Category = "special-purpose"
)

// Port spot categories.
const (
	SpotDining           Category = "dining"
	SpotLodging          Category = "lodging"
	SpotTransport        Category = "transport"
	SpotSafety           Category = "safety"
	SpotShopping         Category = "shopping"
	SpotSeafarerServices Category = "seafarer-services"
)

// Style is the visual descriptor a render surface uses for a category.
// Key names a CSS class family, Accent is a hex color, Badge is a short
// glyph used by text surfaces.
type Style struct {
	Key    string `json:"key" yaml:"key"`
	Accent string `json:"accent" yaml:"accent"`
	Badge  string `json:"badge" yaml:"badge"`
}

// Meta is the static display metadata of a category.
type Meta struct {
	Label string `json:"label" yaml:"label"`
	Style Style  `json:"style" yaml:"style"`
}

// Entry pairs a category with its metadata inside a Taxonomy.
type Entry struct {
	Category Category
	Meta     Meta
}

// Taxonomy is an ordered closed enumeration of categories with their
// metadata. A Taxonomy is immutable after construction.
type Taxonomy struct {
	name    string
	entries []Entry
	index   map[Category]int
}

// NewTaxonomy builds a taxonomy from entries in display order.
func NewTaxonomy(name string, entries ...Entry) *Taxonomy {
	t := &Taxonomy{
		name:    name,
		entries: slices.Clone(entries),
		index:   make(map[Category]int, len(entries)),
	}
	for i, e := range t.entries {
		if _, dup := t.index[e.Category]; !dup {
			t.index[e.Category] = i
		}
	}
	return t
}

// Name returns the taxonomy name, e.g. "forms".
func (t *Taxonomy) Name() string {
	return t.name
}

// Categories returns the enumeration in display order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Category
	}
	return out
}

// Len returns the number of categories.
func (t *Taxonomy) Len() int {
	return len(t.entries)
}

// Contains reports whether c is a member of the enumeration.
// CategoryAll is never a member.
func (t *Taxonomy) Contains(c Category) bool {
	_, ok := t.index[c]
	return ok
}

// Meta returns the metadata for c, or an UnknownCategoryError.
func (t *Taxonomy) Meta(c Category) (Meta, error) {
	i, ok := t.index[c]
	if !ok {
		return Meta{}, errors.NewUnknownCategoryError(t.name, string(c))
	}
	return t.entries[i].Meta, nil
}

// Parse converts user input into a filter category, accepting "all" and
// every member of the enumeration.
func (t *Taxonomy) Parse(s string) (Category, error) {
	c := Category(s)
	if c == CategoryAll || t.Contains(c) {
		return c, nil
	}
	return "", errors.NewUnknownCategoryError(t.name, s)
}

// Validate checks the taxonomy is well formed: no duplicate or reserved
// categories, and a label and style key for every member.
func (t *Taxonomy) Validate() error {
	if len(t.entries) == 0 {
		return errors.NewValidationError("taxonomy", t.name, "has no categories")
	}
	seen := make(map[Category]bool, len(t.entries))
	for _, e := range t.entries {
		switch {
		case e.Category == "":
			return errors.NewValidationError("category", e.Category, "must not be empty")
		case e.Category == CategoryAll:
			return errors.NewValidationError("category", e.Category, "is reserved")
		case seen[e.Category]:
			return errors.NewValidationError("category", e.Category, "is declared twice in "+t.name)
		case e.Meta.Label == "":
			return errors.NewValidationError("label", e.Category, "is required")
		case e.Meta.Style.Key == "":
			return errors.NewValidationError("style.key", e.Category, "is required")
		}
		seen[e.Category] = true
	}
	return nil
}

// FormTaxonomy is the forms directory enumeration.
var FormTaxonomy = NewTaxonomy(CatalogForms,
	Entry{FormLeave, Meta{"Leave", Style{Key: "leave", Accent: "#2563eb", Badge: "LV"}}},
	Entry{FormMedical, Meta{"Medical", Style{Key: "medical", Accent: "#dc2626", Badge: "MD"}}},
	Entry{FormTraining, Meta{"Training", Style{Key: "training", Accent: "#16a34a", Badge: "TR"}}},
	Entry{FormAdministrative, Meta{"Administrative", Style{Key: "administrative", Accent: "#6b7280", Badge: "AD"}}},
	Entry{FormCoastGuard, Meta{"Coast Guard", Style{Key: "coast-guard", Accent: "#ea580c", Badge: "CG"}}},
	Entry{FormBenefits, Meta{"Benefits", Style{Key: "benefits", Accent: "#9333ea", Badge: "BN"}}},
)

// ShipTaxonomy is the ship-class reference enumeration.
var ShipTaxonomy = NewTaxonomy(CatalogShips,
	Entry{ShipContainer, Meta{"Container Ships", Style{Key: "container", Accent: "#0891b2", Badge: "CN"}}},
	Entry{ShipTanker, Meta{"Tankers", Style{Key: "tanker", Accent: "#b45309", Badge: "TK"}}},
	Entry{ShipBulkCarrier, Meta{"Bulk Carriers", Style{Key: "bulk-carrier", Accent: "#4d7c0f", Badge: "BK"}}},
	Entry{ShipRoRo, Meta{"Ro-Ro", Style{Key: "ro-ro", Accent: "#7c3aed", Badge: "RR"}}},
	Entry{ShipPassenger, Meta{"Passenger", Style{Key: "passenger", Accent: "#db2777", Badge: "PX"}}},
	Entry{ShipSpecialPurpose, Meta{"Special Purpose", Style{Key: "special-purpose", Accent: "#475569", Badge: "SP"}}},
)

// SpotTaxonomy is the port-guide local spot enumeration.
var SpotTaxonomy = NewTaxonomy(CatalogSpots,
	Entry{SpotDining, Meta{"Dining", Style{Key: "dining", Accent: "#f59e0b", Badge: "DN"}}},
	Entry{SpotLodging, Meta{"Lodging", Style{Key: "lodging", Accent: "#3b82f6", Badge: "LG"}}},
	Entry{SpotTransport, Meta{"Transport", Style{Key: "transport", Accent: "#10b981", Badge: "TX"}}},
	Entry{SpotSafety, Meta{"Safety", Style{Key: "safety", Accent: "#ef4444", Badge: "SF"}}},
	Entry{SpotShopping, Meta{"Shopping", Style{Key: "shopping", Accent: "#8b5cf6", Badge: "SH"}}},
	Entry{SpotSeafarerServices, Meta{"Seafarer Services", Style{Key: "seafarer-services", Accent: "#0ea5e9", Badge: "SS"}}},
)

// Catalog names.
const (
	CatalogForms = "forms"
	CatalogShips = "ships"
	CatalogSpots = "spots"
)

// TaxonomyFor returns the taxonomy of a named catalog.
func TaxonomyFor(catalog string) (*Taxonomy, error) {
	switch catalog {
	case CatalogForms:
		return FormTaxonomy, nil
	case CatalogShips:
		return ShipTaxonomy, nil
	case CatalogSpots:
		return SpotTaxonomy, nil
	default:
		return nil, errors.NewNotFoundError("catalog", catalog)
	}
}
