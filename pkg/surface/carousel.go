// Package surface composes the filter controller and the paginated window
// into the carousel used by port guides. A Carousel is what a render
// surface holds: it applies user actions and produces a View to draw.
package surface

import (
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/errors"
	"github.com/harborline/mariner/pkg/filter"
	"github.com/harborline/mariner/pkg/window"
)

// Tab is one category button with its counter.
type Tab struct {
	Category catalogs.Category `json:"category" yaml:"category"`
	Label    string            `json:"label" yaml:"label"`
	Style    catalogs.Style    `json:"style" yaml:"style"`
	Count    int               `json:"count" yaml:"count"`
	Active   bool              `json:"active" yaml:"active"`
}

// View is everything a render surface needs to draw a carousel.
type View struct {
	Records     []catalogs.Record `json:"records" yaml:"records"`
	Offset      int               `json:"offset" yaml:"offset"`
	PageSize    int               `json:"page_size" yaml:"page_size"`
	PageIndex   int               `json:"page_index" yaml:"page_index"`
	PageCount   int               `json:"page_count" yaml:"page_count"`
	HasNext     bool              `json:"has_next" yaml:"has_next"`
	HasPrevious bool              `json:"has_previous" yaml:"has_previous"`
	Summary     filter.Summary    `json:"summary" yaml:"summary"`
	State       filter.State      `json:"state" yaml:"state"`
	Tabs        []Tab             `json:"tabs" yaml:"tabs"`
	Focused     string            `json:"focused,omitempty" yaml:"focused,omitempty"`
}

// Carousel is a filterable, paginated view over one store. It is owned by
// a single surface and is not safe for concurrent use.
type Carousel struct {
	filter   *filter.Controller
	win      *window.Window[catalogs.Record]
	pageSize int
	focused  string
}

// NewCarousel creates a carousel in the default filter state at offset 0.
func NewCarousel(store *catalogs.Store, pageSize int) (*Carousel, error) {
	if store == nil {
		return nil, errors.NewValidationError("store", nil, "is required")
	}
	c := &Carousel{filter: filter.NewController(store), pageSize: pageSize}
	if err := c.rebuild(); err != nil {
		return nil, err
	}
	return c, nil
}

// Store returns the underlying record store.
func (c *Carousel) Store() *catalogs.Store {
	return c.filter.Store()
}

// SelectCategory changes the category and returns to the first page.
func (c *Carousel) SelectCategory(category catalogs.Category) error {
	if err := c.filter.SetCategory(category); err != nil {
		return err
	}
	return c.rebuild()
}

// SetQuery changes the text query and returns to the first page.
func (c *Carousel) SetQuery(query string) error {
	c.filter.SetQuery(query)
	return c.rebuild()
}

// Reset restores the default filter state and returns to the first page.
func (c *Carousel) Reset() error {
	c.filter.Reset()
	return c.rebuild()
}

// Next advances one page.
func (c *Carousel) Next() {
	c.win.Advance()
}

// Previous goes back one page.
func (c *Carousel) Previous() {
	c.win.Retreat()
}

// Focus shows the record with the given id: it selects the record's
// category, clears the query and pages so the record is visible.
func (c *Carousel) Focus(id string) error {
	r, err := c.Store().Get(id)
	if err != nil {
		return err
	}
	if err := c.filter.Apply(filter.State{Category: r.Category}); err != nil {
		return err
	}
	if err := c.rebuild(); err != nil {
		return err
	}
	for i, v := range c.filter.Visible() {
		if v.ID == id {
			c.win.Seek(i / c.pageSize * c.pageSize)
			break
		}
	}
	c.focused = id
	return nil
}

// Restore rebuilds the carousel from a filter state and an offset, as
// carried by a stateless request. Offsets past the end are clamped;
// negative offsets are rejected.
func (c *Carousel) Restore(state filter.State, offset int) error {
	if offset < 0 {
		return errors.NewValidationError("offset", offset, "must not be negative")
	}
	if err := c.filter.Apply(state); err != nil {
		return err
	}
	if err := c.rebuild(); err != nil {
		return err
	}
	c.win.Seek(offset)
	return nil
}

// View returns the current page and its surrounding metadata.
func (c *Carousel) View() View {
	state := c.filter.State()
	return View{
		Records:     c.win.Page(),
		Offset:      c.win.Offset(),
		PageSize:    c.win.PageSize(),
		PageIndex:   c.win.PageIndex(),
		PageCount:   c.win.PageCount(),
		HasNext:     c.win.HasNext(),
		HasPrevious: c.win.HasPrevious(),
		Summary:     c.filter.Summary(),
		State:       state,
		Tabs:        Tabs(c.Store(), state.Category),
		Focused:     c.focused,
	}
}

// Tabs returns the "all" tab followed by one tab per category, with
// whole-store counts and the active flag set on the selected one.
func Tabs(store *catalogs.Store, active catalogs.Category) []Tab {
	tax := store.Taxonomy()
	counts := store.CountByCategory()
	tabs := make([]Tab, 0, tax.Len()+1)
	tabs = append(tabs, Tab{
		Category: catalogs.CategoryAll,
		Label:    "All",
		Style:    catalogs.Style{Key: "all", Accent: "#1f2937", Badge: "**"},
		Count:    store.Len(),
		Active:   active == catalogs.CategoryAll,
	})
	for _, cat := range tax.Categories() {
		// Categories come from the taxonomy itself, so Meta cannot fail.
		meta, _ := tax.Meta(cat)
		tabs = append(tabs, Tab{
			Category: cat,
			Label:    meta.Label,
			Style:    meta.Style,
			Count:    counts[cat],
			Active:   active == cat,
		})
	}
	return tabs
}

func (c *Carousel) rebuild() error {
	w, err := window.New(c.filter.Visible(), c.pageSize)
	if err != nil {
		return err
	}
	c.win = w
	c.focused = ""
	return nil
}
