package filter

import (
	"github.com/harborline/mariner/pkg/catalogs"
)

// Summary is the "showing N of M" feedback for a surface.
type Summary struct {
	Showing int  `json:"showing" yaml:"showing"`
	Total   int  `json:"total" yaml:"total"`
	Empty   bool `json:"empty" yaml:"empty"`
}

// Controller owns the filter state of one surface over one store.
type Controller struct {
	store   *catalogs.Store
	state   State
	visible []catalogs.Record
}

// NewController creates a controller in the default state.
func NewController(store *catalogs.Store) *Controller {
	c := &Controller{store: store, state: DefaultState()}
	c.recompute()
	return c
}

// Store returns the underlying record store.
func (c *Controller) Store() *catalogs.Store {
	return c.store
}

// State returns the current filter state.
func (c *Controller) State() State {
	return c.state
}

// SetCategory selects "all" or one category of the store's taxonomy.
// Any other value returns an UnknownCategoryError and leaves the state
// unchanged.
func (c *Controller) SetCategory(category catalogs.Category) error {
	parsed, err := c.store.Taxonomy().Parse(string(category))
	if err != nil {
		return err
	}
	c.state.Category = parsed
	c.recompute()
	return nil
}

// SetQuery replaces the text query verbatim.
func (c *Controller) SetQuery(query string) {
	c.state.Query = query
	c.recompute()
}

// Apply replaces the whole state, validating the category first.
func (c *Controller) Apply(s State) error {
	if s.Category == "" {
		s.Category = catalogs.CategoryAll
	}
	parsed, err := c.store.Taxonomy().Parse(string(s.Category))
	if err != nil {
		return err
	}
	c.state = State{Category: parsed, Query: s.Query}
	c.recompute()
	return nil
}

// Reset restores the default state.
func (c *Controller) Reset() {
	c.state = DefaultState()
	c.recompute()
}

// Visible returns the records matching the current state, in store order.
func (c *Controller) Visible() []catalogs.Record {
	out := make([]catalogs.Record, len(c.visible))
	for i, r := range c.visible {
		out[i] = r.Clone()
	}
	return out
}

// Summary returns visible and total counts. Empty is set when nothing
// matches, which surfaces render as an explicit no-match state.
func (c *Controller) Summary() Summary {
	return Summary{
		Showing: len(c.visible),
		Total:   c.store.Len(),
		Empty:   len(c.visible) == 0,
	}
}

// CategoryCounts returns the number of records per category over the whole
// store, independent of the current state.
func (c *Controller) CategoryCounts() map[catalogs.Category]int {
	return c.store.CountByCategory()
}

func (c *Controller) recompute() {
	c.visible = Apply(c.store, c.state)
}
