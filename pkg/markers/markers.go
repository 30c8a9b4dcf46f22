// Package markers turns located catalog records into map markers and lets
// the surrounding surface subscribe to marker selection.
//
// Popups are built with the handlers registered at construction time, so
// content rendered inside a popup invokes actions owned by the surface
// without any global callback.
package markers

import (
	"slices"
	"sync"

	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/errors"
)

// Marker is one point on a port map.
type Marker struct {
	ID       string            `json:"id" yaml:"id"`
	Label    string            `json:"label" yaml:"label"`
	Category catalogs.Category `json:"category" yaml:"category"`
	Style    catalogs.Style    `json:"style" yaml:"style"`
	Lat      float64           `json:"lat" yaml:"lat"`
	Lon      float64           `json:"lon" yaml:"lon"`
}

// Handler is called when a marker's popup action is selected.
type Handler func(Marker)

type subscription struct {
	id uint64
	fn Handler
}

// Map holds the markers of one store and the selection subscribers.
// It is safe for concurrent use.
type Map struct {
	markers []Marker
	index   map[string]int

	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
}

// NewMap creates a marker for every record in store that has a location,
// in store order.
func NewMap(store *catalogs.Store) *Map {
	m := &Map{index: make(map[string]int)}
	tax := store.Taxonomy()
	store.Each(func(_ int, r *catalogs.Record) bool {
		if r.Location == nil {
			return true
		}
		meta, _ := tax.Meta(r.Category)
		m.index[r.ID] = len(m.markers)
		m.markers = append(m.markers, Marker{
			ID:       r.ID,
			Label:    r.Title,
			Category: r.Category,
			Style:    meta.Style,
			Lat:      r.Location.Latitude,
			Lon:      r.Location.Longitude,
		})
		return true
	})
	return m
}

// Markers returns all markers in store order.
func (m *Map) Markers() []Marker {
	return slices.Clone(m.markers)
}

// Len returns the number of markers.
func (m *Map) Len() int {
	return len(m.markers)
}

// Marker returns the marker with the given record id.
func (m *Map) Marker(id string) (Marker, error) {
	i, ok := m.index[id]
	if !ok {
		return Marker{}, errors.NewNotFoundError("marker", id)
	}
	return m.markers[i], nil
}

// OnSelect registers a selection handler and returns a function that
// removes it. Calling the returned function more than once is harmless.
func (m *Map) OnSelect(fn Handler) (unsubscribe func()) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscription{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.subs = slices.DeleteFunc(m.subs, func(s subscription) bool { return s.id == id })
		})
	}
}

// Subscribers returns the number of registered handlers.
func (m *Map) Subscribers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}

// Popup builds the popup for a marker, bound to the handlers registered
// right now. Handlers added later are not called by this popup, and
// handlers removed later still are.
func (m *Map) Popup(id string) (*Popup, error) {
	marker, err := m.Marker(id)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	handlers := make([]Handler, len(m.subs))
	for i, s := range m.subs {
		handlers[i] = s.fn
	}
	m.mu.RUnlock()

	return &Popup{Marker: marker, handlers: handlers}, nil
}

// Select builds a popup for id and triggers its action.
func (m *Map) Select(id string) error {
	p, err := m.Popup(id)
	if err != nil {
		return err
	}
	p.Select()
	return nil
}

// Focuser pages a view to a record; *surface.Carousel is one.
type Focuser interface {
	Focus(id string) error
}

// SelectInto selects id with target subscribed for the duration of the
// call, so target pages to the marker's record along with every other
// handler. The subscription is gone when SelectInto returns.
func (m *Map) SelectInto(id string, target Focuser) error {
	var focusErr error
	unsubscribe := m.OnSelect(func(marker Marker) {
		focusErr = target.Focus(marker.ID)
	})
	defer unsubscribe()

	if err := m.Select(id); err != nil {
		return err
	}
	return focusErr
}

// Popup is the content shown over a marker, carrying its own handlers.
type Popup struct {
	Marker   Marker
	handlers []Handler
}

// Select runs the bound handlers in registration order.
func (p *Popup) Select() {
	for _, fn := range p.handlers {
		fn(p.Marker)
	}
}
