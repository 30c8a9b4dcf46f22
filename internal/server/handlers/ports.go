package handlers

import (
	"net/http"

	"github.com/harborline/mariner/internal/server/cache"
	"github.com/harborline/mariner/internal/server/params"
	"github.com/harborline/mariner/internal/server/response"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/conditions"
	"github.com/harborline/mariner/pkg/markers"
	"github.com/harborline/mariner/pkg/surface"
)

// portView summarizes a port guide.
type portView struct {
	*catalogs.Port
	SpotCount  int                  `json:"spot_count"`
	Categories []surface.Tab        `json:"categories,omitempty"`
	Conditions *conditions.Snapshot `json:"conditions,omitempty"`
	Markers    []markers.Marker     `json:"markers,omitempty"`
}

// carouselView is a page of spots with asset URLs resolved.
type carouselView struct {
	surface.View
	Port    string       `json:"port"`
	Records []recordView `json:"records"`
}

func (h *Handlers) carouselView(slug string, c *surface.Carousel) carouselView {
	v := c.View()
	return carouselView{View: v, Port: slug, Records: h.recordViews(v.Records)}
}

// HandleListPorts handles GET {prefix}/ports.
// @Summary List port guides
// @Tags ports
// @Produce json
// @Success 200 {object} response.Response{data=[]portView}
// @Router /ports [get]
func (h *Handlers) HandleListPorts(w http.ResponseWriter, _ *http.Request) {
	h.cached(w, cache.Key("ports"), func() (any, error) {
		ports := h.client.Ports()
		out := make([]portView, len(ports))
		for i, p := range ports {
			out[i] = portView{Port: p, SpotCount: p.Spots.Len()}
		}
		return out, nil
	})
}

// PortCachePrefix prefixes the cached responses of slug that embed its
// conditions. They are dropped whenever a new snapshot is applied.
func PortCachePrefix(slug string) string {
	return cache.Key("port", slug, "")
}

// HandleGetPort handles GET {prefix}/ports/{slug}: the guide, its spot
// categories, its markers and the latest conditions when available.
// @Summary Get a port guide
// @Description The guide with its spot categories, markers and latest conditions
// @Tags ports
// @Produce json
// @Param slug path string true "Port slug"
// @Success 200 {object} response.Response{data=portView}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /ports/{slug} [get]
func (h *Handlers) HandleGetPort(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	h.cached(w, PortCachePrefix(slug)+"detail", func() (any, error) {
		p, err := h.client.Port(slug)
		if err != nil {
			return nil, err
		}
		m, err := h.client.Markers(slug)
		if err != nil {
			return nil, err
		}

		view := portView{
			Port:       p,
			SpotCount:  p.Spots.Len(),
			Categories: surface.Tabs(p.Spots, ""),
			Markers:    m.Markers(),
		}
		if snap, ok := h.client.Conditions(slug); ok {
			view.Conditions = &snap
		}
		return view, nil
	})
}

// HandleListSpots handles GET {prefix}/ports/{slug}/spots. Query
// parameters: category, q, offset (or 1-based page), page_size, and focus
// (a spot id to page to; it replaces category and q).
// @Summary Page through spots
// @Tags ports
// @Produce json
// @Param slug path string true "Port slug"
// @Param category query string false "Category, or all"
// @Param q query string false "Case-insensitive substring of title or description"
// @Param offset query integer false "0-based record offset"
// @Param page query integer false "1-based page, used when offset is absent"
// @Param page_size query integer false "Records per page (default: 4, max: 100)"
// @Param focus query string false "Spot id to page to"
// @Success 200 {object} response.Response{data=carouselView}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /ports/{slug}/spots [get]
func (h *Handlers) HandleListSpots(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	q, err := params.Parse(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	focus := r.URL.Query().Get("focus")
	key := cache.Key("spots", slug, params.CacheKey(r), focus)
	h.cached(w, key, func() (any, error) {
		c, err := h.restore(slug, q)
		if err != nil {
			return nil, err
		}
		if focus != "" {
			if err := c.Focus(focus); err != nil {
				return nil, err
			}
		}
		return h.carouselView(slug, c), nil
	})
}

func (h *Handlers) restore(slug string, q params.Query) (*surface.Carousel, error) {
	c, err := h.client.Carousel(slug, q.PageSize)
	if err != nil {
		return nil, err
	}
	if err := c.Restore(q.State, q.Offset); err != nil {
		return nil, err
	}
	return c, nil
}

// HandleSpotCategories handles GET {prefix}/ports/{slug}/spots/categories.
// @Summary List spot categories
// @Tags ports
// @Produce json
// @Param slug path string true "Port slug"
// @Success 200 {object} response.Response{data=[]surface.Tab}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /ports/{slug}/spots/categories [get]
func (h *Handlers) HandleSpotCategories(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	h.cached(w, cache.Key("spots", slug, "categories"), func() (any, error) {
		p, err := h.client.Port(slug)
		if err != nil {
			return nil, err
		}
		return surface.Tabs(p.Spots, ""), nil
	})
}

// HandleListMarkers handles GET {prefix}/ports/{slug}/markers.
// @Summary List map markers
// @Tags ports
// @Produce json
// @Param slug path string true "Port slug"
// @Success 200 {object} response.Response{data=[]markers.Marker}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /ports/{slug}/markers [get]
func (h *Handlers) HandleListMarkers(w http.ResponseWriter, r *http.Request) {
	m, err := h.client.Markers(r.PathValue("slug"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, m.Markers())
}

// HandleSelectMarker handles POST {prefix}/ports/{slug}/markers/{id}/select.
// It fires the marker's popup action, which notifies the map's
// subscribers, and answers with the carousel paged to that spot. The
// carousel starts from the request's category, q, offset and page_size.
// @Summary Select a marker
// @Description Fires the popup action and answers with the carousel paged to the spot
// @Tags ports
// @Produce json
// @Param slug path string true "Port slug"
// @Param id path string true "Marker ID"
// @Param category query string false "Category, or all"
// @Param q query string false "Search text"
// @Param offset query integer false "0-based record offset"
// @Param page_size query integer false "Records per page"
// @Success 200 {object} response.Response{data=object}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /ports/{slug}/markers/{id}/select [post]
func (h *Handlers) HandleSelectMarker(w http.ResponseWriter, r *http.Request) {
	slug, id := r.PathValue("slug"), r.PathValue("id")
	q, err := params.Parse(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	m, err := h.client.Markers(slug)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	popup, err := m.Popup(id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	c, err := h.restore(slug, q)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	popup.Select()
	if err := c.Focus(popup.Marker.ID); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.logger.Debug().Str("port", slug).Str("marker", id).Msg("Marker selected")
	response.OK(w, map[string]any{
		"marker":   popup.Marker,
		"carousel": h.carouselView(slug, c),
	})
}
