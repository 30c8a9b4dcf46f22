package handlers

import (
	"net/http"

	"github.com/harborline/mariner/internal/server/cache"
	"github.com/harborline/mariner/internal/server/params"
	"github.com/harborline/mariner/internal/server/response"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/filter"
	"github.com/harborline/mariner/pkg/surface"
)

// listView is the body of a filtered catalog listing.
type listView struct {
	Catalog string         `json:"catalog"`
	State   filter.State   `json:"state"`
	Summary filter.Summary `json:"summary"`
	Tabs    []surface.Tab  `json:"tabs"`
	Records []recordView   `json:"records"`
}

// HandleListRecords handles GET {prefix}/forms and GET {prefix}/ships.
// Query parameters: category (a member of the catalog's categories or
// "all") and q (case-insensitive substring of title or description). An
// empty result is a 200 with summary.empty set.
// @Summary List records of a catalog
// @Description Filtered forms directory or ship classes
// @Tags catalogs
// @Produce json
// @Param category query string false "Category, or all"
// @Param q query string false "Case-insensitive substring of title or description"
// @Success 200 {object} response.Response{data=listView}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /forms [get]
// @Router /ships [get]
func (h *Handlers) HandleListRecords(catalog string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := cache.Key(catalog, params.CacheKey(r))
		h.cached(w, key, func() (any, error) {
			store, err := h.client.Catalog(catalog)
			if err != nil {
				return nil, err
			}
			return h.list(store, params.ParseFilter(r))
		})
	}
}

func (h *Handlers) list(store *catalogs.Store, state filter.State) (listView, error) {
	ctrl := filter.NewController(store)
	if err := ctrl.Apply(state); err != nil {
		return listView{}, err
	}
	applied := ctrl.State()
	return listView{
		Catalog: store.Name(),
		State:   applied,
		Summary: ctrl.Summary(),
		Tabs:    surface.Tabs(store, applied.Category),
		Records: h.recordViews(ctrl.Visible()),
	}, nil
}

// HandleCategories handles GET {prefix}/forms/categories and
// GET {prefix}/ships/categories: every category with its label, style and
// whole-catalog count.
// @Summary List categories of a catalog
// @Tags catalogs
// @Produce json
// @Success 200 {object} response.Response{data=[]surface.Tab}
// @Router /forms/categories [get]
// @Router /ships/categories [get]
func (h *Handlers) HandleCategories(catalog string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h.cached(w, cache.Key(catalog, "categories"), func() (any, error) {
			store, err := h.client.Catalog(catalog)
			if err != nil {
				return nil, err
			}
			return surface.Tabs(store, ""), nil
		})
	}
}

// HandleGetRecord handles GET {prefix}/forms/{id} and GET {prefix}/ships/{id}.
// @Summary Get a record
// @Tags catalogs
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response{data=recordView}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /forms/{id} [get]
// @Router /ships/{id} [get]
func (h *Handlers) HandleGetRecord(catalog string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		store, err := h.client.Catalog(catalog)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		rec, err := store.Get(id)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		response.OK(w, h.recordViews([]catalogs.Record{rec})[0])
	}
}
