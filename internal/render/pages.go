package render

import (
	"net/http"
	"strconv"

	g "maragu.dev/gomponents"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/internal/server/params"
	"github.com/harborline/mariner/internal/server/response"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
	"github.com/harborline/mariner/pkg/filter"
	"github.com/harborline/mariner/pkg/markers"
)

// Pages serves the HTML pages of a client.
type Pages struct {
	client mariner.Client
}

// NewPages creates the page handlers.
func NewPages(client mariner.Client) *Pages {
	return &Pages{client: client}
}

// Register mounts the pages on mux.
func (p *Pages) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/forms", http.StatusFound)
	})
	mux.HandleFunc("GET /forms", p.catalog(catalogs.CatalogForms, "Forms directory"))
	mux.HandleFunc("GET /ships", p.catalog(catalogs.CatalogShips, "Ship classes"))
	mux.HandleFunc("GET /ports", p.portsIndex)
	mux.HandleFunc("GET /ports/{slug}", p.port)
}

func (p *Pages) catalog(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := p.client.Catalog(name)
		if err != nil {
			p.fail(w, err)
			return
		}
		ctrl := filter.NewController(store)
		if err := ctrl.Apply(params.ParseFilter(r)); err != nil {
			p.fail(w, err)
			return
		}
		p.render(w, http.StatusOK, CatalogPage(NewCatalogData(title, "/"+name, ctrl, p.client.Assets())))
	}
}

func (p *Pages) portsIndex(w http.ResponseWriter, _ *http.Request) {
	p.render(w, http.StatusOK, PortsIndex(p.client.Ports()))
}

// port renders a guide. A focus parameter selects that spot's marker: the
// popup's action is bound to this request's carousel, which pages to the
// spot.
func (p *Pages) port(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	port, err := p.client.Port(slug)
	if err != nil {
		p.fail(w, err)
		return
	}

	carousel, err := p.client.Carousel(slug, constants.DefaultPageSize)
	if err != nil {
		p.fail(w, err)
		return
	}
	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil {
			p.fail(w, errors.NewValidationError("offset", s, "must be an integer"))
			return
		}
	}
	if err := carousel.Restore(params.ParseFilter(r), offset); err != nil {
		p.fail(w, err)
		return
	}

	spots := markers.NewMap(port.Spots)
	if focus := r.URL.Query().Get("focus"); focus != "" {
		if err := spots.SelectInto(focus, carousel); err != nil {
			p.fail(w, err)
			return
		}
	}

	data := PortData{
		Port:    port,
		View:    carousel.View(),
		Markers: spots.Markers(),
		Assets:  p.client.Assets(),
	}
	if snap, ok := p.client.Conditions(slug); ok {
		data.Conditions = &snap
	}
	p.render(w, http.StatusOK, PortPage(data))
}

func (p *Pages) fail(w http.ResponseWriter, err error) {
	status := response.Status(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "An unexpected error occurred"
	}
	p.render(w, status, ErrorPage(status, message))
}

func (p *Pages) render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = Write(w, node)
}
