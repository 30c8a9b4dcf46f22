package render

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/harborline/mariner/pkg/assets"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/filter"
	"github.com/harborline/mariner/pkg/surface"
)

// CatalogData is what CatalogPage draws.
type CatalogData struct {
	Title   string
	Path    string
	State   filter.State
	Summary filter.Summary
	Tabs    []surface.Tab
	Records []catalogs.Record
	Assets  assets.Resolver
}

// NewCatalogData captures the current state of ctrl for rendering.
func NewCatalogData(title, path string, ctrl *filter.Controller, resolver assets.Resolver) CatalogData {
	state := ctrl.State()
	return CatalogData{
		Title:   title,
		Path:    path,
		State:   state,
		Summary: ctrl.Summary(),
		Tabs:    surface.Tabs(ctrl.Store(), state.Category),
		Records: ctrl.Visible(),
		Assets:  resolver,
	}
}

// CatalogPage renders a filterable directory: category buttons with
// counters, a search box, the "showing N of M" line and the record cards,
// or an explicit block when nothing matches.
func CatalogPage(d CatalogData) g.Node {
	return layout(d.Title, d.Path,
		H1(g.Text(d.Title)),
		searchForm(d.Path, d.State),
		categoryTabs(d.Path, d.State, d.Tabs),
		summaryLine(d.Summary),
		g.If(d.Summary.Empty, noMatch(d.Path, d.State)),
		g.If(!d.Summary.Empty, Div(Class("cards"),
			g.Map(d.Records, func(r catalogs.Record) g.Node {
				return recordCard(r, tabFor(d.Tabs, r.Category), d.Assets)
			}),
		)),
	)
}

func searchForm(path string, s filter.State) g.Node {
	return g.El("form",
		Method("get"),
		Action(path),
		g.If(s.Category != catalogs.CategoryAll, Input(Type("hidden"), Name("category"), Value(string(s.Category)))),
		Input(Type("search"), Name("q"), Value(s.Query), Placeholder("Search titles and descriptions")),
		Button(Type("submit"), g.Text("Search")),
		g.If(!s.IsDefault(), A(Class("tab"), Href(path), g.Text("Reset"))),
	)
}

// categoryTabs keeps the query when switching category.
func categoryTabs(path string, s filter.State, tabs []surface.Tab) g.Node {
	return Nav(Class("tabs"), g.Map(tabs, func(t surface.Tab) g.Node {
		category := string(t.Category)
		if t.Category == catalogs.CategoryAll {
			category = ""
		}
		class := "tab"
		if t.Active {
			class = "tab active"
		}
		return A(
			Class(class),
			g.If(t.Active, g.Attr("style", "background:"+t.Style.Accent)),
			g.Attr("data-category", string(t.Category)),
			Href(link(path, "category", category, "q", s.Query)),
			g.Text(t.Label),
			Span(Class("count"), g.Text(itoa(t.Count))),
		)
	}))
}

func summaryLine(s filter.Summary) g.Node {
	return P(Class("summary"), g.Textf("Showing %d of %d", s.Showing, s.Total))
}

func noMatch(path string, s filter.State) g.Node {
	msg := "No entries match this category."
	if s.Query != "" {
		msg = "No entries match “" + s.Query + "”."
	}
	return Div(Class("empty"), Role("status"),
		P(g.Text(msg)),
		A(Href(path), g.Text("Show everything")),
	)
}

func recordCard(r catalogs.Record, t surface.Tab, resolver assets.Resolver) g.Node {
	href := resolver.Resolve(r.Asset)
	return Article(
		Class("card"),
		ID(r.ID),
		g.Attr("style", "border-top-color:"+t.Style.Accent),
		Span(Class("badge"), g.Attr("style", "background:"+t.Style.Accent), g.Text(t.Style.Badge)),
		H3(g.Text(r.Title)),
		g.If(r.Description != "", P(g.Text(r.Description))),
		g.If(href != "", A(Href(href), Target("_blank"), Rel("noopener"), g.Text("Download PDF"))),
	)
}

// tabFor returns the tab of category c; the zero Tab when c is unknown.
func tabFor(tabs []surface.Tab, c catalogs.Category) surface.Tab {
	for _, t := range tabs {
		if t.Category == c {
			return t
		}
	}
	return surface.Tab{}
}
