package render

import (
	"fmt"
	"slices"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/harborline/mariner/pkg/assets"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/conditions"
	"github.com/harborline/mariner/pkg/markers"
	"github.com/harborline/mariner/pkg/surface"
)

// PortData is what PortPage draws.
type PortData struct {
	Port       *catalogs.Port
	View       surface.View
	Markers    []markers.Marker
	Conditions *conditions.Snapshot
	Assets     assets.Resolver
}

// PortPage renders a port guide: live conditions, the spots carousel
// with its category buttons and page dots, and the map markers whose
// "details" links focus the carousel.
func PortPage(d PortData) g.Node {
	path := "/ports/" + d.Port.Slug
	v := d.View
	return layout(d.Port.Name, "/ports",
		H1(g.Text(d.Port.Name), Small(g.Text(" "+d.Port.Country))),
		g.If(d.Port.Summary != "", P(g.Text(d.Port.Summary))),
		conditionsPanel(d.Conditions),
		H2(g.Text("Around the port")),
		categoryTabs(path, v.State, v.Tabs),
		summaryLine(v.Summary),
		g.If(v.Summary.Empty, noMatch(path, v.State)),
		g.If(!v.Summary.Empty, g.Group([]g.Node{
			Div(Class("cards"), g.Map(v.Records, func(r catalogs.Record) g.Node {
				card := recordCard(r, tabFor(v.Tabs, r.Category), d.Assets)
				if r.ID == v.Focused {
					return Div(Class("focused"), card)
				}
				return card
			})),
			pager(path, v),
		})),
		markerList(path, d.Markers),
	)
}

// pageLink keeps the filter state while moving to offset.
func pageLink(path string, v surface.View, offset int) string {
	category := string(v.State.Category)
	if v.State.Category == catalogs.CategoryAll {
		category = ""
	}
	return link(path, "category", category, "q", v.State.Query, "offset", itoa(offset))
}

func pager(path string, v surface.View) g.Node {
	pages := make([]int, v.PageCount)
	for i := range pages {
		pages[i] = i
	}
	return Div(
		Div(Class("dots"), g.Map(pages, func(i int) g.Node {
			class := "dot"
			if i == v.PageIndex {
				class = "dot current"
			}
			return A(Class(class), Href(pageLink(path, v, i*v.PageSize)), Aria("label", fmt.Sprintf("Page %d", i+1)))
		})),
		Div(Class("pager"),
			g.If(v.HasPrevious, A(Href(pageLink(path, v, max(v.Offset-v.PageSize, 0))), g.Text("← Previous"))),
			Span(g.Textf("Page %d of %d", v.PageIndex+1, v.PageCount)),
			g.If(v.HasNext, A(Href(pageLink(path, v, v.Offset+v.PageSize)), g.Text("Next →"))),
		),
	)
}

func conditionsPanel(snap *conditions.Snapshot) g.Node {
	if snap == nil || snap.Empty() {
		return Div(Class("conditions"), P(g.Text("Live conditions are not available yet.")))
	}

	var items []g.Node
	if !snap.LocalTime.IsZero() {
		items = append(items, Div(Strong(g.Text("Local time ")), g.Text(snap.LocalTime.Format("Mon 15:04 MST"))))
	}
	if w := snap.Weather; w != nil {
		items = append(items, Div(Strong(g.Text("Weather ")),
			g.Textf("%s, %.0f°C, wind %.0f km/h", w.Summary, w.TemperatureC, w.WindSpeedKmh)))
	}
	if r := snap.Rates; r != nil {
		codes := make([]string, 0, len(r.Quotes))
		for code := range r.Quotes {
			codes = append(codes, code)
		}
		slices.Sort(codes)
		items = append(items, Div(Strong(g.Text("Exchange ")), g.Map(codes, func(code string) g.Node {
			return Span(g.Textf("1 %s = %.4f %s ", r.Base, r.Quotes[code], code))
		})))
	}
	return Div(Class("conditions"), g.Attr("data-generation", fmt.Sprint(snap.Generation)), g.Group(items))
}

func markerList(path string, ms []markers.Marker) g.Node {
	if len(ms) == 0 {
		return g.Group(nil)
	}
	return Section(
		H2(g.Text("Map")),
		Ul(Class("markers"), g.Map(ms, func(m markers.Marker) g.Node {
			return Li(
				g.Attr("data-lat", fmt.Sprintf("%.5f", m.Lat)),
				g.Attr("data-lon", fmt.Sprintf("%.5f", m.Lon)),
				Span(Class("badge"), g.Attr("style", "background:"+m.Style.Accent), g.Text(m.Style.Badge)),
				g.Text(" "+m.Label+" "),
				A(Href(link(path, "focus", m.ID)), g.Text("details")),
			)
		})),
	)
}

// PortsIndex renders the list of port guides.
func PortsIndex(ports []*catalogs.Port) g.Node {
	return layout("Ports", "/ports",
		H1(g.Text("Port guides")),
		Ul(g.Map(ports, func(p *catalogs.Port) g.Node {
			return Li(
				A(Href("/ports/"+p.Slug), g.Text(p.Name)),
				g.Textf(" (%s, %d spots)", p.Country, p.Spots.Len()),
			)
		})),
	)
}
