// Package render draws the HTML pages of mariner with gomponents: the
// forms directory, the ship-class reference and the port guides.
//
// Pages are pure functions of their data; the handlers in pages.go build
// that data from a fresh filter controller or carousel per request.
package render

import (
	"io"
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;color:#1f2937;background:#f8fafc}
header.site{background:#0f2a44;color:#fff;padding:.75rem 1.5rem;display:flex;gap:1.5rem;align-items:center}
header.site a{color:#dbeafe;text-decoration:none}
header.site a.active{color:#fff;font-weight:600;border-bottom:2px solid #fbbf24}
main{max-width:64rem;margin:0 auto;padding:1.5rem}
.tabs{display:flex;flex-wrap:wrap;gap:.5rem;margin:1rem 0}
.tab{border:1px solid #cbd5e1;border-radius:999px;padding:.25rem .75rem;text-decoration:none;color:inherit}
.tab.active{color:#fff}
.count{font-size:.8em;opacity:.8;margin-left:.35rem}
.summary{color:#475569;margin:.5rem 0 1rem}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(14rem,1fr));gap:1rem}
.card{background:#fff;border-radius:.5rem;padding:1rem;border-top:4px solid #94a3b8}
.badge{font-family:monospace;font-size:.75em;padding:0 .3rem;border-radius:.25rem;color:#fff}
.empty{background:#fff7ed;border:1px dashed #fb923c;padding:1.5rem;border-radius:.5rem}
.dots{display:flex;gap:.4rem;justify-content:center;margin:1rem 0}
.dot{width:.7rem;height:.7rem;border-radius:50%;background:#cbd5e1;display:inline-block}
.dot.current{background:#0f2a44}
.pager{display:flex;justify-content:space-between}
.conditions{display:flex;gap:2rem;background:#fff;padding:1rem;border-radius:.5rem}
.markers li{margin:.2rem 0}
`

// navLink is one entry of the site header.
type navLink struct {
	Label string
	Href  string
}

var siteNav = []navLink{
	{Label: "Forms", Href: "/forms"},
	{Label: "Ships", Href: "/ships"},
	{Label: "Ports", Href: "/ports"},
}

// layout wraps body in the site chrome. active is the href of the
// highlighted header link.
func layout(title, active string, body ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(title+" | Mariner")),
				StyleEl(g.Raw(stylesheet)),
			),
			Body(
				Header(
					Class("site"),
					Strong(g.Text("Mariner")),
					Nav(g.Map(siteNav, func(l navLink) g.Node {
						return A(Href(l.Href), g.If(l.Href == active, Class("active")), g.Text(l.Label))
					})),
				),
				Main(body...),
			),
		),
	)
}

// ErrorPage renders a failed request.
func ErrorPage(status int, message string) g.Node {
	return layout("Error", "",
		H1(g.Textf("%d", status)),
		Div(Class("empty"), P(g.Text(message))),
	)
}

// Write renders node to w.
func Write(w io.Writer, node g.Node) error {
	return node.Render(w)
}

// link builds path?query from the non-empty values of pairs.
func link(path string, pairs ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			q.Set(pairs[i], pairs[i+1])
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
