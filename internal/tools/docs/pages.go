package docs

import (
	"fmt"
	"io"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/harborline/mariner/pkg/assets"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/surface"
)

func writeIndex(w io.Writer, lib *catalogs.Library) error {
	doc := md.NewMarkdown(w).
		H1("Mariner content").
		PlainText("Reference pages generated from the content library.").
		LF().
		H2("Catalogs").
		Table(md.TableSet{
			Header: []string{"Catalog", "Records", "Categories"},
			Rows: [][]string{
				{md.Link("Forms directory", "forms.md"), strconv.Itoa(lib.Forms.Len()), strconv.Itoa(lib.Forms.Taxonomy().Len())},
				{md.Link("Ship classes", "ships.md"), strconv.Itoa(lib.Ships.Len()), strconv.Itoa(lib.Ships.Taxonomy().Len())},
			},
		})

	if ports := lib.Ports(); len(ports) > 0 {
		rows := make([][]string, 0, len(ports))
		for _, p := range ports {
			rows = append(rows, []string{
				md.Link(p.Name, "ports/"+p.Slug+".md"),
				p.Country,
				p.Currency,
				strconv.Itoa(p.Spots.Len()),
			})
		}
		doc.H2("Port guides").Table(md.TableSet{
			Header: []string{"Port", "Country", "Currency", "Spots"},
			Rows:   rows,
		})
	}
	return doc.Build()
}

// writeCatalog groups the records of store by category in taxonomy order.
// Empty categories are listed in the summary only.
func writeCatalog(w io.Writer, title string, store *catalogs.Store, resolver assets.Resolver) error {
	tabs := surface.Tabs(store, "")
	doc := md.NewMarkdown(w).H1(title)

	summary := make([]string, 0, len(tabs))
	for _, t := range tabs {
		summary = append(summary, fmt.Sprintf("%s %s: %d", t.Style.Badge, t.Label, t.Count))
	}
	doc.BulletList(summary...)

	for _, t := range tabs[1:] {
		if t.Count == 0 {
			continue
		}
		var rows [][]string
		store.Each(func(_ int, r *catalogs.Record) bool {
			if r.Category == t.Category {
				rows = append(rows, []string{md.Code(r.ID), r.Title, r.Description, pdfLink(resolver, r.Asset)})
			}
			return true
		})
		doc.H2(t.Label).Table(md.TableSet{
			Header: []string{"ID", "Title", "Description", "PDF"},
			Rows:   rows,
		})
	}
	return doc.Build()
}

func writePort(w io.Writer, p *catalogs.Port) error {
	doc := md.NewMarkdown(w).H1(p.Name)
	if p.Summary != "" {
		doc.PlainText(p.Summary).LF()
	}
	doc.BulletList(
		"Country: "+p.Country,
		"Time zone: "+p.TimeZone,
		"Currency: "+p.Currency,
		fmt.Sprintf("Position: %.4f, %.4f", p.Latitude, p.Longitude),
	)

	for _, t := range surface.Tabs(p.Spots, "")[1:] {
		if t.Count == 0 {
			continue
		}
		var rows [][]string
		p.Spots.Each(func(_ int, r *catalogs.Record) bool {
			if r.Category == t.Category {
				rows = append(rows, []string{r.Title, r.Description, location(r.Location)})
			}
			return true
		})
		doc.H2(t.Label).Table(md.TableSet{
			Header: []string{"Spot", "Description", "Location"},
			Rows:   rows,
		})
	}
	return doc.Build()
}

func pdfLink(resolver assets.Resolver, asset string) string {
	href := resolver.Resolve(asset)
	if href == "" {
		return "-"
	}
	return md.Link(asset, href)
}

func location(l *catalogs.Location) string {
	if l == nil {
		return "-"
	}
	mapURL := fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.5f&mlon=%.5f#map=17/%.5f/%.5f",
		l.Latitude, l.Longitude, l.Latitude, l.Longitude)
	label := l.Address
	if label == "" {
		label = fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude)
	}
	return md.Link(label, mapURL)
}
