// Package table converts mariner content into rows for CLI tables.
package table

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/harborline/mariner/pkg/assets"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/conditions"
	"github.com/harborline/mariner/pkg/markers"
	"github.com/harborline/mariner/pkg/surface"
)

// Align is the alignment of a column.
type Align int

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Data is a table ready for rendering.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

const descriptionWidth = 60

// Records lists records with their category badge. wide adds the
// description and the resolved PDF link.
func Records(records []catalogs.Record, tabs []surface.Tab, resolver assets.Resolver, wide bool) Data {
	headers := []string{"ID", "Category", "Title"}
	if wide {
		headers = append(headers, "Description", "PDF")
	}

	labels := make(map[catalogs.Category]string, len(tabs))
	for _, t := range tabs {
		labels[t.Category] = t.Style.Badge + " " + t.Label
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		label := labels[r.Category]
		if label == "" {
			label = string(r.Category)
		}
		row := []string{r.ID, label, r.Title}
		if wide {
			row = append(row, dash(Truncate(r.Description, descriptionWidth)), dash(resolver.Resolve(r.Asset)))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// Tabs lists the category buttons of a catalog with their counts.
func Tabs(tabs []surface.Tab) Data {
	rows := make([][]string, 0, len(tabs))
	for _, t := range tabs {
		active := ""
		if t.Active {
			active = "*"
		}
		rows = append(rows, []string{string(t.Category), t.Label, t.Style.Badge, strconv.Itoa(t.Count), active})
	}
	return Data{
		Headers:         []string{"Category", "Label", "Badge", "Count", "Active"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignCenter, AlignRight, AlignCenter},
	}
}

// Ports lists port guides.
func Ports(ports []*catalogs.Port, wide bool) Data {
	headers := []string{"Slug", "Name", "Country", "Spots"}
	if wide {
		headers = append(headers, "Time Zone", "Currency", "Position")
	}
	rows := make([][]string, 0, len(ports))
	for _, p := range ports {
		row := []string{p.Slug, p.Name, p.Country, strconv.Itoa(p.Spots.Len())}
		if wide {
			row = append(row, p.TimeZone, p.Currency, fmt.Sprintf("%.4f, %.4f", p.Latitude, p.Longitude))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// Markers lists the map markers of a port.
func Markers(ms []markers.Marker) Data {
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{m.ID, m.Style.Badge, m.Label, fmt.Sprintf("%.5f", m.Lat), fmt.Sprintf("%.5f", m.Lon)})
	}
	return Data{
		Headers:         []string{"ID", "Badge", "Label", "Lat", "Lon"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignCenter, AlignLeft, AlignRight, AlignRight},
	}
}

// Conditions shows a snapshot as property rows.
func Conditions(s conditions.Snapshot) Data {
	rows := [][]string{{"Port", s.Port}}
	if !s.LocalTime.IsZero() {
		rows = append(rows, []string{"Local time", s.LocalTime.Format("Mon 2006-01-02 15:04 MST")})
	}
	if w := s.Weather; w != nil {
		rows = append(rows,
			[]string{"Weather", w.Summary},
			[]string{"Temperature", fmt.Sprintf("%.1f °C", w.TemperatureC)},
			[]string{"Wind", fmt.Sprintf("%.0f km/h from %.0f°", w.WindSpeedKmh, w.WindDirection)},
		)
	}
	if r := s.Rates; r != nil {
		for _, code := range slices.Sorted(maps.Keys(r.Quotes)) {
			rows = append(rows, []string{"1 " + r.Base, fmt.Sprintf("%.4f %s", r.Quotes[code], code)})
		}
	}
	if !s.FetchedAt.IsZero() {
		rows = append(rows, []string{"Fetched", s.FetchedAt.Format("2006-01-02 15:04:05 MST")})
	}
	rows = append(rows, []string{"Generation", strconv.FormatUint(s.Generation, 10)})
	for _, e := range s.Errors {
		rows = append(rows, []string{"Error", e})
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// Truncate shortens s to n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
