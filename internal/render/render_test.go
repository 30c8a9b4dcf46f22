package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/pkg/assets"
	"github.com/harborline/mariner/pkg/conditions"
	"github.com/harborline/mariner/pkg/filter"
	"github.com/harborline/mariner/pkg/logging"
)

func html(t *testing.T, node g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, node))
	return buf.String()
}

func testClient(t *testing.T) mariner.Client {
	t.Helper()
	c, err := mariner.New(mariner.WithLogger(logging.NewNopLogger()), mariner.WithRefreshDisabled())
	require.NoError(t, err)
	return c
}

func TestCatalogPage(t *testing.T) {
	c := testClient(t)
	ctrl := filter.NewController(c.Forms())
	require.NoError(t, ctrl.Apply(filter.State{Category: "medical", Query: "physical"}))

	out := html(t, CatalogPage(NewCatalogData("Forms directory", "/forms", ctrl, assets.NewResolver(""))))

	assert.Contains(t, out, "<h1>Forms directory</h1>")
	assert.Contains(t, out, `class="tab active"`)
	assert.Contains(t, out, `name="category" value="medical"`)
	assert.Contains(t, out, "/static/forms/")
	// Category links keep the query.
	assert.Contains(t, out, `href="/forms?category=leave&amp;q=physical"`)
}

func TestCatalogPage_NoMatch(t *testing.T) {
	c := testClient(t)
	ctrl := filter.NewController(c.Ships())
	ctrl.SetQuery("zeppelin")

	out := html(t, CatalogPage(NewCatalogData("Ship classes", "/ships", ctrl, assets.NewResolver(""))))

	assert.Contains(t, out, "Showing 0 of 8")
	assert.Contains(t, out, "No entries match “zeppelin”.")
	assert.Contains(t, out, `role="status"`)
	assert.NotContains(t, out, `class="cards"`)
}

func TestPortPage(t *testing.T) {
	c := testClient(t)
	p, err := c.Port("rotterdam")
	require.NoError(t, err)
	carousel, err := c.Carousel(p.Slug, 3)
	require.NoError(t, err)
	require.NoError(t, carousel.Focus("zuidplein"))
	m, err := c.Markers(p.Slug)
	require.NoError(t, err)

	snap := &conditions.Snapshot{
		Port:       p.Slug,
		Weather:    &conditions.Weather{TemperatureC: 12, WindSpeedKmh: 20, Summary: "Overcast"},
		Rates:      &conditions.Rates{Base: "USD", Quotes: map[string]float64{"EUR": 0.9213}},
		LocalTime:  time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		Generation: 4,
	}
	out := html(t, PortPage(PortData{
		Port:       p,
		View:       carousel.View(),
		Markers:    m.Markers(),
		Conditions: snap,
		Assets:     c.Assets(),
	}))

	assert.Contains(t, out, "<h1>Rotterdam")
	assert.Contains(t, out, "Overcast, 12°C, wind 20 km/h")
	assert.Contains(t, out, "1 USD = 0.9213 EUR")
	assert.Contains(t, out, `data-generation="4"`)
	assert.Contains(t, out, `class="focused"`)
	assert.Contains(t, out, "Page 1 of 1")
	assert.Contains(t, out, `href="/ports/rotterdam?focus=erasmus-mc"`)
}

func TestConditionsPanel_Empty(t *testing.T) {
	assert.Contains(t, html(t, conditionsPanel(nil)), "not available yet")
	assert.Contains(t, html(t, conditionsPanel(&conditions.Snapshot{Port: "houston"})), "not available yet")
}

func TestPager(t *testing.T) {
	c := testClient(t)
	carousel, err := c.Carousel("rotterdam", 3)
	require.NoError(t, err)
	carousel.Next()

	out := html(t, pager("/ports/rotterdam", carousel.View()))
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, `href="/ports/rotterdam?offset=0"`)
	assert.Contains(t, out, `href="/ports/rotterdam?offset=6"`)
	assert.Contains(t, out, `class="dot current"`)
}

func TestLink(t *testing.T) {
	assert.Equal(t, "/forms", link("/forms", "category", "", "q", ""))
	assert.Equal(t, "/forms?q=sea+bag", link("/forms", "q", "sea bag"))
}

func TestPortsIndex(t *testing.T) {
	out := html(t, PortsIndex(testClient(t).Ports()))
	assert.Contains(t, out, `href="/ports/singapore"`)
	assert.Contains(t, out, "8 spots")
}
