package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/logging"
	"github.com/harborline/mariner/pkg/surface"
)

func newTestModel(t *testing.T, pageSize int) (Model, *surface.Carousel) {
	t.Helper()
	client, err := mariner.New(mariner.WithLogger(logging.NewNopLogger()), mariner.WithRefreshDisabled())
	require.NoError(t, err)
	c, err := surface.NewCarousel(client.Forms(), pageSize)
	require.NoError(t, err)
	return New("Forms", c, client.Assets()), c
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Tabs(t *testing.T) {
	m, c := newTestModel(t, 4)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	first := c.View().Tabs[1].Category
	assert.Equal(t, first, c.View().State.Category)

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	tabs := c.View().Tabs
	assert.Equal(t, tabs[len(tabs)-1].Category, c.View().State.Category, "shift+tab wraps to the last tab")
	assert.NoError(t, m.err)
}

func TestModel_Paging(t *testing.T) {
	m, c := newTestModel(t, 4)

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 4, c.View().Offset)

	m = press(m, runes("h"))
	assert.Equal(t, 0, c.View().Offset)

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, c.View().Offset, "previous on the first page stays put")
	assert.Contains(t, m.View(), "page 1 of 5")
}

func TestModel_Search(t *testing.T) {
	m, c := newTestModel(t, 4)

	m = press(m, runes("/"))
	require.True(t, m.searching)

	m = press(m, runes("l"), runes("e"), runes("a"), runes("v"), runes("e"))
	assert.Equal(t, "leave", c.View().State.Query)
	assert.Equal(t, 4, c.View().Summary.Showing)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "leave", c.View().State.Query, "enter keeps the query")

	// Keys are commands again once the search box is closed.
	m = press(m, runes("r"))
	assert.True(t, c.View().State.IsDefault())
	assert.Empty(t, m.search.Value())
}

func TestModel_SearchKeepsLongQuery(t *testing.T) {
	m, c := newTestModel(t, 4)

	long := strings.Repeat("harbour ", 12) + "  "
	m = press(m, runes("/"), runes(long))
	assert.Equal(t, long, m.search.Value())
	assert.Equal(t, long, c.View().State.Query, "the query is passed on untrimmed")
	assert.True(t, c.View().Summary.Empty)
}

func TestModel_SearchEscClears(t *testing.T) {
	m, c := newTestModel(t, 4)

	m = press(m, runes("/"), runes("z"), runes("z"))
	assert.True(t, c.View().Summary.Empty)
	assert.Contains(t, m.View(), "No entries match")

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Equal(t, 18, c.View().Summary.Showing)
}

func TestModel_View(t *testing.T) {
	m, c := newTestModel(t, 3)
	require.NoError(t, c.SelectCategory(catalogs.Category("medical")))

	m = press(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	out := m.View()
	assert.Contains(t, out, "Forms")
	assert.Contains(t, out, "Showing 3 of 18")
	assert.Contains(t, out, "/static/forms/")
	for _, r := range c.View().Records {
		assert.Contains(t, out, r.Title)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, 4)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
