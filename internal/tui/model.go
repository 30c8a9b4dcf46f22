// Package tui is the interactive terminal browser behind "mariner browse".
// It drives a surface.Carousel the same way the HTML pages do: category
// tabs with counters, a live search box and a paged list of cards.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harborline/mariner/pkg/assets"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/surface"
)

// Model is the bubbletea model of the browser.
type Model struct {
	title     string
	carousel  *surface.Carousel
	assets    assets.Resolver
	search    textinput.Model
	searching bool
	keys      keyMap
	help      help.Model
	styles    styles
	width     int
	err       error
}

// New creates a browser over carousel. title heads the screen.
func New(title string, carousel *surface.Carousel, resolver assets.Resolver) Model {
	ti := textinput.New()
	ti.Placeholder = "Search titles and descriptions"
	ti.Prompt = "/ "

	return Model{
		title:    title,
		carousel: carousel,
		assets:   resolver,
		search:   ti,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   defaultStyles(),
		width:    80,
	}
}

// Run starts the browser and blocks until the user quits or ctx ends.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.err = m.carousel.SetQuery("")
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.err = m.carousel.SetQuery(v)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.err = m.shiftTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.err = m.shiftTab(-1)
	case key.Matches(msg, m.keys.NextPage):
		m.carousel.Next()
	case key.Matches(msg, m.keys.PrevPage):
		m.carousel.Previous()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Reset):
		m.search.SetValue("")
		m.err = m.carousel.Reset()
	}
	return m, nil
}

// shiftTab moves the selected category by delta, wrapping around.
func (m Model) shiftTab(delta int) error {
	v := m.carousel.View()
	active := 0
	for i, t := range v.Tabs {
		if t.Active {
			active = i
			break
		}
	}
	n := len(v.Tabs)
	next := ((active+delta)%n + n) % n
	return m.carousel.SelectCategory(v.Tabs[next].Category)
}

// View implements tea.Model.
func (m Model) View() string {
	v := m.carousel.View()
	s := m.styles

	var b strings.Builder
	b.WriteString(s.title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.tabsView(v.Tabs))
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString(s.muted.Render(fmt.Sprintf("Showing %d of %d", v.Summary.Showing, v.Summary.Total)))
	b.WriteString("\n\n")

	if v.Summary.Empty {
		msg := "No entries match this category."
		if v.State.Query != "" {
			msg = fmt.Sprintf("No entries match %q.", v.State.Query)
		}
		b.WriteString(s.empty.Render(msg + "\nPress r to show everything."))
		b.WriteString("\n")
	} else {
		for _, r := range v.Records {
			b.WriteString(m.cardView(r, v.Tabs))
			b.WriteString("\n")
		}
		b.WriteString(m.pagerView(v))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(s.err.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) tabsView(tabs []surface.Tab) string {
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%s %d", t.Label, t.Count)
		if t.Active {
			parts[i] = m.styles.activeTab.Background(lipgloss.Color(t.Style.Accent)).Render(label)
		} else {
			parts[i] = m.styles.tab.Render(label)
		}
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, " "))
}

func (m Model) cardView(r catalogs.Record, tabs []surface.Tab) string {
	var style catalogs.Style
	for _, t := range tabs {
		if t.Category == r.Category {
			style = t.Style
			break
		}
	}

	badge := m.styles.badge.Background(lipgloss.Color(style.Accent)).Render(style.Badge)
	lines := []string{badge + " " + m.styles.cardTitle.Render(r.Title)}
	if r.Description != "" {
		lines = append(lines, truncate(r.Description, max(m.width-6, 20)))
	}
	if href := m.assets.Resolve(r.Asset); href != "" {
		lines = append(lines, m.styles.muted.Render(href))
	}
	return m.styles.card.BorderForeground(lipgloss.Color(style.Accent)).Render(strings.Join(lines, "\n"))
}

func (m Model) pagerView(v surface.View) string {
	dots := make([]string, v.PageCount)
	for i := range dots {
		dots[i] = "○"
		if i == v.PageIndex {
			dots[i] = "●"
		}
	}
	return m.styles.muted.Render(fmt.Sprintf("%s  page %d of %d", strings.Join(dots, " "), v.PageIndex+1, v.PageCount))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
