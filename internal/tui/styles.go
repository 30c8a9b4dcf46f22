package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	badge     lipgloss.Style
	card      lipgloss.Style
	cardTitle lipgloss.Style
	muted     lipgloss.Style
	empty     lipgloss.Style
	err       lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0F2A44")).
			Padding(0, 1),
		tab: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#64748B")),
		activeTab: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")),
		badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
		card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1),
		cardTitle: lipgloss.NewStyle().Bold(true),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")),
		empty: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FB923C")).
			Padding(0, 1),
		err: lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
	}
}
