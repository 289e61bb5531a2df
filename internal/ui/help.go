package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"pgup/pgdn", "Page up/down"},
				{"enter", "Open"},
				{"esc", "Back"},
				{"H", "All spaces"},
			},
		},
		{
			title: "Lists",
			items: []helpItem{
				{"n", "New space or piece"},
				{"e/d", "Edit/delete highlighted"},
				{"m", "Load more"},
				{"r", "Reload"},
			},
		},
		{
			title: "Space",
			items: []helpItem{
				{"Space", "Select for compare"},
				{"c", "Compare selected"},
				{"x", "Clear selection"},
				{"E/D", "Edit/delete this space"},
			},
		},
		{
			title: "Compare",
			items: []helpItem{
				{"tab", "Next piece"},
				{"shift+tab", "Previous piece"},
				{"i", "Show description"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"L", "Activity log"},
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	return m.renderModal(b.String(), 40)
}
