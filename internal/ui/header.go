package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shrew/internal/route"
)

// renderHeader renders the top bar: logo, where we are, and the API host.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("shrew", styles.Logo)}
	parts = append(parts, bg.Render(m.breadcrumb(), styles.Text.Bold(true)))

	switch m.route.Kind {
	case route.Spaces:
		parts = append(parts, bg.Render(fmt.Sprintf("%d loaded", m.spaces.loader.Len()), styles.MutedText))
	case route.Space:
		parts = append(parts, bg.Render(fmt.Sprintf("%d loaded", m.pieces.loader.Len()), styles.MutedText))
		if n := m.selection.Len(); n > 0 {
			parts = append(parts, bg.Render(fmt.Sprintf("%d selected", n), styles.AccentText))
		}
	case route.Compare:
		if !m.cmp.loading {
			parts = append(parts, bg.Render(m.layout().String(), styles.MutedText))
		}
	}

	if m.width >= 80 {
		if host := apiHost(m.apiURL); host != "" {
			parts = append(parts, bg.Render(truncateMiddle(host, 40), styles.FaintText))
		}
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, "  "))
}

// breadcrumb describes the current route for the header.
func (m Model) breadcrumb() string {
	switch m.route.Kind {
	case route.Spaces:
		return "Code Spaces"
	case route.Space:
		return m.spaceInfo.title()
	case route.Piece:
		if p := m.piece.piece; p != nil {
			return "Code Piece › " + truncate(p.Name, 40)
		}
		return "Code Piece"
	case route.Compare:
		return "Compare " + plural(len(m.route.IDs), "piece", "pieces")
	case route.SpaceCreate, route.SpaceEdit, route.PieceCreate, route.PieceEdit:
		if m.form != nil {
			return m.form.kind.title()
		}
	case route.ActivityLog:
		return "Activity"
	}
	return "Not Found"
}

func apiHost(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.route.Kind {
	case route.Spaces:
		commands = []cmd{
			{"enter", "Open"},
			{"n", "New"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"m", "More"},
			{"L", "Log"},
			{"?", "Help"},
		}
	case route.Space:
		commands = []cmd{
			{"Space", "Select"},
			{"enter", "Open"},
			{"n", "New piece"},
			{"e/d", "Edit/Delete"},
			{"E/D", "Space"},
		}
		if _, ok := m.selection.ComparisonTarget(); ok {
			commands = append([]cmd{{"c", fmt.Sprintf("Compare (%d)", m.selection.Len())}}, commands...)
		}
		commands = append(commands, cmd{"esc", "Back"}, cmd{"?", "Help"})
	case route.Piece:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"esc", "Space"},
			{"?", "Help"},
		}
	case route.Compare:
		commands = []cmd{
			{"tab", "Next"},
			{"j/k", "Scroll"},
			{"i", "Description"},
			{"esc", "Space"},
			{"?", "Help"},
		}
	case route.SpaceCreate, route.SpaceEdit, route.PieceCreate, route.PieceEdit:
		commands = []cmd{
			{"tab", "Next field"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}
	case route.ActivityLog:
		commands = []cmd{
			{"f", "Level " + m.activity.minLevel},
			{"r", "Reload"},
			{"j/k", "Scroll"},
			{"esc", "Back"},
		}
	default:
		commands = []cmd{
			{"H", "Home"},
			{"esc", "Back"},
			{"q", "Quit"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, sep))
}
