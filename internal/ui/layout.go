package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shrew/internal/notify"
	"github.com/five82/shrew/internal/route"
)

const toastWidth = 44

// renderMain renders header, the active view, toasts and the command bar.
func (m Model) renderMain() string {
	content := m.renderContent()
	content = m.overlayToasts(content)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderCommandBar(),
	)
}

func (m Model) renderContent() string {
	switch m.route.Kind {
	case route.Spaces:
		return m.renderSpaces()
	case route.Space:
		return m.renderSpace()
	case route.Piece:
		return m.renderPiece()
	case route.Compare:
		return m.renderCompare()
	case route.SpaceCreate, route.SpaceEdit, route.PieceCreate, route.PieceEdit:
		if m.form != nil {
			return m.renderForm()
		}
	case route.ActivityLog:
		return m.renderActivity()
	}
	return m.renderNotFound()
}

// renderNotFound is shown for routes that match nothing.
func (m Model) renderNotFound() string {
	styles := m.theme.Styles()
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styles.DangerText.Render("404"),
		"",
		styles.Text.Render("Nothing lives at "+m.route.String()),
		styles.MutedText.Render("Press H to go to the code spaces."),
	)
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, msg)
}

// overlayToasts draws the active toasts over the bottom right corner of
// content.
func (m Model) overlayToasts(content string) string {
	toasts := m.toasts.Active()
	if len(toasts) == 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	width := min(toastWidth, m.width)

	var rendered []string
	for _, t := range toasts {
		rendered = append(rendered, m.renderToast(t, width))
	}

	// Newest at the bottom, just above the command bar.
	start := max(len(lines)-len(rendered)-1, 0)
	for i, toast := range rendered {
		idx := start + i
		if idx >= len(lines) {
			break
		}
		lines[idx] = placeRight(toast, m.width)
	}
	return strings.Join(lines, "\n")
}

func placeRight(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, s)
}

func (m Model) renderToast(t notify.Toast, width int) string {
	color := m.theme.Info
	icon := "•"
	switch t.Level {
	case notify.LevelSuccess:
		color, icon = m.theme.Success, "✓"
	case notify.LevelError:
		color, icon = m.theme.Danger, "✗"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Foreground(lipgloss.Color(color)).
		Width(width).
		MaxWidth(width).
		Padding(0, 1).
		Render(icon + " " + truncate(t.Message, width-4))
}
