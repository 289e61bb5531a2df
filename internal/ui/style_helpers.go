package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders text segments on one background color. Lipgloss resets
// between styled segments otherwise leave gaps in the background.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type BgStyle struct {
	bg    lipgloss.Color
	space string // cached styled space
}

// NewBgStyle creates a new background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with style so that every character, spaces
// included, carries the background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Sep returns a styled separator string.
func (b BgStyle) Sep(sep string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(sep)
}

// Join joins parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}

// FillLine pads rendered content to width with the background color.
func (b BgStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}

// renderBox draws a rounded border with a title in the top edge.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	border := m.theme.Border
	if focused {
		border = m.theme.BorderFocus
	}
	bgColor := m.theme.Background
	if focused {
		bgColor = m.theme.FocusBg
	}
	width = max(width, 4)
	height = max(height, 2)

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(border))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Bold(true)

	inner := width - 2
	label := ""
	if title != "" {
		label = " " + truncate(title, max(inner-4, 1)) + " "
	}
	fill := max(inner-1-lipgloss.Width(label), 0)
	top := borderStyle.Render("╭─") + titleStyle.Render(label) + borderStyle.Render(strings.Repeat("─", fill)+"╮")
	if label == "" {
		top = borderStyle.Render("╭" + strings.Repeat("─", inner) + "╮")
	}

	body := lipgloss.NewStyle().
		Width(inner).
		Height(height - 2).
		MaxHeight(height - 2).
		Background(lipgloss.Color(bgColor)).
		Render(clampLines(content, height-2))

	side := borderStyle.Render("│")
	lines := strings.Split(body, "\n")
	var b strings.Builder
	b.WriteString(top)
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(side + line + side)
	}
	b.WriteString("\n")
	b.WriteString(borderStyle.Render("╰" + strings.Repeat("─", inner) + "╯"))
	return b.String()
}

// renderModal centers a bordered dialog over the screen.
func (m Model) renderModal(content string, width int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// clampLines keeps at most n lines of s.
func clampLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
