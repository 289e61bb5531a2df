package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/compare"
)

// narrowWidth is the terminal width below which compare falls back to tabs.
const narrowWidth = 100

// compareState holds the compare view.
type compareState struct {
	loading  bool
	err      error
	result   compare.Result
	code     [][]string // highlighted code lines per piece
	focus    int
	scroll   int
	showInfo bool
}

func (m *Model) handleCompareLoaded(msg compareLoadedMsg) {
	m.cmp.loading = false
	m.cmp.err = msg.err
	m.cmp.result = msg.result
	m.cmp.focus = 0
	m.cmp.scroll = 0
	m.refreshCompare()
}

// refreshCompare re-highlights the compared code.
func (m *Model) refreshCompare() {
	pieces := m.cmp.result.Pieces
	m.cmp.code = make([][]string, len(pieces))
	for i, p := range pieces {
		m.cmp.code[i] = strings.Split(numberLines(m.renderer.Code(p.Code, p.Language), m.theme.Styles().FaintText.Render), "\n")
	}
}

// layout picks the arrangement for the loaded pieces.
func (m Model) layout() compare.Layout {
	return compare.LayoutFor(len(m.cmp.result.Pieces), m.width < narrowWidth)
}

func (m Model) focusedPiece() (codespace.Piece, bool) {
	pieces := m.cmp.result.Pieces
	if m.cmp.focus < 0 || m.cmp.focus >= len(pieces) {
		return codespace.Piece{}, false
	}
	return pieces[m.cmp.focus], true
}

func (m Model) handleCompareKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.cmp.result.Pieces)
	switch {
	case key.Matches(msg, m.keys.NextTab):
		if n > 0 {
			m.cmp.focus = (m.cmp.focus + 1) % n
			if m.layout() == compare.LayoutTabs {
				m.cmp.scroll = 0
			}
		}
	case key.Matches(msg, m.keys.PrevTab):
		if n > 0 {
			m.cmp.focus = (m.cmp.focus - 1 + n) % n
			if m.layout() == compare.LayoutTabs {
				m.cmp.scroll = 0
			}
		}
	case key.Matches(msg, m.keys.Describe):
		if n > 0 {
			m.cmp.showInfo = true
		}
	case key.Matches(msg, m.keys.Up):
		m.cmp.scroll = max(m.cmp.scroll-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cmp.scroll = min(m.cmp.scroll+1, m.maxCompareScroll())
	case key.Matches(msg, m.keys.PageUp):
		m.cmp.scroll = max(m.cmp.scroll-m.compareBodyHeight(), 0)
	case key.Matches(msg, m.keys.PageDown):
		m.cmp.scroll = min(m.cmp.scroll+m.compareBodyHeight(), m.maxCompareScroll())
	case key.Matches(msg, m.keys.Top):
		m.cmp.scroll = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cmp.scroll = m.maxCompareScroll()
	case key.Matches(msg, m.keys.Reload):
		return m, m.enter(m.route)
	}
	return m, nil
}

// compareRows is the number of box rows the layout stacks.
func (m Model) compareRows() int {
	layout := m.layout()
	if layout == compare.LayoutGrid {
		return 2
	}
	return 1
}

// compareBodyHeight is the number of code lines visible per box.
func (m Model) compareBodyHeight() int {
	h := m.contentHeight()
	if m.layout() == compare.LayoutTabs {
		h-- // tab bar
	}
	return max(h/m.compareRows()-3, 1) // borders and the meta line
}

func (m Model) maxCompareScroll() int {
	longest := 0
	if m.layout() == compare.LayoutTabs {
		if m.cmp.focus < len(m.cmp.code) {
			longest = len(m.cmp.code[m.cmp.focus])
		}
	} else {
		for _, lines := range m.cmp.code {
			longest = max(longest, len(lines))
		}
	}
	return max(longest-m.compareBodyHeight(), 0)
}

// renderCompare renders the compared pieces in the chosen layout.
func (m Model) renderCompare() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	height := m.contentHeight()
	pieces := m.cmp.result.Pieces

	switch {
	case m.cmp.loading:
		body := " " + m.spinner.View() + styles.MutedText.Render(fmt.Sprintf(" Loading %s...", plural(len(m.route.IDs), "code piece", "code pieces")))
		return m.renderBox("Compare", body, m.width, height, true)
	case len(pieces) == 0:
		body := " " + styles.MutedText.Render("Nothing to compare.")
		if len(m.cmp.result.Failed) > 0 {
			body += "\n " + styles.DangerText.Render("Failed: "+formatIDs(m.cmp.result.Failed))
		}
		return m.renderBox("Compare", body, m.width, height, true)
	}

	layout := m.layout()
	if layout == compare.LayoutTabs {
		tabs := m.renderTabBar()
		box := m.renderComparePiece(m.cmp.focus, m.width, height-1, true)
		return tabs + "\n" + box
	}

	cols := layout.Columns()
	rows := m.compareRows()
	boxHeight := height / rows
	var rendered []string
	for r := 0; r < rows; r++ {
		var row []string
		used := 0
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(pieces) {
				break
			}
			w := m.width / cols
			if c == cols-1 {
				w = m.width - used
			}
			used += w
			row = append(row, m.renderComparePiece(i, w, boxHeight, i == m.cmp.focus))
		}
		if len(row) > 0 {
			rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// renderTabBar renders one tab per piece with the focused one highlighted.
func (m Model) renderTabBar() string {
	bg := NewBgStyle(m.theme.Surface)
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	var tabs []string
	for i, p := range m.cmp.result.Pieces {
		label := fmt.Sprintf(" %d %s ", i+1, truncate(p.Name, 20))
		if i == m.cmp.focus {
			tabs = append(tabs, m.theme.Styles().Selected.Bold(true).Render(label))
			continue
		}
		tabs = append(tabs, bg.Render(label, styles.MutedText))
	}
	return bg.FillLine(strings.Join(tabs, bg.Space()), m.width)
}

// renderComparePiece renders piece i as a bordered box.
func (m Model) renderComparePiece(i, width, height int, focused bool) string {
	p := m.cmp.result.Pieces[i]
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	if focused {
		styles = m.theme.Styles().WithBackground(m.theme.FocusBg)
	}

	meta := styles.LanguageStyle(p.Language).Render(languageLabel(p.Language))
	if p.OwnerName != "" {
		meta += styles.MutedText.Render("  by " + truncate(p.OwnerName, 20))
	}
	if strings.TrimSpace(p.Description) != "" {
		meta += styles.FaintText.Render("  i:description")
	}

	bodyHeight := max(height-3, 1)
	var lines []string
	if i < len(m.cmp.code) {
		lines = m.cmp.code[i]
	}
	start := min(m.cmp.scroll, max(len(lines)-1, 0))
	end := min(start+bodyHeight, len(lines))
	body := meta
	if start < end {
		body += "\n" + strings.Join(lines[start:end], "\n")
	}

	title := fmt.Sprintf("#%d %s", p.ID, p.Name)
	return m.renderBox(title, body, width, height, focused)
}

// renderDescription shows the focused piece's description over the screen.
func (m Model) renderDescription() string {
	styles := m.theme.Styles()
	p, ok := m.focusedPiece()
	if !ok {
		return m.renderMain()
	}
	width := min(max(m.width-10, 30), 80)
	desc := m.renderer.Markdown(p.Description, width-4)
	if desc == "" {
		desc = styles.MutedText.Render("No description.")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.Name))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")
	b.WriteString(desc)
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))
	return m.renderModal(b.String(), width)
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}
