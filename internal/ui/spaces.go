package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/pager"
	"github.com/five82/shrew/internal/route"
)

const (
	ownerColWidth = 16
	dateColWidth  = 16
	langColWidth  = 12
)

// spaceInfo is the header of the space detail view.
type spaceInfo struct {
	space   *codespace.Space
	loading bool
	err     error
}

func (s spaceInfo) title() string {
	if s.space != nil && strings.TrimSpace(s.space.Name) != "" {
		return s.space.Name
	}
	return "CodeSpace"
}

func (m *Model) handleSpaceLoaded(msg spaceLoadedMsg) {
	m.spaceInfo.loading = false
	if msg.err != nil {
		m.spaceInfo.err = msg.err
		return
	}
	m.spaceInfo.space = msg.space
}

// handleListMove applies a navigation key to lv. It reports whether the
// key was one.
func handleListMove[T any](keys keyMap, msg tea.KeyMsg, lv *listView[T], visible int) bool {
	switch {
	case key.Matches(msg, keys.Up):
		lv.move(-1, visible)
	case key.Matches(msg, keys.Down):
		lv.move(1, visible)
	case key.Matches(msg, keys.Top):
		lv.moveTo(0, visible)
	case key.Matches(msg, keys.Bottom):
		lv.moveTo(lv.loader.Len()-1, visible)
	case key.Matches(msg, keys.PageUp):
		lv.move(-visible, visible)
	case key.Matches(msg, keys.PageDown):
		lv.move(visible, visible)
	default:
		return false
	}
	return true
}

func (m Model) handleSpacesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.listRows()
	if handleListMove(m.keys, msg, m.spaces, rows) {
		return m, m.moreSpaces(triggerMove)
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		if s, ok := m.spaces.current(); ok {
			return m, m.navigate(route.ToSpace(s.ID))
		}
	case key.Matches(msg, m.keys.New):
		return m, m.navigate(route.Route{Kind: route.SpaceCreate})
	case key.Matches(msg, m.keys.Edit):
		if s, ok := m.spaces.current(); ok {
			return m, m.navigate(route.Route{Kind: route.SpaceEdit, ID: s.ID})
		}
	case key.Matches(msg, m.keys.Delete):
		if s, ok := m.spaces.current(); ok {
			m.openDeleteDialog(deleteTarget{kind: deleteSpace, id: s.ID, name: s.Name})
		}
	case key.Matches(msg, m.keys.LoadMore):
		return m, m.moreSpaces(triggerExplicit)
	case key.Matches(msg, m.keys.Reload):
		m.spaces.reset(pager.SpacesKey())
		return m, m.moreSpaces(triggerExplicit)
	}
	return m, nil
}

func (m Model) handleSpaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.listRows()
	if handleListMove(m.keys, msg, m.pieces, rows) {
		return m, m.morePieces(triggerMove)
	}

	spaceID := m.route.ID
	switch {
	case key.Matches(msg, m.keys.Toggle):
		if p, ok := m.pieces.current(); ok {
			m.selection.Toggle(p.ID)
		}
	case key.Matches(msg, m.keys.Compare):
		if _, ok := m.selection.ComparisonTarget(); ok {
			return m, m.navigate(route.ToCompare(m.selection.IDs()))
		}
	case key.Matches(msg, m.keys.ClearSelect):
		m.selection.Clear()
	case key.Matches(msg, m.keys.Open):
		if p, ok := m.pieces.current(); ok {
			return m, m.navigate(route.ToPiece(p.ID))
		}
	case key.Matches(msg, m.keys.New):
		return m, m.navigate(route.Route{Kind: route.PieceCreate, ID: spaceID})
	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.pieces.current(); ok {
			return m, m.navigate(route.Route{Kind: route.PieceEdit, ID: p.ID})
		}
	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.pieces.current(); ok {
			m.openDeleteDialog(deleteTarget{kind: deletePiece, id: p.ID, name: p.Name, spaceID: p.SpaceID})
		}
	case key.Matches(msg, m.keys.EditSpace):
		return m, m.navigate(route.Route{Kind: route.SpaceEdit, ID: spaceID})
	case key.Matches(msg, m.keys.DeleteSpace):
		m.openDeleteDialog(deleteTarget{kind: deleteSpace, id: spaceID, name: m.spaceInfo.title(), leave: true})
	case key.Matches(msg, m.keys.LoadMore):
		return m, m.morePieces(triggerExplicit)
	case key.Matches(msg, m.keys.Reload):
		m.selection.Clear()
		m.pieces.reset(pager.PiecesKey(spaceID))
		return m, m.morePieces(triggerExplicit)
	}
	return m, nil
}

// renderSpaces renders the spaces list.
func (m Model) renderSpaces() string {
	width := m.width
	inner := width - 2
	rows := m.listRows()
	styles := m.theme.Styles().WithBackground(m.theme.Background)

	nameWidth := max(inner-ownerColWidth-dateColWidth-4, 8)
	header := styles.FaintText.Bold(true).Render(
		" " + padRight("NAME", nameWidth) + " " + padRight("OWNER", ownerColWidth) + " " + padRight("UPDATED", dateColWidth))

	items := m.spaces.loader.Items()
	lines := []string{header}
	end := min(m.spaces.offset+rows, len(items))
	for i := m.spaces.offset; i < end; i++ {
		s := items[i]
		name := truncate(s.Name, nameWidth)
		if desc := firstLine(s.Description); desc != "" && lipgloss.Width(name)+3 < nameWidth {
			name += "  " + truncate(desc, nameWidth-lipgloss.Width(name)-2)
		}
		row := " " + padRight(name, nameWidth) + " " +
			padRight(truncate(s.OwnerName, ownerColWidth), ownerColWidth) + " " +
			padRight(formatDate(s.ParsedUpdatedAt()), dateColWidth)
		lines = append(lines, m.renderRow(row, inner, i == m.spaces.cursor, false))
	}
	if len(items) == 0 {
		lines = append(lines, m.emptyListLine(m.spaces.loader.State(), "No code spaces yet. Press n to create one."))
	}

	title := fmt.Sprintf("Code Spaces (%d)", len(items))
	body := strings.Join(lines, "\n")
	return m.renderBox(title, body+"\n"+m.listStatus(m.spaces.loader.State()), width, m.contentHeight(), true)
}

// renderSpace renders a space with its pieces and the compare selection.
func (m Model) renderSpace() string {
	width := m.width
	inner := width - 2
	rows := m.listRows()
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	// Summary line: description or owner, then the selection count.
	var summary []string
	switch {
	case m.spaceInfo.loading:
		summary = append(summary, bg.Render(m.spinner.View()+" loading space", styles.MutedText))
	case m.spaceInfo.space != nil:
		s := m.spaceInfo.space
		if s.OwnerName != "" {
			summary = append(summary, bg.Render("by "+s.OwnerName, styles.MutedText))
		}
		if desc := firstLine(s.Description); desc != "" {
			summary = append(summary, bg.Render(truncate(desc, inner/2), styles.Text))
		}
	}
	if n := m.selection.Len(); n > 0 {
		summary = append(summary, bg.Render(fmt.Sprintf("%s selected", plural(n, "piece", "pieces")), styles.AccentText.Bold(true))+
			bg.Space()+bg.Render("(c to compare)", styles.FaintText))
	}
	summaryLine := " " + bg.Join(summary, "  ")

	nameWidth := max(inner-langColWidth-ownerColWidth-dateColWidth-9, 8)
	header := styles.FaintText.Bold(true).Render(
		"     " + padRight("NAME", nameWidth) + " " + padRight("LANGUAGE", langColWidth) + " " +
			padRight("OWNER", ownerColWidth) + " " + padRight("UPDATED", dateColWidth))

	items := m.pieces.loader.Items()
	lines := []string{summaryLine, header}
	end := min(m.pieces.offset+rows, len(items))
	for i := m.pieces.offset; i < end; i++ {
		p := items[i]
		selected := m.selection.Contains(p.ID)
		mark := "[ ]"
		if selected {
			mark = "[x]"
		}
		row := " " + mark + " " + padRight(truncate(p.Name, nameWidth), nameWidth) + " " +
			padRight(truncate(languageLabel(p.Language), langColWidth), langColWidth) + " " +
			padRight(truncate(p.OwnerName, ownerColWidth), ownerColWidth) + " " +
			padRight(formatDate(p.ParsedUpdatedAt()), dateColWidth)
		lines = append(lines, m.renderRow(row, inner, i == m.pieces.cursor, selected))
	}
	if len(items) == 0 {
		lines = append(lines, m.emptyListLine(m.pieces.loader.State(), "No code pieces yet. Press n to add one."))
	}

	title := fmt.Sprintf("%s (%d)", m.spaceInfo.title(), len(items))
	body := strings.Join(lines, "\n")
	return m.renderBox(title, body+"\n"+m.listStatus(m.pieces.loader.State()), width, m.contentHeight(), true)
}

// renderRow renders one list row with cursor and selection highlighting.
func (m Model) renderRow(row string, width int, cursor, selected bool) string {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(width).
		MaxWidth(width)
	if selected {
		style = style.Foreground(lipgloss.Color(m.theme.Accent))
	}
	if cursor {
		style = style.
			Background(lipgloss.Color(m.theme.SelectionBg)).
			Foreground(lipgloss.Color(m.theme.SelectionText)).
			Bold(true)
	}
	return style.Render(row)
}

// emptyListLine explains an empty list.
func (m Model) emptyListLine(st pager.State, empty string) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	switch {
	case st.InFlight || (!st.Exhausted && st.Err == nil):
		return " " + styles.MutedText.Render("Loading...")
	case st.Err != nil:
		return " " + styles.DangerText.Render("Could not load the list.")
	default:
		return " " + styles.MutedText.Render(empty)
	}
}

// listStatus is the bottom line of a paged list.
func (m Model) listStatus(st pager.State) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	switch {
	case st.InFlight:
		return " " + bg.Render(m.spinner.View()+fmt.Sprintf(" loading page %d", st.Cursor+1), styles.MutedText)
	case st.Err != nil:
		return " " + bg.Render("Failed to load page", styles.DangerText) + bg.Spaces(2) +
			bg.Render("m", styles.AccentText) + bg.Render(":retry", styles.MutedText)
	case st.Exhausted:
		return " " + bg.Render("End of list", styles.FaintText)
	default:
		return " " + bg.Render("m", styles.AccentText) + bg.Render(":load more", styles.MutedText)
	}
}

// languageLabel shows a placeholder for pieces without a language.
func languageLabel(language string) string {
	if strings.TrimSpace(language) == "" {
		return codespace.LanguageOther
	}
	return language
}
