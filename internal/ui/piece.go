package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/notify"
	"github.com/five82/shrew/internal/route"
)

// pieceState holds the piece detail view.
type pieceState struct {
	piece    *codespace.Piece
	loading  bool
	err      error
	viewport viewport.Model
}

func (m *Model) handlePieceLoaded(msg pieceLoadedMsg) {
	m.piece.loading = false
	if msg.err != nil {
		m.piece.err = msg.err
		m.toasts.Notify(notify.LevelError, "Failed to load code piece")
		return
	}
	m.piece.piece = msg.piece
	m.refreshPiece()
}

// resizePiece fits the detail viewport to the screen.
func (m *Model) resizePiece() {
	w := max(m.width-4, 10)
	h := max(m.contentHeight()-2, 1)
	if m.piece.viewport.Width == 0 && m.piece.viewport.Height == 0 {
		m.piece.viewport = viewport.New(w, h)
	} else {
		m.piece.viewport.Width = w
		m.piece.viewport.Height = h
	}
	m.refreshPiece()
}

// refreshPiece re-renders the detail content, e.g. after a theme change.
func (m *Model) refreshPiece() {
	if m.piece.piece == nil {
		return
	}
	m.piece.viewport.SetContent(m.pieceContent(*m.piece.piece, m.piece.viewport.Width))
}

// pieceContent renders the metadata, description and highlighted code.
func (m Model) pieceContent(p codespace.Piece, width int) string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(p.Name))
	b.WriteString("  ")
	b.WriteString(styles.LanguageStyle(p.Language).Render(languageLabel(p.Language)))
	b.WriteString("\n")

	meta := []string{}
	if p.OwnerName != "" {
		meta = append(meta, "by "+p.OwnerName)
	}
	if t := p.ParsedCreatedAt(); !t.IsZero() {
		meta = append(meta, "created "+formatDate(t))
	}
	if t := p.ParsedUpdatedAt(); !t.IsZero() {
		meta = append(meta, "updated "+formatDate(t))
	}
	if len(meta) > 0 {
		b.WriteString(styles.MutedText.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}

	if desc := m.renderer.Markdown(p.Description, width); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(width, 1))))
	b.WriteString("\n")
	b.WriteString(numberLines(m.renderer.Code(p.Code, p.Language), styles.FaintText.Render))
	return b.String()
}

// numberLines prefixes each line with a right-aligned line number.
func numberLines(code string, style func(...string) string) string {
	lines := strings.Split(code, "\n")
	width := len(strconv.Itoa(len(lines)))
	for i, line := range lines {
		n := strconv.Itoa(i + 1)
		lines[i] = style(strings.Repeat(" ", width-len(n))+n+" ") + line
	}
	return strings.Join(lines, "\n")
}

func (m Model) handlePieceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.piece.piece
	switch {
	case key.Matches(msg, m.keys.Edit):
		if p != nil {
			return m, m.navigate(route.Route{Kind: route.PieceEdit, ID: p.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if p != nil {
			m.openDeleteDialog(deleteTarget{kind: deletePiece, id: p.ID, name: p.Name, spaceID: p.SpaceID, leave: true})
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.enter(m.route)
	case key.Matches(msg, m.keys.Top):
		m.piece.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.piece.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.piece.viewport, cmd = m.piece.viewport.Update(msg)
	return m, cmd
}

// renderPiece renders the piece detail view.
func (m Model) renderPiece() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	title := "Code Piece"
	var body string
	switch {
	case m.piece.loading:
		body = " " + m.spinner.View() + styles.MutedText.Render(" Loading code piece...")
	case m.piece.err != nil:
		body = " " + styles.DangerText.Render("Failed to load code piece") + "\n " +
			styles.MutedText.Render(m.piece.err.Error())
	case m.piece.piece != nil:
		title = m.piece.piece.Name
		body = m.piece.viewport.View()
	}
	return m.renderBox(title, body, m.width, m.contentHeight(), true)
}
