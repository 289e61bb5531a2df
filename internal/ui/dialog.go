package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shrew/internal/notify"
	"github.com/five82/shrew/internal/pager"
	"github.com/five82/shrew/internal/route"
)

type deleteKind int

const (
	deletePiece deleteKind = iota
	deleteSpace
)

func (k deleteKind) noun() string {
	if k == deleteSpace {
		return "CodeSpace"
	}
	return "code piece"
}

// deleteTarget names what a delete dialog removes. leave is set when the
// target is the item the current view shows, so success navigates away
// instead of refreshing.
type deleteTarget struct {
	kind    deleteKind
	id      int64
	name    string
	spaceID int64
	leave   bool
}

// deleteDialog asks for the password of a delete.
type deleteDialog struct {
	target deleteTarget
	input  textinput.Model
	busy   bool
	err    string
}

func (m *Model) openDeleteDialog(target deleteTarget) {
	ti := textinput.New()
	ti.Placeholder = "password"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 128
	ti.Width = 30
	ti.Focus()
	m.dialog = &deleteDialog{target: target, input: ti}
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialog
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if !d.busy {
			m.dialog = nil
		}
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if d.busy {
			return m, nil
		}
		password := d.input.Value()
		if strings.TrimSpace(password) == "" {
			return m, nil
		}
		d.busy = true
		d.err = ""
		return m, deleteCmd(m.ctx, m.api, m.seq, d.target, password)
	}
	if d.busy {
		return m, nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return m, cmd
}

func (m Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	t := msg.target
	if msg.err != nil {
		m.logger.Warn("delete failed", zap.String("kind", t.kind.noun()), zap.Int64("id", t.id), zap.Error(msg.err))
		if d := m.dialog; d != nil {
			d.busy = false
			d.err = msg.err.Error()
		}
		return m, nil
	}

	m.logger.Info("deleted", zap.String("kind", t.kind.noun()), zap.Int64("id", t.id))
	m.dialog = nil
	m.toasts.Notify(notify.LevelSuccess, fmt.Sprintf("Deleted %s '%s'", t.kind.noun(), t.name))

	if t.leave {
		if t.kind == deleteSpace || t.spaceID <= 0 {
			return m, m.navigate(route.Home())
		}
		return m, m.navigate(route.ToSpace(t.spaceID))
	}

	// Delete-driven refresh: start the list over and forget the selection.
	m.selection.Clear()
	switch m.route.Kind {
	case route.Space:
		m.pieces.reset(pager.PiecesKey(m.route.ID))
		return m, m.morePieces(triggerExplicit)
	case route.Spaces:
		m.spaces.reset(pager.SpacesKey())
		return m, m.moreSpaces(triggerExplicit)
	}
	return m, nil
}

// renderDeleteDialog renders the password prompt over the screen.
func (m Model) renderDeleteDialog() string {
	d := m.dialog
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.DangerText.Render("Delete " + d.target.kind.noun()))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(fmt.Sprintf("Enter the password to delete '%s'.", truncate(d.target.name, 30))))
	b.WriteString("\n\n")
	b.WriteString(d.input.View())
	b.WriteString("\n\n")

	switch {
	case d.busy:
		b.WriteString(m.spinner.View() + styles.MutedText.Render(" Deleting..."))
	case d.err != "":
		b.WriteString(styles.DangerText.Render(d.err))
	default:
		b.WriteString(styles.FaintText.Render("enter delete · esc cancel"))
	}
	return m.renderModal(b.String(), 48)
}
