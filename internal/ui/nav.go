package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/compare"
	"github.com/five82/shrew/internal/pager"
	"github.com/five82/shrew/internal/route"
)

// navigate records the current route and shows r.
func (m *Model) navigate(r route.Route) tea.Cmd {
	if !m.route.Equal(r) {
		m.history = append(m.history, m.route)
		if len(m.history) > maxHistory {
			m.history = append([]route.Route(nil), m.history[len(m.history)-maxHistory:]...)
		}
	}
	return m.enter(r)
}

// back leaves the current view. Detail views return to their parent; the
// rest fall back to history.
func (m *Model) back() tea.Cmd {
	switch m.route.Kind {
	case route.Spaces:
		return nil
	case route.Space, route.SpaceCreate, route.SpaceEdit:
		return m.navigate(route.Home())
	case route.PieceCreate:
		return m.navigate(route.ToSpace(m.route.ID))
	case route.PieceEdit:
		return m.navigate(route.ToPiece(m.route.ID))
	case route.Piece:
		if p := m.piece.piece; p != nil && p.SpaceID > 0 {
			return m.navigate(route.ToSpace(p.SpaceID))
		}
	case route.Compare:
		if len(m.cmp.result.Pieces) > 0 && m.cmp.result.Pieces[0].SpaceID > 0 {
			return m.navigate(route.ToSpace(m.cmp.result.Pieces[0].SpaceID))
		}
	}
	return m.popHistory()
}

func (m *Model) popHistory() tea.Cmd {
	if len(m.history) == 0 {
		return m.enter(route.Home())
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.enter(prev)
}

// enter makes r the current route and starts whatever it needs to load.
// Bumping seq invalidates responses still in flight for the previous view;
// resetting the loaders does the same for page requests.
func (m *Model) enter(r route.Route) tea.Cmd {
	m.seq++
	m.route = r
	m.form = nil
	m.dialog = nil
	m.showHelp = false
	m.cmp = compareState{}
	m.piece = pieceState{viewport: m.piece.viewport}
	m.selection.Clear()
	m.activity.stopWatch()
	if r.Kind != route.Spaces {
		m.spaces.reset(pager.SpacesKey())
	}
	if r.Kind != route.Space {
		m.pieces.reset(pager.PiecesKey(0))
	}
	m.logger.Debug("navigate", zap.String("route", r.String()))

	switch r.Kind {
	case route.Spaces:
		m.spaces.reset(pager.SpacesKey())
		return m.moreSpaces(triggerExplicit)

	case route.Space:
		m.pieces.reset(pager.PiecesKey(r.ID))
		m.spaceInfo = spaceInfo{loading: true}
		return tea.Batch(m.fetchSpaceCmd(r.ID), m.morePieces(triggerExplicit))

	case route.Piece:
		m.piece.loading = true
		m.resizePiece()
		return m.fetchPieceCmd(r.ID)

	case route.Compare:
		m.cmp.loading = true
		return m.compareCmd(r.IDs)

	case route.SpaceCreate:
		m.form = newSpaceForm(formSpaceCreate, 0, m.prefs.OwnerName)
		m.form.setWidth(m.contentWidth())

	case route.SpaceEdit:
		m.form = newSpaceForm(formSpaceEdit, r.ID, "")
		m.form.setWidth(m.contentWidth())
		m.form.loading = true
		return m.prefillSpaceCmd(r.ID)

	case route.PieceCreate:
		m.form = newPieceForm(formPieceCreate, 0, r.ID, m.prefs.OwnerName)
		m.form.setWidth(m.contentWidth())

	case route.PieceEdit:
		m.form = newPieceForm(formPieceEdit, r.ID, 0, "")
		m.form.setWidth(m.contentWidth())
		m.form.loading = true
		return m.prefillPieceCmd(r.ID)

	case route.ActivityLog:
		m.resizeActivity()
		if err := m.activity.startWatch(m.cfg.LogFile); err != nil {
			m.logger.Warn("watch log failed", zap.String("path", m.cfg.LogFile), zap.Error(err))
			return m.readActivityCmd()
		}
		return tea.Batch(m.readActivityCmd(), m.waitActivityCmd())
	}
	return nil
}

// Commands

func (m Model) fetchSpaceCmd(id int64) tea.Cmd {
	ctx, api, seq := m.ctx, m.api, m.seq
	return func() tea.Msg {
		space, err := api.GetSpace(ctx, id)
		return spaceLoadedMsg{seq: seq, space: space, err: err}
	}
}

func (m Model) fetchPieceCmd(id int64) tea.Cmd {
	ctx, api, seq := m.ctx, m.api, m.seq
	return func() tea.Msg {
		piece, err := api.GetPiece(ctx, id)
		return pieceLoadedMsg{seq: seq, piece: piece, err: err}
	}
}

func (m Model) prefillSpaceCmd(id int64) tea.Cmd {
	ctx, api, seq := m.ctx, m.api, m.seq
	return func() tea.Msg {
		space, err := api.GetSpace(ctx, id)
		return prefillMsg{seq: seq, space: space, err: err}
	}
}

func (m Model) prefillPieceCmd(id int64) tea.Cmd {
	ctx, api, seq := m.ctx, m.api, m.seq
	return func() tea.Msg {
		piece, err := api.GetPiece(ctx, id)
		return prefillMsg{seq: seq, piece: piece, err: err}
	}
}

func (m Model) compareCmd(ids []int64) tea.Cmd {
	loader := compare.Loader{Fetcher: m.api, Notifier: m.toasts, Limit: m.cfg.CompareConcurrency}
	ctx, seq := m.ctx, m.seq
	return func() tea.Msg {
		result, err := loader.Load(ctx, ids)
		return compareLoadedMsg{seq: seq, result: result, err: err}
	}
}

// deleteCmd removes target with password.
func deleteCmd(ctx context.Context, api codespace.API, seq uint64, target deleteTarget, password string) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch target.kind {
		case deleteSpace:
			err = api.DeleteSpace(ctx, target.id, password)
		default:
			err = api.DeletePiece(ctx, target.id, password)
		}
		return deleteDoneMsg{seq: seq, target: target, err: err}
	}
}
