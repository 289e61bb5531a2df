package ui

import (
	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/compare"
	"github.com/five82/shrew/internal/logtail"
	"github.com/five82/shrew/internal/pager"
	"github.com/five82/shrew/internal/route"
)

// Every message that answers a request tied to a view carries the view's
// seq. Update drops messages whose seq is older than the current view.
// Page messages rely on the loader's ticket generation instead.

type spacesPageMsg struct {
	ticket pager.Ticket
	items  []codespace.Space
	err    error
}

type piecesPageMsg struct {
	ticket pager.Ticket
	items  []codespace.PieceSummary
	err    error
}

type spaceLoadedMsg struct {
	seq   uint64
	space *codespace.Space
	err   error
}

type pieceLoadedMsg struct {
	seq   uint64
	piece *codespace.Piece
	err   error
}

type compareLoadedMsg struct {
	seq    uint64
	result compare.Result
	err    error
}

// prefillMsg delivers the current values for an edit form.
type prefillMsg struct {
	seq   uint64
	space *codespace.Space
	piece *codespace.Piece
	err   error
}

type submitDoneMsg struct {
	seq  uint64
	kind formKind
	next route.Route
	err  error
}

type deleteDoneMsg struct {
	seq    uint64
	target deleteTarget
	err    error
}

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

// activityChangedMsg fires when the log file is written while the activity
// view is open.
type activityChangedMsg struct {
	seq uint64
}

type prefsSavedMsg struct {
	err error
}

type toastTickMsg struct{}
