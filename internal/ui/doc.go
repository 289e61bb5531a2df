// Package ui provides the Bubble Tea terminal interface for shrew.
//
// # Architecture Overview
//
// Model is a value type; Update returns a new Model and a tea.Cmd. Every
// network call runs inside a command and comes back as a message, so all
// state changes happen on the Bubble Tea event loop. The list loaders and
// the selection are pointers shared by successive Model values.
//
// # Package Structure
//
//   - model.go: Options, New, Init, Update, View and Run
//   - nav.go: routes, history and what each view loads on entry
//   - list.go: cursor/offset bookkeeping and the prefetch policy
//   - spaces.go: spaces list and space detail with compare selection
//   - piece.go: piece detail (markdown description, highlighted code)
//   - compare_view.go: side-by-side, grid and tabbed comparison
//   - forms.go: create and edit forms for spaces and pieces
//   - dialog.go: password prompt for deletes
//   - activity.go: tail of shrew's own log
//   - header.go, layout.go, help.go: chrome, toasts and the help overlay
//   - theme.go, style_helpers.go: themes and background-safe rendering
//
// # Paging
//
// A list asks for its next page when it does not fill the screen, when the
// cursor comes within the prefetch threshold of its end, or when the user
// presses m. pager.Loader allows one request at a time; page messages carry
// a ticket so responses for a list that was reset since are dropped:
//
//	Update ── Begin ──▶ cmd: Fetch ──▶ spacesPageMsg ──▶ Finish ──▶ wantMore?
//
// Other responses carry the seq of the view that asked for them. Leaving a
// view bumps seq.
//
// # Key Bindings
//
//   - j/k, g/G, pgup/pgdown: move
//   - enter: open, esc: back
//   - n/e/d: new, edit, delete the highlighted item
//   - Space: select a piece for comparison, c: compare, x: clear
//   - E/D: edit or delete the space being viewed
//   - m: load more, r: reload
//   - tab/shift+tab, i: compare tabs and description
//   - L: activity log, T: cycle theme, ?: help, q or ctrl+c: quit
//
// Forms take every key except esc, tab, shift+tab and ctrl+s.
package ui
