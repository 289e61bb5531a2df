// Package pager accumulates a zero-based paginated listing into one list.
//
// # Overview
//
// The code space API pages spaces and pieces without a total count: the
// client asks for page 0, 1, 2 ... until a page comes back empty. Loader
// keeps the bookkeeping for that walk:
//
//	cursor      next page to request
//	exhausted   an empty page has been seen
//	inFlight    a request is pending
//	items       every page so far, concatenated in arrival order
//
// The same type drives the spaces listing and the pieces listing of a
// space; only the Key differs.
//
// # One Request At A Time
//
// LoadMore and Begin refuse to start while a request is pending or after
// the list is exhausted. The guard is a plain boolean under the Loader's
// mutex, so scroll events that arrive in bursts cannot double-fetch a page.
//
// # Failures
//
// A failed page leaves the cursor where it was, records the error in
// State().Err and hands it to the configured notify.Notifier. Nothing is
// retried automatically; the next LoadMore asks for the same page again.
//
// # Event Loops
//
// Bubble Tea mutates models only inside Update, so the synchronous
// LoadMore is split in three:
//
//	ticket, ok := loader.Begin()       // in Update
//	items, err := loader.Fetch(ctx, t) // in a tea.Cmd goroutine
//	loader.Finish(ticket, items, err)  // back in Update, via a msg
//
// Reset bumps a generation counter. Finish drops tickets issued under an
// older generation, so a response that lands after the user left the view
// (or after a delete-driven refresh) cannot leak into the new list.
//
// # Duplicates
//
// Items are never deduplicated or reordered. When the server inserts rows
// between two page requests the same item may show up twice; that is what
// the server returned and the list shows it.
package pager
