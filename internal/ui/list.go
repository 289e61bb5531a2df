package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shrew/internal/pager"
)

// listView pairs a page loader with a cursor and scroll offset.
type listView[T any] struct {
	loader *pager.Loader[T]
	cursor int
	offset int
}

func newListView[T any](loader *pager.Loader[T]) *listView[T] {
	return &listView[T]{loader: loader}
}

// reset starts the list over for key.
func (l *listView[T]) reset(key pager.Key) {
	l.loader.Reset(key)
	l.cursor = 0
	l.offset = 0
}

// current returns the highlighted item.
func (l *listView[T]) current() (T, bool) {
	var zero T
	items := l.loader.Items()
	if l.cursor < 0 || l.cursor >= len(items) {
		return zero, false
	}
	return items[l.cursor], true
}

// move shifts the cursor by delta and keeps it on screen.
func (l *listView[T]) move(delta, visible int) {
	l.moveTo(l.cursor+delta, visible)
}

func (l *listView[T]) moveTo(idx, visible int) {
	total := l.loader.Len()
	if total == 0 {
		l.cursor, l.offset = 0, 0
		return
	}
	l.cursor = max(0, min(idx, total-1))
	if visible <= 0 {
		visible = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	l.offset = max(0, min(l.offset, max(total-visible, 0)))
}

// clamp fixes the cursor after the item count changed.
func (l *listView[T]) clamp(visible int) {
	l.moveTo(l.cursor, visible)
}

// pageTrigger says what prompted a page request.
type pageTrigger int

const (
	triggerAuto     pageTrigger = iota // a page landed or the window resized
	triggerMove                        // the cursor moved
	triggerExplicit                    // first load or the load more key
)

// wantMore decides whether the next page should be requested without an
// explicit "load more": the list does not fill the screen yet, or the cursor
// has come within threshold rows of its end. A failed page is retried only
// when retry is set, so a failure never chains into another request.
func wantMore(st pager.State, cursor, total, visible, threshold int, retry bool) bool {
	if st.Exhausted || st.InFlight || (st.Err != nil && !retry) {
		return false
	}
	if total < visible {
		return true
	}
	return cursor >= total-threshold
}

// nextPage claims the next page of lv and returns the command that fetches
// it. An explicit trigger skips the fill and threshold checks; every trigger
// still honours the one-request rule.
func nextPage[T any](ctx context.Context, lv *listView[T], visible, threshold int, trig pageTrigger, wrap func(pager.Ticket, []T, error) tea.Msg) tea.Cmd {
	if lv == nil {
		return nil
	}
	if trig != triggerExplicit && !wantMore(lv.loader.State(), lv.cursor, lv.loader.Len(), visible, threshold, trig == triggerMove) {
		return nil
	}
	ticket, ok := lv.loader.Begin()
	if !ok {
		return nil
	}
	loader := lv.loader
	return func() tea.Msg {
		items, err := loader.Fetch(ctx, ticket)
		return wrap(ticket, items, err)
	}
}
