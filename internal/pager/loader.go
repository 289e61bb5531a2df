package pager

import (
	"context"
	"fmt"
	"sync"

	"github.com/five82/shrew/internal/notify"
)

// Key identifies what a Loader is listing. Changing it starts over.
type Key struct {
	Kind     string
	ParentID int64
}

const (
	KindSpaces = "spaces"
	KindPieces = "pieces"
)

// SpacesKey lists every space.
func SpacesKey() Key {
	return Key{Kind: KindSpaces}
}

// PiecesKey lists the pieces of one space.
func PiecesKey(spaceID int64) Key {
	return Key{Kind: KindPieces, ParentID: spaceID}
}

func (k Key) String() string {
	if k.ParentID == 0 {
		return k.Kind
	}
	return fmt.Sprintf("%s/%d", k.Kind, k.ParentID)
}

// FetchFunc retrieves one zero-based page for key.
type FetchFunc[T any] func(ctx context.Context, key Key, page int) ([]T, error)

// State is a point-in-time view of a Loader's bookkeeping.
type State struct {
	Key        Key
	Cursor     int
	Exhausted  bool
	InFlight   bool
	Err        error
	Generation uint64
}

// Ticket authorizes exactly one page fetch. It is only honoured by Finish
// while the Loader is still on the generation that issued it.
type Ticket struct {
	key        Key
	page       int
	generation uint64
}

// Page returns the page index the ticket fetches.
func (t Ticket) Page() int { return t.page }

// Key returns the query key the ticket was issued for.
func (t Ticket) Key() Key { return t.key }

// Option configures a Loader.
type Option func(*options)

type options struct {
	notifier       notify.Notifier
	failureMessage string
}

// WithNotifier announces failed page fetches.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithFailureMessage replaces the error text in page failure notifications.
func WithFailureMessage(msg string) Option {
	return func(o *options) { o.failureMessage = msg }
}

// Loader accumulates pages from a paginated source into one ordered list.
//
// At most one page request is in flight at a time; calls made while a
// request is pending, or after an empty page has been seen, do nothing.
// Items are kept in arrival order and never deduplicated.
type Loader[T any] struct {
	fetch FetchFunc[T]
	opts  options

	mu         sync.Mutex
	key        Key
	items      []T
	cursor     int
	exhausted  bool
	inFlight   bool
	err        error
	generation uint64
}

// New returns a Loader for key backed by fetch.
func New[T any](key Key, fetch FetchFunc[T], opts ...Option) *Loader[T] {
	o := options{notifier: notify.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[T]{fetch: fetch, opts: o, key: key}
}

// LoadMore fetches the next page synchronously. It reports whether a fetch
// was issued. Failures are recorded in State().Err and notified, never
// returned; calling LoadMore again retries the same page.
func (l *Loader[T]) LoadMore(ctx context.Context) bool {
	ticket, ok := l.Begin()
	if !ok {
		return false
	}
	items, err := l.Fetch(ctx, ticket)
	l.Finish(ticket, items, err)
	return true
}

// Begin claims the in-flight slot and returns a ticket for the next page.
// It returns false when the list is exhausted or a request is pending.
func (l *Loader[T]) Begin() (Ticket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.exhausted || l.inFlight {
		return Ticket{}, false
	}
	l.inFlight = true
	return Ticket{key: l.key, page: l.cursor, generation: l.generation}, true
}

// Fetch runs the page request for t. It does not touch Loader state and may
// be called from any goroutine.
func (l *Loader[T]) Fetch(ctx context.Context, t Ticket) ([]T, error) {
	if l.fetch == nil {
		return nil, fmt.Errorf("pager: no fetch function for %s", t.key)
	}
	return l.fetch(ctx, t.key, t.page)
}

// Finish settles the request for t. It returns false, changing nothing,
// when the Loader was reset after t was issued.
func (l *Loader[T]) Finish(t Ticket, items []T, err error) bool {
	l.mu.Lock()
	if t.generation != l.generation || !l.inFlight {
		l.mu.Unlock()
		return false
	}
	l.inFlight = false
	if err != nil {
		l.err = err
		l.mu.Unlock()
		l.announce(err)
		return true
	}
	l.err = nil
	l.items = append(l.items, items...)
	l.cursor++
	if len(items) == 0 {
		l.exhausted = true
	}
	l.mu.Unlock()
	return true
}

// LoadAll walks pages until one comes back empty. It stops at the first
// failure and returns it.
func (l *Loader[T]) LoadAll(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.LoadMore(ctx) {
			st := l.State()
			if st.Exhausted {
				return nil
			}
			return fmt.Errorf("pager: %s already loading", st.Key)
		}
		st := l.State()
		if st.Err != nil {
			return st.Err
		}
		if st.Exhausted {
			return nil
		}
	}
}

// Reset discards everything and starts over for key. Requests issued before
// the reset are ignored when they settle.
func (l *Loader[T]) Reset(key Key) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.key = key
	l.items = nil
	l.cursor = 0
	l.exhausted = false
	l.inFlight = false
	l.err = nil
	l.generation++
}

// Items returns a copy of the accumulated list.
func (l *Loader[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) == 0 {
		return nil
	}
	dup := make([]T, len(l.items))
	copy(dup, l.items)
	return dup
}

// Len returns the number of accumulated items.
func (l *Loader[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// State returns the current bookkeeping.
func (l *Loader[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State{
		Key:        l.key,
		Cursor:     l.cursor,
		Exhausted:  l.exhausted,
		InFlight:   l.inFlight,
		Err:        l.err,
		Generation: l.generation,
	}
}

// Key returns the current query key.
func (l *Loader[T]) Key() Key {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.key
}

// HasMore reports whether another page may exist.
func (l *Loader[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.exhausted
}

// Loading reports whether a page request is pending.
func (l *Loader[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

func (l *Loader[T]) announce(err error) {
	if l.opts.failureMessage != "" {
		l.opts.notifier.Notify(notify.LevelError, l.opts.failureMessage)
		return
	}
	notify.Error(l.opts.notifier, err)
}
