package pager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/five82/shrew/internal/notify"
)

// scriptedSource answers pages from a fixed script and records requests.
type scriptedSource struct {
	mu     sync.Mutex
	pages  map[int][]int
	fail   map[int]error
	called []int
}

func (s *scriptedSource) fetch(_ context.Context, _ Key, page int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.called = append(s.called, page)
	if err, ok := s.fail[page]; ok {
		delete(s.fail, page)
		return nil, err
	}
	return s.pages[page], nil
}

func (s *scriptedSource) calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.called...)
}

func seq(from, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = from + i
	}
	return out
}

type noteRecorder struct {
	mu    sync.Mutex
	notes []string
}

func (r *noteRecorder) Notify(_ notify.Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, msg)
}

func (r *noteRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes)
}

func TestLoader_PagesUntilEmpty(t *testing.T) {
	src := &scriptedSource{pages: map[int][]int{0: seq(1, 20), 1: seq(21, 5)}}
	l := New(SpacesKey(), src.fetch)
	ctx := context.Background()

	require.True(t, l.LoadMore(ctx))
	require.True(t, l.LoadMore(ctx))
	require.True(t, l.LoadMore(ctx))

	st := l.State()
	require.Equal(t, 25, l.Len())
	require.True(t, st.Exhausted)
	require.False(t, st.InFlight)
	require.Equal(t, 3, st.Cursor)

	require.False(t, l.LoadMore(ctx), "fourth call must not fetch")
	require.False(t, l.LoadMore(ctx))
	require.Equal(t, []int{0, 1, 2}, src.calls())
	require.False(t, l.HasMore())
}

func TestLoader_FailureLeavesCursorAndRetries(t *testing.T) {
	src := &scriptedSource{
		pages: map[int][]int{0: {1, 2}},
		fail:  map[int]error{0: errors.New("dial tcp: connection refused")},
	}
	notes := &noteRecorder{}
	l := New(SpacesKey(), src.fetch, WithNotifier(notes))
	ctx := context.Background()

	require.True(t, l.LoadMore(ctx))
	st := l.State()
	require.Equal(t, 0, st.Cursor)
	require.False(t, st.InFlight)
	require.False(t, st.Exhausted)
	require.Empty(t, l.Items())
	require.EqualError(t, st.Err, "dial tcp: connection refused")
	require.Equal(t, 1, notes.count())

	require.True(t, l.LoadMore(ctx))
	require.Equal(t, []int{0, 0}, src.calls(), "retry must request page 0 again")
	require.Equal(t, []int{1, 2}, l.Items())
	require.NoError(t, l.State().Err)
	require.Equal(t, 1, l.State().Cursor)
}

func TestLoader_FailureMessageOverridesErrorText(t *testing.T) {
	src := &scriptedSource{fail: map[int]error{0: errors.New("boom")}}
	var got string
	l := New(PiecesKey(3), src.fetch,
		WithNotifier(notify.Func(func(_ notify.Level, msg string) { got = msg })),
		WithFailureMessage("Failed to load code pieces"),
	)
	l.LoadMore(context.Background())
	require.Equal(t, "Failed to load code pieces", got)
}

func TestLoader_SecondCallWhileInFlightIsNoop(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	fetch := func(ctx context.Context, _ Key, page int) ([]string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return []string{fmt.Sprintf("page-%d", page)}, nil
	}
	l := New(SpacesKey(), fetch)

	done := make(chan bool)
	go func() { done <- l.LoadMore(context.Background()) }()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never started")
	}

	before := l.State()
	require.True(t, before.InFlight)
	require.False(t, l.LoadMore(context.Background()))
	_, ok := l.Begin()
	require.False(t, ok)
	require.Equal(t, before, l.State(), "no-op call must leave state unchanged")

	close(release)
	require.True(t, <-done)
	require.False(t, l.Loading())
	require.Equal(t, []string{"page-0"}, l.Items())
	mu.Lock()
	require.Equal(t, 1, calls)
	mu.Unlock()
}

func TestLoader_ResetClearsEverything(t *testing.T) {
	src := &scriptedSource{pages: map[int][]int{0: {1}, 1: {}}}
	l := New(PiecesKey(1), src.fetch)
	ctx := context.Background()
	l.LoadMore(ctx)
	l.LoadMore(ctx)
	require.True(t, l.State().Exhausted)
	gen := l.State().Generation

	l.Reset(PiecesKey(2))
	st := l.State()
	require.Equal(t, 0, st.Cursor)
	require.False(t, st.Exhausted)
	require.False(t, st.InFlight)
	require.NoError(t, st.Err)
	require.Empty(t, l.Items())
	require.Equal(t, PiecesKey(2), l.Key())
	require.Equal(t, gen+1, st.Generation)
}

func TestLoader_StaleTicketIsDropped(t *testing.T) {
	src := &scriptedSource{pages: map[int][]int{0: {1, 2, 3}}}
	l := New(PiecesKey(1), src.fetch)

	ticket, ok := l.Begin()
	require.True(t, ok)
	require.Equal(t, 0, ticket.Page())
	require.Equal(t, PiecesKey(1), ticket.Key())

	l.Reset(PiecesKey(2))
	items, err := l.Fetch(context.Background(), ticket)
	require.NoError(t, err)

	require.False(t, l.Finish(ticket, items, err), "stale ticket must be ignored")
	require.Empty(t, l.Items())
	require.Equal(t, 0, l.State().Cursor)

	// The slot freed by Reset is usable immediately.
	fresh, ok := l.Begin()
	require.True(t, ok)
	require.Equal(t, PiecesKey(2), fresh.Key())
}

func TestLoader_PreservesDuplicatesAcrossPages(t *testing.T) {
	src := &scriptedSource{pages: map[int][]int{0: {1, 2, 3}, 1: {3, 4}}}
	l := New(SpacesKey(), src.fetch)
	l.LoadMore(context.Background())
	l.LoadMore(context.Background())

	if diff := cmp.Diff([]int{1, 2, 3, 3, 4}, l.Items()); diff != "" {
		t.Fatalf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_CursorSequenceOverMixedOutcomes(t *testing.T) {
	src := &scriptedSource{
		pages: map[int][]int{0: {1}, 1: {2}, 2: {3}},
		fail:  map[int]error{1: errors.New("once")},
	}
	l := New(SpacesKey(), src.fetch)
	ctx := context.Background()
	for i := 0; i < 6; i++ {
		l.LoadMore(ctx)
	}
	require.Equal(t, []int{0, 1, 1, 2, 3}, src.calls())
	require.Equal(t, []int{1, 2, 3}, l.Items())
	require.True(t, l.State().Exhausted)
}

func TestLoader_ItemsReturnsCopy(t *testing.T) {
	src := &scriptedSource{pages: map[int][]int{0: {1, 2}}}
	l := New(SpacesKey(), src.fetch)
	l.LoadMore(context.Background())

	items := l.Items()
	items[0] = 99
	require.Equal(t, []int{1, 2}, l.Items())
}

func TestLoader_LoadAll(t *testing.T) {
	src := &scriptedSource{pages: map[int][]int{0: seq(1, 3), 1: seq(4, 2)}}
	l := New(SpacesKey(), src.fetch)
	require.NoError(t, l.LoadAll(context.Background()))
	require.Equal(t, seq(1, 5), l.Items())

	failing := &scriptedSource{fail: map[int]error{0: errors.New("down")}}
	l = New(SpacesKey(), failing.fetch)
	require.EqualError(t, l.LoadAll(context.Background()), "down")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l = New(SpacesKey(), src.fetch)
	require.ErrorIs(t, l.LoadAll(ctx), context.Canceled)
}

func TestKeyString(t *testing.T) {
	require.Equal(t, "spaces", SpacesKey().String())
	require.Equal(t, "pieces/7", PiecesKey(7).String())
}
