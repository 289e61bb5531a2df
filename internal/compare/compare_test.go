package compare

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/notify"
)

// gatedFetcher blocks each id until the test releases it.
type gatedFetcher struct {
	mu      sync.Mutex
	gates   map[int64]chan struct{}
	started chan int64
	fail    map[int64]bool
}

func newGatedFetcher(ids ...int64) *gatedFetcher {
	f := &gatedFetcher{gates: map[int64]chan struct{}{}, started: make(chan int64, len(ids)), fail: map[int64]bool{}}
	for _, id := range ids {
		f.gates[id] = make(chan struct{})
	}
	return f
}

func (f *gatedFetcher) release(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	close(f.gates[id])
}

func (f *gatedFetcher) GetPiece(ctx context.Context, id int64) (*codespace.Piece, error) {
	f.mu.Lock()
	gate := f.gates[id]
	fail := f.fail[id]
	f.mu.Unlock()
	f.started <- id
	select {
	case <-gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if fail {
		return nil, errors.New("boom")
	}
	p := &codespace.Piece{}
	p.ID = id
	p.Name = "piece"
	return p, nil
}

func ids(pieces []codespace.Piece) []int64 {
	out := make([]int64, len(pieces))
	for i, p := range pieces {
		out[i] = p.ID
	}
	return out
}

func TestLoad_SortsByIDRegardlessOfCompletionOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newGatedFetcher(5, 3, 8)
	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := Loader{Fetcher: f}.Load(context.Background(), []int64{5, 3, 8})
		done <- outcome{res, err}
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-f.started:
		case <-time.After(2 * time.Second):
			t.Fatal("fetches did not start in parallel")
		}
	}
	f.release(8)
	f.release(5)
	f.release(3)

	out := <-done
	require.NoError(t, out.err)
	if diff := cmp.Diff([]int64{3, 5, 8}, ids(out.res.Pieces)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	require.Empty(t, out.res.Failed)
}

func TestLoad_FailureIsNotifiedPerIDAndDoesNotAbort(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newGatedFetcher(1, 2, 3)
	f.fail[2] = true
	for _, id := range []int64{1, 2, 3} {
		f.release(id)
	}

	var mu sync.Mutex
	var notes []string
	var levels []notify.Level
	n := notify.Func(func(level notify.Level, msg string) {
		mu.Lock()
		defer mu.Unlock()
		levels = append(levels, level)
		notes = append(notes, msg)
	})

	res, err := Loader{Fetcher: f, Notifier: n, Limit: 1}.Load(context.Background(), []int64{3, 2, 1})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3}, ids(res.Pieces))
	require.Equal(t, []int64{2}, res.Failed)
	require.Equal(t, []string{"Failed to load code piece 2"}, notes)
	require.Equal(t, []notify.Level{notify.LevelError}, levels)
}

type countingFetcher struct {
	calls    atomic.Int32
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (c *countingFetcher) GetPiece(ctx context.Context, id int64) (*codespace.Piece, error) {
	c.calls.Add(1)
	cur := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		peak := c.peak.Load()
		if cur <= peak || c.peak.CompareAndSwap(peak, cur) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	p := &codespace.Piece{}
	p.ID = id
	return p, nil
}

func TestLoad_DedupesAndRespectsLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := &countingFetcher{}
	res, err := Loader{Fetcher: f, Limit: 2}.Load(context.Background(), []int64{4, 4, 1, 2, 3, 1})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 4}, ids(res.Pieces))
	require.EqualValues(t, 4, f.calls.Load())
	require.LessOrEqual(t, f.peak.Load(), int32(2))
}

func TestLoad_CanceledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newGatedFetcher(1)
	ctx, cancel := context.WithCancel(context.Background())
	var notified atomic.Bool
	n := notify.Func(func(notify.Level, string) { notified.Store(true) })

	done := make(chan error, 1)
	go func() {
		_, err := Loader{Fetcher: f, Notifier: n}.Load(ctx, []int64{1})
		done <- err
	}()
	<-f.started
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	require.False(t, notified.Load(), "cancellation is not a per-piece failure")
}

func TestLoad_Empty(t *testing.T) {
	res, err := Loader{Fetcher: &countingFetcher{}}.Load(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, res.Pieces)
}

func TestLayoutFor(t *testing.T) {
	cases := []struct {
		n      int
		narrow bool
		want   Layout
		cols   int
	}{
		{1, false, LayoutTabs, 1},
		{2, false, LayoutTwoColumns, 2},
		{3, false, LayoutThreeColumns, 3},
		{4, false, LayoutGrid, 2},
		{5, false, LayoutTabs, 1},
		{3, true, LayoutTabs, 1},
	}
	for _, tc := range cases {
		got := LayoutFor(tc.n, tc.narrow)
		require.Equal(t, tc.want, got, "LayoutFor(%d, %v)", tc.n, tc.narrow)
		require.Equal(t, tc.cols, got.Columns())
	}
	require.Equal(t, "grid", LayoutGrid.String())
}
