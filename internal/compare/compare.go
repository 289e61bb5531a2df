// Package compare loads several code pieces at once for side-by-side display.
package compare

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/notify"
)

// DefaultConcurrency caps parallel piece requests when no limit is given.
const DefaultConcurrency = 4

// Fetcher retrieves one piece with its code.
type Fetcher interface {
	GetPiece(ctx context.Context, id int64) (*codespace.Piece, error)
}

// Result holds the pieces that loaded, sorted by id, and the ids that did not.
type Result struct {
	Pieces []codespace.Piece
	Failed []int64
}

// Loader fetches pieces concurrently.
type Loader struct {
	Fetcher  Fetcher
	Notifier notify.Notifier
	// Limit caps in-flight requests. Zero means DefaultConcurrency.
	Limit int
}

// Load fetches every distinct id in ids. A failed id is notified and listed
// in Result.Failed; it does not stop the others. The only error returned is
// the context's, when it ends before all requests settle.
func (l Loader) Load(ctx context.Context, ids []int64) (Result, error) {
	ids = dedupe(ids)
	if len(ids) == 0 || l.Fetcher == nil {
		return Result{}, ctx.Err()
	}

	limit := l.Limit
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	notifier := l.Notifier
	if notifier == nil {
		notifier = notify.Discard
	}

	var (
		mu     sync.Mutex
		loaded = make(map[int64]codespace.Piece, len(ids))
		failed []int64
	)

	var g errgroup.Group
	g.SetLimit(limit)
	for _, id := range ids {
		g.Go(func() error {
			piece, err := l.Fetcher.GetPiece(ctx, id)
			if err != nil || piece == nil {
				if ctx.Err() == nil {
					notifier.Notify(notify.LevelError, fmt.Sprintf("Failed to load code piece %d", id))
				}
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
				return nil
			}
			mu.Lock()
			loaded[id] = *piece
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{Pieces: make([]codespace.Piece, 0, len(loaded))}
	for _, p := range loaded {
		res.Pieces = append(res.Pieces, p)
	}
	SortByID(res.Pieces)
	if len(failed) > 0 {
		sort.Slice(failed, func(i, j int) bool { return failed[i] < failed[j] })
		res.Failed = failed
	}
	return res, nil
}

// SortByID orders pieces by ascending id.
func SortByID(pieces []codespace.Piece) {
	sort.SliceStable(pieces, func(i, j int) bool { return pieces[i].ID < pieces[j].ID })
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
