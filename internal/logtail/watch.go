package logtail

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to one file. It watches the parent directory, so
// a log that is created or replaced after Watch is still seen.
type Watcher struct {
	fs   *fsnotify.Watcher
	name string

	mu   sync.Mutex
	next chan struct{}

	done chan struct{}
	once sync.Once
}

// Watch starts watching path. The directory must exist.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fs:   fw,
		name: filepath.Clean(abs),
		next: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.signal()
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) signal() {
	w.mu.Lock()
	close(w.next)
	w.next = make(chan struct{})
	w.mu.Unlock()
}

// Next returns a channel that is closed on the first write after the call.
// Every caller holding it wakes, so several readers can share one watcher.
func (w *Watcher) Next() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.next
}

// Done is closed by Close.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// WaitFor blocks until next fires, ctx ends or the watcher is closed. It
// reports whether the file changed.
func (w *Watcher) WaitFor(ctx context.Context, next <-chan struct{}) bool {
	select {
	case <-next:
		return true
	case <-w.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Wait is WaitFor on the next write from now.
func (w *Watcher) Wait(ctx context.Context) bool {
	return w.WaitFor(ctx, w.Next())
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}
