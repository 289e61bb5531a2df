package notify

import (
	"strings"
	"sync"
	"time"
)

// Level classifies a notification for display.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier receives transient user-visible messages.
type Notifier interface {
	Notify(level Level, message string)
}

// Func adapts a plain function to Notifier.
type Func func(level Level, message string)

// Notify implements Notifier.
func (f Func) Notify(level Level, message string) {
	if f != nil {
		f(level, message)
	}
}

// Discard drops every notification.
var Discard Notifier = Func(nil)

// Error is shorthand for notifying err at LevelError. A nil err is ignored.
func Error(n Notifier, err error) {
	if n == nil || err == nil {
		return
	}
	n.Notify(LevelError, err.Error())
}

// Toast is a single notification with its display window.
type Toast struct {
	ID        uint64
	Level     Level
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

const (
	defaultTTL = 4 * time.Second
	maxToasts  = 5
)

// Store coordinates concurrent writers (request goroutines) with the UI,
// which reads the active toasts on every render.
type Store struct {
	mu     sync.Mutex
	toasts []Toast
	nextID uint64

	// TTL overrides how long a toast stays visible. Zero uses 4s.
	TTL time.Duration
	// Now overrides the clock for tests.
	Now func() time.Time
}

var _ Notifier = (*Store)(nil)

// Notify appends a toast. Blank messages are ignored and only the newest
// few toasts are retained.
func (s *Store) Notify(level Level, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ttl := s.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	s.nextID++
	s.toasts = append(s.toasts, Toast{
		ID:        s.nextID,
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if len(s.toasts) > maxToasts {
		s.toasts = append([]Toast(nil), s.toasts[len(s.toasts)-maxToasts:]...)
	}
}

// Active prunes expired toasts and returns a copy of the remaining ones,
// oldest first.
func (s *Store) Active() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
	return cloneToasts(kept)
}

// Dismiss removes every toast immediately.
func (s *Store) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = nil
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func cloneToasts(items []Toast) []Toast {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Toast, len(items))
	copy(dup, items)
	return dup
}
