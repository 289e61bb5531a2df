package notify

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestStore_NotifyAndExpire(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := &Store{TTL: 2 * time.Second, Now: clock.Now}

	s.Notify(LevelError, "  boom  ")
	s.Notify(LevelSuccess, "saved")

	active := s.Active()
	if len(active) != 2 {
		t.Fatalf("Active = %d toasts, want 2", len(active))
	}
	if active[0].Message != "boom" || active[0].Level != LevelError {
		t.Fatalf("first toast = %#v, want trimmed error boom", active[0])
	}

	// Returned slice should be independent of the stored one.
	active[0].Message = "changed"
	if got := s.Active()[0].Message; got != "boom" {
		t.Fatalf("Active should clone toasts; got %q", got)
	}

	clock.t = clock.t.Add(3 * time.Second)
	if got := s.Active(); len(got) != 0 {
		t.Fatalf("Active after ttl = %#v, want empty", got)
	}
}

func TestStore_IgnoresBlankAndCapsCount(t *testing.T) {
	var s Store
	s.Notify(LevelInfo, "   ")
	if got := s.Active(); len(got) != 0 {
		t.Fatalf("blank message stored: %#v", got)
	}

	for i := 0; i < maxToasts+3; i++ {
		s.Notify(LevelInfo, "msg")
	}
	active := s.Active()
	if len(active) != maxToasts {
		t.Fatalf("Active = %d toasts, want %d", len(active), maxToasts)
	}
	if active[len(active)-1].ID != uint64(maxToasts+3) {
		t.Fatalf("newest toast id = %d, want %d", active[len(active)-1].ID, maxToasts+3)
	}
}

func TestError_NotifiesMessage(t *testing.T) {
	var gotLevel Level
	var gotMsg string
	n := Func(func(level Level, message string) {
		gotLevel, gotMsg = level, message
	})

	Error(n, nil)
	if gotMsg != "" {
		t.Fatalf("nil error should not notify, got %q", gotMsg)
	}
	Error(n, errors.New("nope"))
	if gotLevel != LevelError || gotMsg != "nope" {
		t.Fatalf("Error notified (%v, %q), want (error, nope)", gotLevel, gotMsg)
	}

	// Discard must be safe to call.
	Discard.Notify(LevelInfo, "ignored")
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{LevelInfo: "info", LevelSuccess: "success", LevelError: "error"}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
