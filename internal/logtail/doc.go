// Package logtail reads the tail of shrew's JSON log for the activity view.
//
// # Overview
//
// shrew writes zap JSON lines to its log file (see package logging). The
// activity view shows the most recent requests and failures without leaving
// the TUI; this package does the reading and decoding, the UI does the
// styling.
//
// # Reading Log Files
//
// Read uses a ring buffer of size maxLines, so only the last lines are kept
// in memory however large the file grows:
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//	entries := logtail.AtLeast(logtail.ParseLines(lines), "info")
//
// A missing file is not an error; it returns nil, nil.
//
// # Decoding Entries
//
// ParseLine understands the fields zap's production encoder writes:
//
//	{"level":"warn","ts":"2026-03-01T10:00:00.123Z","caller":"...","msg":"request rejected","status":403}
//
// ts may be an ISO8601 string or epoch seconds. Every non-reserved key ends
// up in Entry.Fields as a string. Lines that are not JSON (a panic trace,
// for instance) come back with only Raw set so nothing is silently lost.
//
// # Following Writes
//
// Watch follows the log with fsnotify while the activity view is open:
//
//	w, err := logtail.Watch(cfg.LogFile)
//	defer w.Close()
//	for w.Wait(ctx) {
//		// re-read
//	}
//
// It watches the parent directory so a log created after Watch is still
// seen. Bursts of writes collapse into one pending change.
//
// # Error Handling
//
// Read wraps open and scan failures ("open log", "read log"). Watch wraps
// watcher setup failures. ParseLine never fails.
package logtail
