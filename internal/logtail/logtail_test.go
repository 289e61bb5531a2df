package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", lines, err)
	}
}

func TestParseLine(t *testing.T) {
	line := `{"level":"warn","ts":"2026-03-01T10:00:00.123Z","caller":"codespace/client.go:42","msg":"request rejected","component":"shrew","status":403,"request_id":"abc"}`
	e := ParseLine(line)

	if e.Raw != "" {
		t.Fatalf("Raw = %q, want empty for JSON", e.Raw)
	}
	if e.Level != "WARN" || e.Message != "request rejected" || e.Caller != "codespace/client.go:42" {
		t.Fatalf("Entry = %#v", e)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 123_000_000, time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if e.Field("status") != "403" || e.Field("request_id") != "abc" {
		t.Fatalf("Fields = %#v", e.Fields)
	}
	if got := e.FieldKeys(); !reflect.DeepEqual(got, []string{"component", "request_id", "status"}) {
		t.Fatalf("FieldKeys = %v", got)
	}
}

func TestParseLine_EpochAndPlainText(t *testing.T) {
	e := ParseLine(`{"level":"info","ts":1700000000.5,"msg":"x"}`)
	if e.Time.Unix() != 1700000000 {
		t.Fatalf("Time = %v, want unix 1700000000", e.Time)
	}

	plain := ParseLine("panic: something broke")
	if plain.Raw != "panic: something broke" || plain.Level != "" {
		t.Fatalf("plain entry = %#v", plain)
	}
	broken := ParseLine(`{"level":`)
	if broken.Raw == "" {
		t.Fatalf("truncated JSON should keep the raw line")
	}
}

func TestAtLeast(t *testing.T) {
	entries := ParseLines([]string{
		`{"level":"debug","msg":"a"}`,
		`{"level":"info","msg":"b"}`,
		"",
		"stray text",
		`{"level":"error","msg":"c"}`,
	})
	if len(entries) != 4 {
		t.Fatalf("ParseLines kept %d entries, want 4", len(entries))
	}

	got := AtLeast(entries, "info")
	var msgs []string
	for _, e := range got {
		if e.Raw != "" {
			msgs = append(msgs, e.Raw)
			continue
		}
		msgs = append(msgs, e.Message)
	}
	if !reflect.DeepEqual(msgs, []string{"b", "stray text", "c"}) {
		t.Fatalf("AtLeast(info) = %v", msgs)
	}
	if len(AtLeast(entries, "bogus")) != 4 {
		t.Fatalf("unknown level should keep everything")
	}
}
