package render

import (
	"strings"
	"testing"
)

func TestLexerName(t *testing.T) {
	cases := []struct {
		language string
		want     string
	}{
		{"Go", "Go"},
		{"python", "Python"},
		{"C++", "C++"},
		{"C#", "C#"},
		{"JavaScript", "JavaScript"},
		{"Kotlin", "Kotlin"},
	}
	for _, tc := range cases {
		if got := LexerName(tc.language, ""); got != tc.want {
			t.Fatalf("LexerName(%q) = %q, want %q", tc.language, got, tc.want)
		}
	}
}

func TestCodeHighlightsKnownLanguage(t *testing.T) {
	r := New("", "")
	src := "package main\n\nfunc main() {}\n"
	out := r.Code(src, "Go")
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("Code output has no escape sequences: %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("Code output keeps trailing newline")
	}
	if r.Code("", "Go") != "" {
		t.Fatalf("empty source should render empty")
	}
}

func TestMarkdown(t *testing.T) {
	r := New("", "")
	if got := r.Markdown("   ", 80); got != "" {
		t.Fatalf("blank markdown = %q, want empty", got)
	}
	out := r.Markdown("# Heading\n\nsome body text", 40)
	if !strings.Contains(out, "body") {
		t.Fatalf("Markdown output lost text: %q", out)
	}
	// Widths below the minimum share one cached renderer.
	r.Markdown("x", 1)
	r.Markdown("x", 5)
	r.mu.Lock()
	_, ok := r.markdown[minWrap]
	r.mu.Unlock()
	if !ok {
		t.Fatalf("narrow widths should clamp to %d", minWrap)
	}
}
