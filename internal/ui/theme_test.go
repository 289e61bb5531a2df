package ui

import (
	"testing"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nord" || names[1] != "Gruvbox" || names[2] != "Dracula" {
		t.Fatalf("ThemeNames() = %v, want [Nord Gruvbox Dracula]", names)
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nord":    "Gruvbox",
		"Gruvbox": "Dracula",
		"Dracula": "Nord",
		"Unknown": "Nord",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %s", in, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.Name != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, th.Name)
		}
		if th.CodeStyle == "" {
			t.Fatalf("GetTheme(%s) has no code style", name)
		}
	}

	unknown := GetTheme("Solarized")
	if unknown.Name != "Nord" {
		t.Fatalf("GetTheme(Solarized).Name = %q, want Nord (fallback)", unknown.Name)
	}
}

func TestLanguageColors(t *testing.T) {
	th := GetTheme("Nord")
	for _, lang := range []string{"go", "c++", "c#", "python", "other"} {
		if th.LanguageColors[lang] == "" {
			t.Fatalf("no color for %q", lang)
		}
	}
	// Unknown languages fall back to the muted color.
	styles := th.Styles()
	if got := styles.LanguageStyle("  Brainfuck "); got.GetBackground() != styles.LanguageStyle("zzz").GetBackground() {
		t.Fatalf("unknown languages should share the fallback badge")
	}
}

func TestWithBackgroundKeepsLanguageColors(t *testing.T) {
	th := GetTheme("Gruvbox")
	styles := th.Styles().WithBackground(th.Surface)
	if styles.languageColors == nil || styles.muted != th.Muted {
		t.Fatalf("WithBackground dropped theme data: %+v", styles)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"  spaced  ", 0, "spaced"},
		{"한국어입니다", 5, "한국..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("a/b/c/d/e", 7)
	if got != "a/b…d/e" {
		t.Fatalf("truncateMiddle = %q, want a/b…d/e", got)
	}
}

func TestFirstLineAndPadRight(t *testing.T) {
	if got := firstLine("\n\n  first \nsecond"); got != "first" {
		t.Fatalf("firstLine = %q", got)
	}
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight should not cut: %q", got)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "piece", "pieces"); got != "1 piece" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(3, "piece", "pieces"); got != "3 pieces" {
		t.Fatalf("plural(3) = %q", got)
	}
}
