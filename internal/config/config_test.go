package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.CompareConcurrency != defaultCompareConcurrency || cfg.PrefetchThreshold != defaultPrefetchThreshold {
		t.Fatalf("cfg = %#v, want default concurrency and threshold", cfg)
	}
}

func TestLoad_ParsesAndTrimsTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  http://localhost:8080  "
request_timeout = "3s"
log_file = "  ~/logs/shrew.log  "
compare_concurrency = 2
prefetch_threshold = 5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.CompareConcurrency != 2 || cfg.PrefetchThreshold != 5 {
		t.Fatalf("cfg = %#v", cfg)
	}
}

func TestLoad_ReadsYAMLByExtension(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "shrew.yaml")
	if err := os.WriteFile(path, []byte(`
api_url: https://snippets.example
request_timeout: 1500ms
compare_concurrency: 8
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://snippets.example" || cfg.RequestTimeout != 1500*time.Millisecond || cfg.CompareConcurrency != 8 {
		t.Fatalf("cfg = %#v", cfg)
	}
	if cfg.PrefetchThreshold != defaultPrefetchThreshold {
		t.Fatalf("PrefetchThreshold = %d, want default", cfg.PrefetchThreshold)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
request_timeout = ""
log_file = ""
compare_concurrency = 0
prefetch_threshold = -1
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Defaults()
	if cfg != want {
		t.Fatalf("cfg = %#v, want %#v", cfg, want)
	}
}

func TestLoad_InvalidFilesFail(t *testing.T) {
	cases := map[string]string{
		"config.toml": `api_url = [`,
		"config.yml":  "api_url: [unterminated",
		"bad.toml":    `request_timeout = "soon"`,
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatalf("Load(%s) returned nil error, want parse error", name)
		}
		if !strings.Contains(err.Error(), "parse config") {
			t.Fatalf("Load(%s) error = %q, want it to mention parse config", name, err.Error())
		}
	}
}

func TestApply_OverridesWin(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Defaults().Apply(Overrides{APIURL: " http://flag ", RequestTimeout: time.Second, LogFile: "~/x.log"})
	if cfg.APIURL != "http://flag" || cfg.RequestTimeout != time.Second {
		t.Fatalf("cfg = %#v", cfg)
	}
	if cfg.LogFile != filepath.Join(home, "x.log") {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}

	same := Defaults().Apply(Overrides{})
	if same != Defaults() {
		t.Fatalf("empty overrides changed config: %#v", same)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
