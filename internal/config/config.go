package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config captures everything shrew reads from its config file.
type Config struct {
	APIURL             string
	RequestTimeout     time.Duration
	LogFile            string
	CompareConcurrency int
	PrefetchThreshold  int
}

const (
	defaultConfigPath         = "~/.config/shrew/config.toml"
	defaultAPIURL             = "https://api-codespace.cuteshrew.com"
	defaultRequestTimeout     = 10 * time.Second
	defaultLogFile            = "~/.local/state/shrew/shrew.log"
	defaultCompareConcurrency = 4
	defaultPrefetchThreshold  = 3
)

// DefaultPath returns the config file consulted when no path is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIURL:             defaultAPIURL,
		RequestTimeout:     defaultRequestTimeout,
		LogFile:            mustExpand(defaultLogFile),
		CompareConcurrency: defaultCompareConcurrency,
		PrefetchThreshold:  defaultPrefetchThreshold,
	}
}

type rawConfig struct {
	APIURL             string `toml:"api_url" yaml:"api_url"`
	RequestTimeout     string `toml:"request_timeout" yaml:"request_timeout"`
	LogFile            string `toml:"log_file" yaml:"log_file"`
	CompareConcurrency int    `toml:"compare_concurrency" yaml:"compare_concurrency"`
	PrefetchThreshold  int    `toml:"prefetch_threshold" yaml:"prefetch_threshold"`
}

// Load locates and parses the shrew config, falling back to defaults when
// missing. Paths ending in .yaml or .yml are read as YAML, anything else as
// TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if isYAML(resolved) {
		err = yaml.Unmarshal(bytes, &raw)
	} else {
		err = toml.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return raw.resolve()
}

func (raw rawConfig) resolve() (Config, error) {
	cfg := Defaults()

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		if d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if raw.CompareConcurrency > 0 {
		cfg.CompareConcurrency = raw.CompareConcurrency
	}
	if raw.PrefetchThreshold > 0 {
		cfg.PrefetchThreshold = raw.PrefetchThreshold
	}
	return cfg, nil
}

// Overrides holds command-line values that win over the file. Zero values
// leave the file setting alone.
type Overrides struct {
	APIURL         string
	RequestTimeout time.Duration
	LogFile        string
}

// Apply returns c with every non-zero override applied.
func (c Config) Apply(o Overrides) Config {
	if v := strings.TrimSpace(o.APIURL); v != "" {
		c.APIURL = v
	}
	if o.RequestTimeout > 0 {
		c.RequestTimeout = o.RequestTimeout
	}
	if v := strings.TrimSpace(o.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	return c
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
