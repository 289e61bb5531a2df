// Package config loads shrew's configuration file.
//
// # Overview
//
// shrew needs to know where the code space API lives, how long to wait for
// it, and where to write its log. Everything has a default, so the file is
// optional.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided (--config), use it
//  2. Otherwise, use ~/.config/shrew/config.toml
//  3. If the file doesn't exist, return Defaults()
//  4. If the file exists but fields are missing or empty, use defaults
//
// Paths ending in .yaml or .yml are decoded as YAML with the same keys.
//
// # Configuration Fields
//
//	api_url              base URL of the API (https://api-codespace.cuteshrew.com)
//	request_timeout      Go duration per request (10s)
//	log_file             JSON log destination (~/.local/state/shrew/shrew.log)
//	compare_concurrency  parallel piece fetches in the compare view (4)
//	prefetch_threshold   rows from the end of a list that trigger the next page (3)
//
// Example:
//
//	api_url = "http://localhost:8080"
//	request_timeout = "5s"
//	compare_concurrency = 2
//
// # Overrides
//
// Command-line flags are applied on top of the file with Config.Apply. Zero
// override values keep the file's setting.
//
// # Path Expansion
//
// A leading ~ in log_file or the config path is replaced with the user's
// home directory and the result is made absolute.
//
// # Error Handling
//
//   - Missing file: defaults, no error
//   - Unreadable file: "open config" or "read config" error
//   - Malformed TOML/YAML or a bad duration: "parse config" error
//
// A bad config file is fatal at startup; shrew does not guess.
package config
