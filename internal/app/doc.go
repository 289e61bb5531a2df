// Package app is the composition root for shrew.
//
// # Overview
//
// Open loads configuration, builds the zap logger and the API client, and
// returns a Session shared by the TUI and the one-shot commands:
//
//	Open()
//	  ├─> config.Load() + Apply()   file values, then flag overrides
//	  ├─> logging.New()             JSON lines in the log file
//	  ├─> notify.Store{}            toasts shown by the TUI
//	  └─> codespace.NewClient()     timeout, notifier, logger
//
//	Session.RunUI()                 prefs.Load(), ui.Run() (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Open):
//   - config file unreadable or invalid
//   - log file cannot be created
//   - API URL without a host
//
// Everything after startup is recoverable. Request failures become toasts
// and log entries; the TUI keeps running.
//
// # One-shot Commands
//
// ListSpaces, ListPieces, ShowPiece and Compare print to a writer without
// starting the TUI. Listing commands walk pages through pager.Loader when
// every page is requested, so they stop on the same empty-page rule the
// TUI uses.
package app
