// Package codespace provides an HTTP client for the code space snippet API.
//
// # Overview
//
// The service stores spaces (named, password-protected containers) and the
// code pieces inside them. This package mirrors its JSON schema and wraps
// every endpoint shrew uses:
//
//   - GET    /api/codespaces?page=N
//   - GET    /api/codespaces/{id}
//   - POST   /api/codespaces
//   - PUT    /api/codespaces/{id}
//   - DELETE /api/codespaces/{id}
//   - GET    /api/codepieces?page=N&space_id=ID
//   - GET    /api/codepieces/{id}
//   - POST   /api/codepieces
//   - PUT    /api/codepieces/{id}
//   - DELETE /api/codepieces/{id}
//
// Pages are zero-based and an empty array marks the last page. No total
// count is exposed.
//
// # Client Usage
//
//	client, err := codespace.NewClient(cfg.APIURL,
//		codespace.WithTimeout(cfg.RequestTimeout),
//		codespace.WithNotifier(toasts),
//		codespace.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	spaces, err := client.ListSpaces(ctx, 0)
//
// # Error Handling
//
// Every call returns one of:
//
//   - *APIError for non-2xx responses. Error() is the trimmed response body,
//     or "request failed with status N" when the body is empty. Wrong
//     passwords are plain 4xx responses and are not distinguished.
//   - a wrapped transport error ("execute request: ...") when no response
//     arrived.
//   - a wrapped decode error for malformed JSON.
//
// Before returning, the client hands the error to its notify.Notifier so the
// UI can show a toast while the caller still handles the error locally (for
// example by keeping a dialog open).
//
// A 204 response, or an empty 2xx body, is treated as an empty result.
//
// # Passwords
//
// Mutations take the password as a request field. The client never caches
// it between calls.
//
// # Validation
//
// Request types expose Validate, which applies the same checks as the web
// forms: required name and owner, space passwords of at least four
// characters, and a required code body for new pieces. The server remains
// the authority; Validate only avoids an obviously doomed round trip.
//
// # Thread Safety
//
// Client is safe for concurrent use. The compare view fetches several pieces
// in parallel through a single Client.
package codespace
