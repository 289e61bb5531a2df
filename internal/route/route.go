// Package route maps shrew's location paths to views and back.
//
// The paths are the ones the web client uses, so a link copied from the
// browser opens the same screen:
//
//	/                            spaces list
//	/spaces/create               new space form
//	/spaces/{id}                 space detail
//	/spaces/{id}/edit            edit space form
//	/spaces/{id}/pieces/create   new piece form
//	/pieces/{id}                 piece detail
//	/pieces/{id}/edit            edit piece form
//	/pieces/compare/{ids}        compare, ids comma separated
//	/log                         activity log
//
// Anything else parses to NotFound.
package route

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/five82/shrew/internal/selection"
)

// Kind identifies a view.
type Kind int

const (
	NotFound Kind = iota
	Spaces
	SpaceCreate
	Space
	SpaceEdit
	PieceCreate
	Piece
	PieceEdit
	Compare
	ActivityLog
)

var kindNames = map[Kind]string{
	NotFound:    "not found",
	Spaces:      "spaces",
	SpaceCreate: "new space",
	Space:       "space",
	SpaceEdit:   "edit space",
	PieceCreate: "new piece",
	Piece:       "piece",
	PieceEdit:   "edit piece",
	Compare:     "compare",
	ActivityLog: "activity",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Route is a parsed location.
type Route struct {
	Kind Kind
	// ID is the space id for Space, SpaceEdit and PieceCreate, and the piece
	// id for Piece and PieceEdit.
	ID int64
	// IDs lists the compare targets in the order given.
	IDs []int64
	// Path keeps the original input for NotFound.
	Path string
}

// Home is the spaces list.
func Home() Route { return Route{Kind: Spaces} }

// ToSpace opens a space.
func ToSpace(id int64) Route { return Route{Kind: Space, ID: id} }

// ToPiece opens a piece.
func ToPiece(id int64) Route { return Route{Kind: Piece, ID: id} }

// ToCompare opens the compare view for ids.
func ToCompare(ids []int64) Route {
	return Route{Kind: Compare, IDs: append([]int64(nil), ids...)}
}

// Parse resolves path. The scheme and host of a full URL are ignored, as
// are query strings and a trailing slash.
func Parse(path string) Route {
	raw := strings.TrimSpace(path)
	clean := raw
	if u, err := url.Parse(raw); err == nil {
		clean = u.Path
	}
	clean = strings.Trim(clean, "/")
	if clean == "" {
		return Home()
	}
	parts := strings.Split(clean, "/")

	switch {
	case len(parts) == 1 && parts[0] == "log":
		return Route{Kind: ActivityLog}
	case parts[0] == "spaces":
		return parseSpaces(parts[1:], raw)
	case parts[0] == "pieces":
		return parsePieces(parts[1:], raw)
	}
	return notFound(raw)
}

func parseSpaces(rest []string, raw string) Route {
	switch len(rest) {
	case 1:
		if rest[0] == "create" {
			return Route{Kind: SpaceCreate}
		}
		if id, ok := parseID(rest[0]); ok {
			return Route{Kind: Space, ID: id}
		}
	case 2:
		if id, ok := parseID(rest[0]); ok && rest[1] == "edit" {
			return Route{Kind: SpaceEdit, ID: id}
		}
	case 3:
		if id, ok := parseID(rest[0]); ok && rest[1] == "pieces" && rest[2] == "create" {
			return Route{Kind: PieceCreate, ID: id}
		}
	}
	return notFound(raw)
}

func parsePieces(rest []string, raw string) Route {
	switch len(rest) {
	case 1:
		if id, ok := parseID(rest[0]); ok {
			return Route{Kind: Piece, ID: id}
		}
	case 2:
		if rest[0] == "compare" {
			ids := selection.ParseTarget(rest[1])
			if len(ids) == 0 {
				return notFound(raw)
			}
			return Route{Kind: Compare, IDs: ids}
		}
		if id, ok := parseID(rest[0]); ok && rest[1] == "edit" {
			return Route{Kind: PieceEdit, ID: id}
		}
	}
	return notFound(raw)
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFound(raw string) Route {
	return Route{Kind: NotFound, Path: raw}
}

// String formats r as a path that Parse maps back to r.
func (r Route) String() string {
	id := strconv.FormatInt(r.ID, 10)
	switch r.Kind {
	case Spaces:
		return "/"
	case SpaceCreate:
		return "/spaces/create"
	case Space:
		return "/spaces/" + id
	case SpaceEdit:
		return "/spaces/" + id + "/edit"
	case PieceCreate:
		return "/spaces/" + id + "/pieces/create"
	case Piece:
		return "/pieces/" + id
	case PieceEdit:
		return "/pieces/" + id + "/edit"
	case Compare:
		return "/pieces/compare/" + selection.FormatTarget(r.IDs)
	case ActivityLog:
		return "/log"
	default:
		if r.Path != "" {
			return r.Path
		}
		return "/404"
	}
}

// Equal reports whether r and o address the same screen.
func (r Route) Equal(o Route) bool {
	return r.String() == o.String()
}
