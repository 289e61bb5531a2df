package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/compare"
	"github.com/five82/shrew/internal/notify"
	"github.com/five82/shrew/internal/pager"
	"github.com/five82/shrew/internal/render"
)

// ErrNothingLoaded is returned by Compare when every piece failed.
var ErrNothingLoaded = errors.New("no pieces could be loaded")

// PageRequest selects what a listing command prints: one page, or every
// page when All is set.
type PageRequest struct {
	Page int
	All  bool
}

// ListSpaces prints spaces as a table.
func ListSpaces(ctx context.Context, api codespace.API, w io.Writer, req PageRequest) error {
	spaces, err := collect(ctx, req, pager.SpacesKey(),
		func(ctx context.Context, _ pager.Key, page int) ([]codespace.Space, error) {
			return api.ListSpaces(ctx, page)
		})
	if err != nil {
		return fmt.Errorf("list spaces: %w", err)
	}

	rows := make([][]string, 0, len(spaces))
	for _, s := range spaces {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			s.OwnerName,
			formatTime(s.ParsedUpdatedAt()),
		})
	}
	return printTable(w, []string{"ID", "NAME", "OWNER", "UPDATED"}, rows, "no code spaces")
}

// ListPieces prints the pieces of one space as a table.
func ListPieces(ctx context.Context, api codespace.API, w io.Writer, spaceID int64, req PageRequest) error {
	pieces, err := collect(ctx, req, pager.PiecesKey(spaceID),
		func(ctx context.Context, key pager.Key, page int) ([]codespace.PieceSummary, error) {
			return api.ListPieces(ctx, key.ParentID, page)
		})
	if err != nil {
		return fmt.Errorf("list pieces of space %d: %w", spaceID, err)
	}

	rows := make([][]string, 0, len(pieces))
	for _, p := range pieces {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Language,
			p.OwnerName,
			formatTime(p.ParsedUpdatedAt()),
		})
	}
	return printTable(w, []string{"ID", "NAME", "LANGUAGE", "OWNER", "UPDATED"}, rows, "no code pieces")
}

// ShowPiece prints one piece. A nil renderer prints the code unchanged.
func ShowPiece(ctx context.Context, api codespace.API, w io.Writer, id int64, r *render.Renderer) error {
	p, err := api.GetPiece(ctx, id)
	if err != nil {
		return fmt.Errorf("get piece %d: %w", id, err)
	}
	return writePiece(w, *p, r)
}

// Compare prints the requested pieces one after another, sorted by id.
// Pieces that fail are reported to n and skipped.
func Compare(ctx context.Context, api codespace.API, w io.Writer, ids []int64, limit int, n notify.Notifier, r *render.Renderer) error {
	loader := compare.Loader{Fetcher: api, Notifier: n, Limit: limit}
	res, err := loader.Load(ctx, ids)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}
	if len(res.Pieces) == 0 {
		return ErrNothingLoaded
	}
	for i, p := range res.Pieces {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writePiece(w, p, r); err != nil {
			return err
		}
	}
	return nil
}

// collect fetches one page directly, or walks every page through a loader.
func collect[T any](ctx context.Context, req PageRequest, key pager.Key, fetch pager.FetchFunc[T]) ([]T, error) {
	if !req.All {
		return fetch(ctx, key, max(req.Page, 0))
	}
	l := pager.New(key, fetch)
	if err := l.LoadAll(ctx); err != nil {
		return nil, err
	}
	return l.Items(), nil
}

func printTable(w io.Writer, headers []string, rows [][]string, empty string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writePiece(w io.Writer, p codespace.Piece, r *render.Renderer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", p.ID, p.Name)
	if lang := strings.TrimSpace(p.Language); lang != "" {
		fmt.Fprintf(&b, " (%s)", lang)
	}
	b.WriteString("\n")
	if p.OwnerName != "" {
		fmt.Fprintf(&b, "by %s", p.OwnerName)
		if ts := formatTime(p.ParsedUpdatedAt()); ts != "-" {
			fmt.Fprintf(&b, ", updated %s", ts)
		}
		b.WriteString("\n")
	}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("-", 40))
	b.WriteString("\n")

	code := p.Code
	if r != nil {
		code = r.Code(code, p.Language)
	}
	b.WriteString(strings.TrimRight(code, "\n"))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
