package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/shrew/internal/app"
	"github.com/five82/shrew/internal/notify"
	"github.com/five82/shrew/internal/prefs"
	"github.com/five82/shrew/internal/render"
	"github.com/five82/shrew/internal/route"
	"github.com/five82/shrew/internal/selection"
	"github.com/five82/shrew/internal/ui"
)

const (
	flagPage  = "page"
	flagAll   = "all"
	flagColor = "color"
)

func (c *cli) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "open <route>",
		Short:   "Start the TUI at a route such as /spaces/3 or /pieces/compare/4,9",
		Args:    cobra.ExactArgs(1),
		Example: "  shrew open /spaces/3\n  shrew open /pieces/compare/4,9,12",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session.RunUI(cmd.Context(), route.Parse(args[0]))
		},
	}
}

func (c *cli) spacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spaces",
		Short: "List code spaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := pageRequest(cmd)
			if err != nil {
				return err
			}
			return app.ListSpaces(cmd.Context(), c.session.Client, cmd.OutOrStdout(), req)
		},
	}
	addPageFlags(cmd)
	return cmd
}

func (c *cli) piecesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pieces <space-id>",
		Short: "List the code pieces of a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req, err := pageRequest(cmd)
			if err != nil {
				return err
			}
			return app.ListPieces(cmd.Context(), c.session.Client, cmd.OutOrStdout(), id, req)
		},
	}
	addPageFlags(cmd)
	return cmd
}

func (c *cli) pieceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "piece <id>",
		Short: "Print one code piece",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.ShowPiece(cmd.Context(), c.session.Client, cmd.OutOrStdout(), id, c.renderer(cmd))
		},
	}
	cmd.Flags().Bool(flagColor, false, "syntax highlight the code")
	return cmd
}

func (c *cli) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <id,id,...>",
		Short: "Print several code pieces sorted by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := selection.ParseTarget(args[0])
			if len(ids) == 0 {
				return fmt.Errorf("no piece ids in %q", args[0])
			}
			stderr := cmd.ErrOrStderr()
			n := notify.Func(func(_ notify.Level, msg string) {
				fmt.Fprintf(stderr, "shrew: %s\n", msg)
			})
			return app.Compare(cmd.Context(), c.session.Client, cmd.OutOrStdout(), ids,
				c.session.Config.CompareConcurrency, n, c.renderer(cmd))
		},
	}
	cmd.Flags().Bool(flagColor, false, "syntax highlight the code")
	return cmd
}

// renderer returns a highlighter using the saved theme's code style, or nil
// when --color is off.
func (c *cli) renderer(cmd *cobra.Command) *render.Renderer {
	color, err := cmd.Flags().GetBool(flagColor)
	if err != nil || !color {
		return nil
	}
	theme := ui.GetTheme(prefs.Load(c.prefsPath).Theme)
	return render.New("dark", theme.CodeStyle)
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int(flagPage, 0, "zero-based page to print")
	cmd.Flags().Bool(flagAll, false, "print every page")
}

func pageRequest(cmd *cobra.Command) (app.PageRequest, error) {
	page, err := cmd.Flags().GetInt(flagPage)
	if err != nil {
		return app.PageRequest{}, fmt.Errorf("%s flag: %w", flagPage, err)
	}
	if page < 0 {
		return app.PageRequest{}, fmt.Errorf("%s flag: must not be negative", flagPage)
	}
	all, err := cmd.Flags().GetBool(flagAll)
	if err != nil {
		return app.PageRequest{}, fmt.Errorf("%s flag: %w", flagAll, err)
	}
	return app.PageRequest{Page: page, All: all}, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
