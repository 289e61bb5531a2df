package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/shrew/internal/app"
	"github.com/five82/shrew/internal/config"
	"github.com/five82/shrew/internal/route"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli := &cli{}
	root := cli.rootCmd()
	err := root.ExecuteContext(ctx)
	cli.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shrew: %v\n", err)
		return 1
	}
	return 0
}

// cli owns the global flags and the session shared by every subcommand.
type cli struct {
	configPath string
	prefsPath  string
	apiURL     string
	logFile    string
	timeout    time.Duration
	verbose    bool

	session *app.Session
}

func (c *cli) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shrew",
		Short:         "Browse, compare and edit code pieces from the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.session.RunUI(cmd.Context(), route.Home())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default ~/.config/shrew/config.toml)")
	flags.StringVar(&c.prefsPath, "prefs", "", "preferences file (default ~/.config/shrew/prefs.toml)")
	flags.StringVar(&c.apiURL, "api-url", "", "code space API base URL")
	flags.StringVar(&c.logFile, "log-file", "", "log file (default ~/.local/state/shrew/shrew.log)")
	flags.DurationVar(&c.timeout, "timeout", 0, "per-request timeout, e.g. 5s")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log debug entries")

	cmd.AddCommand(
		c.openCmd(),
		c.spacesCmd(),
		c.piecesCmd(),
		c.pieceCmd(),
		c.compareCmd(),
	)
	return cmd
}

func (c *cli) open() error {
	s, err := app.Open(app.Options{
		ConfigPath: c.configPath,
		PrefsPath:  c.prefsPath,
		Overrides: config.Overrides{
			APIURL:         c.apiURL,
			RequestTimeout: c.timeout,
			LogFile:        c.logFile,
		},
		Verbose: c.verbose,
	})
	if err != nil {
		return err
	}
	c.session = s
	return nil
}

func (c *cli) close() {
	c.session.Close()
}
