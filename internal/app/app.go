package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/config"
	"github.com/five82/shrew/internal/logging"
	"github.com/five82/shrew/internal/notify"
	"github.com/five82/shrew/internal/prefs"
	"github.com/five82/shrew/internal/route"
	"github.com/five82/shrew/internal/ui"
)

// Options configure a shrew session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shrew/prefs.toml
	Overrides  config.Overrides
	Verbose    bool
}

// Session holds the dependencies shared by the TUI and the one-shot
// commands.
type Session struct {
	Config config.Config
	Logger *zap.Logger
	Toasts *notify.Store
	Client *codespace.Client

	prefsPath string
}

// Open loads configuration, starts logging and builds the API client.
func Open(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load shrew config: %w", err)
	}
	cfg = cfg.Apply(opts.Overrides)

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Verbose: opts.Verbose})
	if err != nil {
		return nil, err
	}

	toasts := &notify.Store{}
	client, err := codespace.NewClient(cfg.APIURL,
		codespace.WithTimeout(cfg.RequestTimeout),
		codespace.WithNotifier(toasts),
		codespace.WithLogger(logger),
	)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	logger.Info("session started",
		zap.String("api_url", client.BaseURL()),
		zap.Duration("timeout", cfg.RequestTimeout),
		zap.Bool("verbose", opts.Verbose),
	)
	return &Session{
		Config:    cfg,
		Logger:    logger,
		Toasts:    toasts,
		Client:    client,
		prefsPath: opts.PrefsPath,
	}, nil
}

// Close flushes the logger.
func (s *Session) Close() {
	if s == nil || s.Logger == nil {
		return
	}
	_ = s.Logger.Sync()
}

// RunUI starts the TUI at start and blocks until the user quits or ctx ends.
func (s *Session) RunUI(ctx context.Context, start route.Route) error {
	userPrefs := prefs.Load(s.prefsPath)
	s.Logger.Debug("starting ui", zap.String("route", start.String()), zap.String("theme", userPrefs.Theme))

	err := ui.Run(ui.Options{
		Context:   ctx,
		API:       s.Client,
		Toasts:    s.Toasts,
		Logger:    s.Logger,
		Config:    s.Config,
		Prefs:     userPrefs,
		PrefsPath: s.prefsPath,
		Start:     start,
		APIURL:    s.Client.BaseURL(),
	})
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Run boots the shrew TUI until the context is cancelled.
func Run(ctx context.Context, opts Options, start route.Route) error {
	s, err := Open(opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.RunUI(ctx, start)
}
