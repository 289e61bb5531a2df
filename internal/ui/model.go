package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/config"
	"github.com/five82/shrew/internal/notify"
	"github.com/five82/shrew/internal/pager"
	"github.com/five82/shrew/internal/prefs"
	"github.com/five82/shrew/internal/render"
	"github.com/five82/shrew/internal/route"
	"github.com/five82/shrew/internal/selection"
)

const (
	toastTick      = 500 * time.Millisecond
	defaultWidth   = 100
	defaultHeight  = 30
	maxHistory     = 32
	markdownOnDark = "dark"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	API       codespace.API
	Toasts    *notify.Store
	Logger    *zap.Logger
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Start     route.Route
	APIURL    string

	// MarkdownStyle overrides the glamour style for descriptions.
	MarkdownStyle string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	api           codespace.API
	toasts        *notify.Store
	logger        *zap.Logger
	cfg           config.Config
	prefs         prefs.Prefs
	prefsPath     string
	apiURL        string
	markdownStyle string
	renderer      *render.Renderer

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	spinner  spinner.Model
	initCmd  tea.Cmd

	// Navigation
	route   route.Route
	history []route.Route
	seq     uint64

	// Lists
	spaces    *listView[codespace.Space]
	pieces    *listView[codespace.PieceSummary]
	selection *selection.Set
	spaceInfo spaceInfo

	// Views
	piece    pieceState
	cmp      compareState
	form     *form
	dialog   *deleteDialog
	activity activityState
}

// New creates a new Bubble Tea model positioned at opts.Start.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	toasts := opts.Toasts
	if toasts == nil {
		toasts = &notify.Store{}
	}
	cfg := opts.Config
	if cfg.PrefetchThreshold <= 0 {
		cfg.PrefetchThreshold = config.Defaults().PrefetchThreshold
	}
	if cfg.CompareConcurrency <= 0 {
		cfg.CompareConcurrency = config.Defaults().CompareConcurrency
	}
	p := opts.Prefs
	if p.Theme == "" {
		p.Theme = prefs.Defaults().Theme
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	markdownStyle := opts.MarkdownStyle
	if markdownStyle == "" {
		markdownStyle = markdownOnDark
	}

	theme := GetTheme(p.Theme)
	api := opts.API

	spacesLoader := pager.New(pager.SpacesKey(),
		func(ctx context.Context, _ pager.Key, page int) ([]codespace.Space, error) {
			return api.ListSpaces(ctx, page)
		},
		pager.WithNotifier(toasts),
		pager.WithFailureMessage("Failed to load code spaces"),
	)
	piecesLoader := pager.New(pager.PiecesKey(0),
		func(ctx context.Context, key pager.Key, page int) ([]codespace.PieceSummary, error) {
			return api.ListPieces(ctx, key.ParentID, page)
		},
		pager.WithNotifier(toasts),
		pager.WithFailureMessage("Failed to load code pieces"),
	)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	m := Model{
		ctx:           ctx,
		api:           api,
		toasts:        toasts,
		logger:        logger,
		cfg:           cfg,
		prefs:         p,
		prefsPath:     prefsPath,
		apiURL:        opts.APIURL,
		markdownStyle: markdownStyle,
		renderer:      render.New(markdownStyle, theme.CodeStyle),
		keys:          DefaultKeyMap(),
		theme:         theme,
		width:         defaultWidth,
		height:        defaultHeight,
		spinner:       sp,
		spaces:        newListView(spacesLoader),
		pieces:        newListView(piecesLoader),
		selection:     &selection.Set{},
		activity:      newActivityState(),
	}
	m.initCmd = m.enter(opts.Start)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick, toastTickCmd())
}

// Route returns the route currently shown.
func (m Model) Route() route.Route {
	return m.route
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, m.fillCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastTickMsg:
		return m, toastTickCmd()

	case spacesPageMsg:
		if m.spaces.loader.Finish(msg.ticket, msg.items, msg.err) {
			m.logPage(msg.ticket, len(msg.items), msg.err)
			m.spaces.clamp(m.listRows())
		}
		return m, m.moreSpaces(triggerAuto)

	case piecesPageMsg:
		if m.pieces.loader.Finish(msg.ticket, msg.items, msg.err) {
			m.logPage(msg.ticket, len(msg.items), msg.err)
			m.pieces.clamp(m.listRows())
		}
		return m, m.morePieces(triggerAuto)

	case spaceLoadedMsg:
		if msg.seq == m.seq {
			m.handleSpaceLoaded(msg)
		}
		return m, nil

	case pieceLoadedMsg:
		if msg.seq == m.seq {
			m.handlePieceLoaded(msg)
		}
		return m, nil

	case compareLoadedMsg:
		if msg.seq == m.seq {
			m.handleCompareLoaded(msg)
		}
		return m, nil

	case prefillMsg:
		if msg.seq == m.seq {
			m.handlePrefill(msg)
		}
		return m, nil

	case submitDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.handleSubmitDone(msg)

	case deleteDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.handleDeleteDone(msg)

	case activityMsg:
		m.handleActivity(msg)
		return m, nil

	case activityChangedMsg:
		if msg.seq != m.seq || m.activity.watcher == nil {
			return m, nil
		}
		return m, tea.Batch(m.readActivityCmd(), m.waitActivityCmd())

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(msg.err))
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.dialog != nil {
		return m.renderDeleteDialog()
	}

	if m.cmp.showInfo {
		return m.renderDescription()
	}

	return m.renderMain()
}

// handleKey processes keyboard input. Overlays get the first look, then
// forms, then the global bindings, then the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.dialog != nil {
		return m.handleDialogKey(msg)
	}

	if m.cmp.showInfo {
		m.cmp.showInfo = false
		return m, nil
	}

	if m.form != nil {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "T":
		return m, m.cycleTheme()
	case "L":
		return m, m.navigate(route.Route{Kind: route.ActivityLog})
	case "H":
		return m, m.navigate(route.Home())
	case "esc", "backspace":
		return m, m.back()
	}

	switch m.route.Kind {
	case route.Spaces:
		return m.handleSpacesKey(msg)
	case route.Space:
		return m.handleSpaceKey(msg)
	case route.Piece:
		return m.handlePieceKey(msg)
	case route.Compare:
		return m.handleCompareKey(msg)
	case route.ActivityLog:
		return m.handleActivityKey(msg)
	}
	return m, nil
}

// updateFocused forwards other messages (cursor blink and the like) to the
// focused form input.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m, m.form.update(msg)
	}
	if m.dialog != nil {
		var cmd tea.Cmd
		m.dialog.input, cmd = m.dialog.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resize updates every size-dependent component.
func (m *Model) resize() {
	m.spaces.clamp(m.listRows())
	m.pieces.clamp(m.listRows())
	m.resizePiece()
	m.resizeActivity()
	if m.form != nil {
		m.form.setWidth(m.contentWidth())
	}
}

// fillCmd requests another page when the visible list is not full.
func (m *Model) fillCmd() tea.Cmd {
	switch m.route.Kind {
	case route.Spaces:
		return m.moreSpaces(triggerAuto)
	case route.Space:
		return m.morePieces(triggerAuto)
	}
	return nil
}

func (m *Model) moreSpaces(trig pageTrigger) tea.Cmd {
	return nextPage(m.ctx, m.spaces, m.listRows(), m.cfg.PrefetchThreshold, trig,
		func(t pager.Ticket, items []codespace.Space, err error) tea.Msg {
			return spacesPageMsg{ticket: t, items: items, err: err}
		})
}

func (m *Model) morePieces(trig pageTrigger) tea.Cmd {
	return nextPage(m.ctx, m.pieces, m.listRows(), m.cfg.PrefetchThreshold, trig,
		func(t pager.Ticket, items []codespace.PieceSummary, err error) tea.Msg {
			return piecesPageMsg{ticket: t, items: items, err: err}
		})
}

func (m Model) logPage(t pager.Ticket, n int, err error) {
	if err != nil {
		m.logger.Warn("page failed", zap.String("list", t.Key().String()), zap.Int("page", t.Page()), zap.Error(err))
		return
	}
	m.logger.Debug("page loaded", zap.String("list", t.Key().String()), zap.Int("page", t.Page()), zap.Int("items", n))
}

// listRows is the number of list rows that fit on screen.
func (m Model) listRows() int {
	// header, command bar, box borders, column header, status line
	rows := m.height - 6
	if m.route.Kind == route.Space {
		rows-- // space summary line
	}
	return max(rows, 1)
}

// contentWidth is the width inside a full-width box.
func (m Model) contentWidth() int {
	return max(m.width-2, 10)
}

// contentHeight is the height between header and command bar.
func (m Model) contentHeight() int {
	return max(m.height-2, 3)
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() tea.Cmd {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	m.renderer = render.New(m.markdownStyle, m.theme.CodeStyle)
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.refreshPiece()
	m.refreshCompare()
	return m.savePrefsCmd()
}

func (m Model) savePrefsCmd() tea.Cmd {
	path, p := m.prefsPath, m.prefs
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// Commands

func toastTickCmd() tea.Cmd {
	return tea.Tick(toastTick, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(contextOrBackground(opts.Context)))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.activity.stopWatch()
	}
	return err
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
