package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shrew/internal/logtail"
)

const activityLines = 400

var activityLevels = []string{"debug", "info", "warn", "error"}

// activityState holds the in-app view of shrew's own log.
type activityState struct {
	entries  []logtail.Entry
	err      error
	loaded   bool
	minLevel string
	viewport viewport.Model
	watcher  *logtail.Watcher
}

func newActivityState() activityState {
	return activityState{minLevel: "info"}
}

func (a *activityState) startWatch(path string) error {
	a.stopWatch()
	w, err := logtail.Watch(path)
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

func (a *activityState) stopWatch() {
	if a.watcher != nil {
		_ = a.watcher.Close()
		a.watcher = nil
	}
}

// waitActivityCmd blocks until the log is written again. A closed watcher
// ends the wait without a message.
func (m Model) waitActivityCmd() tea.Cmd {
	w, ctx, seq := m.activity.watcher, m.ctx, m.seq
	if w == nil {
		return nil
	}
	next := w.Next()
	return func() tea.Msg {
		if !w.WaitFor(ctx, next) {
			return nil
		}
		return activityChangedMsg{seq: seq}
	}
}

func (m Model) readActivityCmd() tea.Cmd {
	path := m.cfg.LogFile
	return func() tea.Msg {
		lines, err := logtail.Read(path, activityLines)
		if err != nil {
			return activityMsg{err: err}
		}
		return activityMsg{entries: logtail.ParseLines(lines)}
	}
}

func (m *Model) handleActivity(msg activityMsg) {
	m.activity.loaded = true
	m.activity.err = msg.err
	if msg.err == nil {
		m.activity.entries = msg.entries
	}
	m.refreshActivity()
	m.activity.viewport.GotoBottom()
}

func (m *Model) resizeActivity() {
	w := max(m.width-4, 10)
	h := max(m.contentHeight()-2, 1)
	if m.activity.viewport.Width == 0 && m.activity.viewport.Height == 0 {
		m.activity.viewport = viewport.New(w, h)
	} else {
		m.activity.viewport.Width = w
		m.activity.viewport.Height = h
	}
	m.refreshActivity()
}

func (m *Model) refreshActivity() {
	entries := logtail.AtLeast(m.activity.entries, m.activity.minLevel)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, m.formatEntry(e))
	}
	m.activity.viewport.SetContent(strings.Join(lines, "\n"))
}

// formatEntry renders one log entry as a single line.
func (m Model) formatEntry(e logtail.Entry) string {
	styles := m.theme.Styles()
	if e.Raw != "" {
		return styles.FaintText.Render(e.Raw)
	}

	ts := "--:--:--"
	if !e.Time.IsZero() {
		ts = e.Time.Local().Format("15:04:05")
	}
	level := lipgloss.NewStyle().Width(5).Bold(true).Foreground(lipgloss.Color(m.levelColor(e.Level))).Render(e.Level)

	var fields []string
	for _, k := range e.FieldKeys() {
		if k == "component" {
			continue
		}
		fields = append(fields, styles.FaintText.Render(k+"=")+styles.MutedText.Render(e.Field(k)))
	}
	line := styles.MutedText.Render(ts) + " " + level + " " + styles.Text.Render(e.Message)
	if len(fields) > 0 {
		line += "  " + strings.Join(fields, " ")
	}
	return line
}

func (m Model) levelColor(level string) string {
	switch strings.ToUpper(level) {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return m.theme.Danger
	case "WARN":
		return m.theme.Warning
	case "DEBUG":
		return m.theme.Faint
	default:
		return m.theme.Info
	}
}

func nextLevel(current string) string {
	for i, l := range activityLevels {
		if l == current {
			return activityLevels[(i+1)%len(activityLevels)]
		}
	}
	return activityLevels[0]
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reload):
		return m, m.readActivityCmd()
	case key.Matches(msg, m.keys.CycleLevel):
		m.activity.minLevel = nextLevel(m.activity.minLevel)
		m.refreshActivity()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.activity.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activity.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.activity.viewport, cmd = m.activity.viewport.Update(msg)
	return m, cmd
}

// renderActivity renders the log view.
func (m Model) renderActivity() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	title := fmt.Sprintf("Activity (%s+)", m.activity.minLevel)
	var body string
	switch {
	case !m.activity.loaded:
		body = " " + m.spinner.View() + styles.MutedText.Render(" Reading log...")
	case m.activity.err != nil:
		body = " " + styles.DangerText.Render(m.activity.err.Error())
	case len(m.activity.entries) == 0:
		body = " " + styles.MutedText.Render("Nothing logged yet: "+truncateMiddle(m.cfg.LogFile, 60))
	default:
		body = m.activity.viewport.View()
	}
	return m.renderBox(title, body, m.width, m.contentHeight(), true)
}
