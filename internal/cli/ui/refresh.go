package ui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mcdash/internal/dashboard"
	"mcdash/pkg/sdk"
)

// refreshMsg carries one fetch result. gen is the generation issued when the
// fetch started; only the latest generation per kind is applied.
type refreshMsg struct {
	kind    dashboard.Refresh
	gen     uint64
	payload interface{}
	err     error
}

type delayedRefreshMsg struct {
	kinds []dashboard.Refresh
}

func (m model) refresh(kinds ...dashboard.Refresh) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(kinds))
	for _, k := range kinds {
		cmds = append(cmds, m.fetch(k, m.gens.Issue(k)))
	}
	return tea.Batch(cmds...)
}

func refreshAfter(d time.Duration, kinds ...dashboard.Refresh) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return delayedRefreshMsg{kinds: kinds}
	})
}

func (m model) fetch(kind dashboard.Refresh, gen uint64) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		msg := refreshMsg{kind: kind, gen: gen}
		switch kind {
		case dashboard.RefreshStatus, dashboard.RefreshWorlds:
			msg.payload, msg.err = client.Status(ctx)
		case dashboard.RefreshHealth:
			msg.payload, msg.err = client.Health(ctx)
		case dashboard.RefreshConsole:
			msg.payload, msg.err = client.Console(ctx)
		case dashboard.RefreshProperties:
			msg.payload, msg.err = client.Properties(ctx)
		case dashboard.RefreshUsers:
			msg.payload, msg.err = client.ListUsers(ctx)
		case dashboard.RefreshBackups:
			msg.payload, msg.err = client.ListBackups(ctx)
		}
		return msg
	}
}

// applyRefresh stores one payload. A failed fetch keeps whatever was shown
// before and only reports it.
func (m model) applyRefresh(msg refreshMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, sdk.ErrUnauthorized) {
		return m.toLogin()
	}

	if !m.gens.Current(msg.kind, msg.gen) {
		m.log.WithField("refresh", msg.kind.String()).Debug("dropping stale response")
		return m, nil
	}

	if msg.err != nil {
		m.log.WithError(msg.err).WithField("refresh", msg.kind.String()).Warn("refresh failed")
		return m, m.showNotification("Failed to load "+msg.kind.String(), dashboard.LevelError)
	}

	switch p := msg.payload.(type) {
	case *sdk.Status:
		m.status = p
		if m.status != nil {
			m.worldCursor = clampCursor(m.worldCursor, len(m.status.Worlds))
		}
	case *sdk.Health:
		m.health = p
	case []string:
		m.console = p
		m.consoleView.SetContent(dashboard.ConsoleText(p))
		m.consoleView.GotoBottom()
	case *sdk.Properties:
		m.properties = p
		m.editor.SetValue(dashboard.PropertiesText(p))
	case *sdk.Users:
		m.users = p
		if m.users != nil {
			m.userCursor = clampCursor(m.userCursor, len(m.users.Users))
		}
	case []sdk.Backup:
		m.backups = p
		m.updateBackupTable()
	}
	return m, nil
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
