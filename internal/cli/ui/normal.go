package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mcdash/internal/dashboard"
)

// switchTab activates t and fetches what it shows. Reselecting the active
// tab fetches again. No timer is touched here.
func (m model) switchTab(t dashboard.Tab) (tea.Model, tea.Cmd) {
	prev, next := m.tabs.SetActiveTab(t)
	m.log.WithField("from", prev.String()).WithField("to", next.String()).Debug("tab switch")
	if next == dashboard.TabConsole {
		m.consoleView.GotoBottom()
	}
	return m, m.refresh(dashboard.RefreshesFor(next)...)
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.quit):
		return m, tea.Quit
	case key.Matches(msg, k.next):
		return m.switchTab(m.tabs.Next(1))
	case key.Matches(msg, k.prev):
		return m.switchTab(m.tabs.Next(-1))
	case key.Matches(msg, k.refresh):
		return m, m.refresh(dedupe(append([]dashboard.Refresh{dashboard.RefreshStatus}, dashboard.RefreshesFor(m.tabs.Active())...))...)
	case key.Matches(msg, k.start):
		return m.startServer()
	case key.Matches(msg, k.stop):
		return m.stopServer()
	case key.Matches(msg, k.restart):
		return m.restartServer()
	case key.Matches(msg, k.logout):
		return m.logout()
	}

	for i, tk := range k.tabKeys {
		if key.Matches(msg, tk) {
			return m.switchTab(dashboard.Tabs[i])
		}
	}

	switch m.tabs.Active() {
	case dashboard.TabConfig:
		return m.updateConfigTab(msg)
	case dashboard.TabWorlds:
		return m.updateWorldsTab(msg)
	case dashboard.TabConsole:
		return m.updateConsoleTab(msg)
	case dashboard.TabUsers:
		return m.updateUsersTab(msg)
	case dashboard.TabBackups:
		if key.Matches(msg, k.backup) {
			return m.createBackup()
		}
		var cmd tea.Cmd
		m.backupTable, cmd = m.backupTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateConfigTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.edit):
		m.mode = modeEditProperties
		m.propertiesStatus = statusLine{}
		cmd := m.editor.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.save):
		return m.saveProperties()
	case key.Matches(msg, m.keys.uploadJar):
		m.jarStatus = statusLine{}
		cmd := m.openForm(formUploadJar)
		return m, cmd
	}
	return m, nil
}

func (m model) worldRows() []dashboard.WorldRow {
	if m.status == nil {
		return nil
	}
	return dashboard.WorldRows(m.status.Worlds, m.status.ActiveWorld)
}

func (m model) updateWorldsTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.worldRows()
	switch {
	case key.Matches(msg, m.keys.up):
		m.worldCursor = clampCursor(m.worldCursor-1, len(rows))
	case key.Matches(msg, m.keys.down):
		m.worldCursor = clampCursor(m.worldCursor+1, len(rows))
	case key.Matches(msg, m.keys.setWorld):
		if len(rows) == 0 {
			return m, nil
		}
		row := rows[clampCursor(m.worldCursor, len(rows))]
		if !row.CanActivate {
			return m, nil
		}
		return m.setActiveWorld(row.Name)
	case key.Matches(msg, m.keys.uploadWorld):
		m.worldStatus = statusLine{}
		cmd := m.openForm(formUploadWorld)
		return m, cmd
	}
	return m, nil
}

func (m model) updateConsoleTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.command) {
		m.mode = modeCommand
		cmd := m.commandInput.Focus()
		return m, cmd
	}
	var cmd tea.Cmd
	m.consoleView, cmd = m.consoleView.Update(msg)
	return m, cmd
}

func (m model) userRows() []dashboard.UserRow {
	if m.users == nil {
		return nil
	}
	return dashboard.UserRows(m.users.Users, m.users.CurrentUser)
}

func (m model) updateUsersTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.userRows()
	switch {
	case key.Matches(msg, m.keys.up):
		m.userCursor = clampCursor(m.userCursor-1, len(rows))
	case key.Matches(msg, m.keys.down):
		m.userCursor = clampCursor(m.userCursor+1, len(rows))
	case key.Matches(msg, m.keys.addUser):
		cmd := m.openForm(formAddUser)
		return m, cmd
	case key.Matches(msg, m.keys.password):
		cmd := m.openForm(formChangePassword)
		return m, cmd
	case key.Matches(msg, m.keys.deleteUser):
		if len(rows) == 0 {
			return m, nil
		}
		row := rows[clampCursor(m.userCursor, len(rows))]
		if !row.CanDelete {
			return m, nil
		}
		m.pendingDelete = row.Username
		m.mode = modeConfirmDelete
	}
	return m, nil
}

func (m model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	username := m.pendingDelete
	switch msg.String() {
	case "y", "Y":
		m.pendingDelete = ""
		m.mode = modeNormal
		return m.deleteUser(username)
	case "n", "N", "esc":
		m.pendingDelete = ""
		m.mode = modeNormal
		return m, m.showNotification("Deletion cancelled.", dashboard.LevelSuccess)
	}
	return m, nil
}

func (m model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		m.editor.Blur()
		m.mode = modeNormal
		return m, nil
	case key.Matches(msg, m.keys.save):
		m.editor.Blur()
		m.mode = modeNormal
		return m.saveProperties()
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commandInput.Blur()
		m.mode = modeNormal
		return m, nil
	case "enter":
		return m.sendCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}
