package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"mcdash/internal/dashboard"
)

func (m model) View() string {
	if m.mode == modeLogin {
		return m.loginView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n")
	b.WriteString(baseStyle.Width(max(m.width-2, 20)).Render(m.contentView()))
	b.WriteString("\n")
	b.WriteString(m.notificationView())
	b.WriteString("\n")
	b.WriteString(footerStyle.Width(max(m.width-2, 20)).Render(m.helpView()))
	return b.String()
}

func (m model) headerView() string {
	title := headerStyle.Render("mcdash " + m.client.BaseURL())

	badge := dimStyle.Render("● unknown")
	if m.status != nil {
		if m.status.Running() {
			badge = runningStyle.Render("● running")
		} else {
			badge = stoppedStyle.Render("● stopped")
		}
		if !m.status.HasJar {
			badge += " " + errorStyle.Render("no server jar")
		}
	}
	if m.busy > 0 {
		badge += " " + m.spinner.View()
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge)

	hb := dashboard.HealthView(m.health)
	if !hb.Visible {
		return line
	}
	stats := fmt.Sprintf("CPU %s  MEM %s  UP %s", hb.CPU, hb.Memory, hb.Uptime)
	return line + "\n" + descStyle.Render(stats)
}

func (m model) tabsView() string {
	parts := make([]string, 0, len(dashboard.Tabs))
	for i, t := range dashboard.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.String())
		if m.tabs.IsActive(t) {
			parts = append(parts, activeTabStyle.Render(label))
			continue
		}
		parts = append(parts, tabStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) contentView() string {
	if m.mode == modeForm {
		return m.formView()
	}
	switch m.tabs.Active() {
	case dashboard.TabConfig:
		return m.configView()
	case dashboard.TabWorlds:
		return m.worldsView()
	case dashboard.TabConsole:
		return m.consoleView.View() + "\n" + m.commandView()
	case dashboard.TabUsers:
		return m.usersView()
	case dashboard.TabBackups:
		return m.backupsView()
	}
	return ""
}

func renderStatus(s statusLine) string {
	if s.text == "" {
		return ""
	}
	if s.ok {
		return successStyle.Render(s.text)
	}
	return errorStyle.Render(s.text)
}

func (m model) configView() string {
	var b strings.Builder
	b.WriteString(descStyle.Render("server.properties"))
	if m.mode == modeEditProperties {
		b.WriteString(dimStyle.Render("  (editing, ctrl+s to save, esc to stop)"))
	}
	b.WriteString("\n")
	b.WriteString(m.editor.View())
	if s := renderStatus(m.propertiesStatus); s != "" {
		b.WriteString("\n" + s)
	}
	if s := renderStatus(m.jarStatus); s != "" {
		b.WriteString("\n" + s)
	}
	return b.String()
}

func (m model) worldsView() string {
	rows := m.worldRows()
	var b strings.Builder
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render(dashboard.NoWorldsMessage))
	}
	for i, r := range rows {
		line := "  " + r.Name
		if r.Active {
			line = activeMarkStyle.Render("✓ ") + r.Name + dimStyle.Render(" (active)")
		}
		if i == m.worldCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if s := renderStatus(m.worldStatus); s != "" {
		b.WriteString("\n" + s)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) commandView() string {
	if m.mode == modeCommand {
		return "> " + m.commandInput.View()
	}
	return dimStyle.Render("press i to send a command")
}

func (m model) usersView() string {
	rows := m.userRows()
	if len(rows) == 0 {
		return dimStyle.Render(dashboard.NoUsersMessage)
	}
	var b strings.Builder
	for i, r := range rows {
		line := "  " + r.Username
		if r.Current {
			line += dimStyle.Render(" (you)")
		}
		if i == m.userCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if m.mode == modeConfirmDelete {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Delete user %s? (y/n)", m.pendingDelete)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) backupsView() string {
	if len(m.backups) == 0 {
		return dimStyle.Render(dashboard.NoBackupsMessage)
	}
	return m.backupTable.View()
}

func (m model) formView() string {
	f := m.forms[m.activeForm]
	var b strings.Builder
	b.WriteString(headerStyle.Render(f.title) + "\n\n")
	for i, in := range f.inputs {
		b.WriteString(descStyle.Render(f.labels[i]) + "\n")
		b.WriteString(in.View() + "\n\n")
	}
	if f.err != "" {
		b.WriteString(errorStyle.Render(f.err) + "\n")
	}
	switch m.activeForm {
	case formUploadJar:
		if s := renderStatus(m.jarStatus); s != "" {
			b.WriteString(s + "\n")
		}
	case formUploadWorld:
		if s := renderStatus(m.worldStatus); s != "" {
			b.WriteString(s + "\n")
		}
	}
	b.WriteString(dimStyle.Render("enter: next/submit • tab: switch field • esc: cancel"))
	return b.String()
}

func (m model) notificationView() string {
	n, ok := m.notify.Current()
	if !ok {
		return ""
	}
	if n.Level == dashboard.LevelError {
		return errorStyle.Render("✗ " + n.Message)
	}
	return successStyle.Render("✓ " + n.Message)
}

func (m model) helpView() string {
	switch m.mode {
	case modeEditProperties:
		return renderHelp([]key.Binding{m.keys.save, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done"))})
	case modeCommand:
		return renderHelp([]key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		})
	}
	return renderHelp(m.keys.tabHelp(m.tabs.Active()))
}

func (m model) loginView() string {
	l := m.login
	var b strings.Builder
	b.WriteString(headerStyle.Render("mcdash login") + "\n")
	b.WriteString(dimStyle.Render(m.client.BaseURL()) + "\n\n")
	b.WriteString(descStyle.Render("Username") + "\n")
	b.WriteString(l.username.View() + "\n\n")
	b.WriteString(descStyle.Render("Password") + "\n")
	b.WriteString(l.password.View() + "\n\n")
	if l.err != "" {
		b.WriteString(errorStyle.Render(l.err) + "\n")
	}
	if l.pending {
		b.WriteString(m.spinner.View() + " signing in...\n")
	}
	b.WriteString(dimStyle.Render("enter: sign in • tab: switch field • esc: quit"))
	return baseStyle.Render(b.String())
}
