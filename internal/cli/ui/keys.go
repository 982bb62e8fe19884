package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"mcdash/internal/dashboard"
)

type keyMap struct {
	quit    key.Binding
	next    key.Binding
	prev    key.Binding
	tabKeys []key.Binding
	refresh key.Binding
	start   key.Binding
	stop    key.Binding
	restart key.Binding
	logout  key.Binding
	up      key.Binding
	down    key.Binding

	edit        key.Binding
	save        key.Binding
	uploadJar   key.Binding
	setWorld    key.Binding
	uploadWorld key.Binding
	command     key.Binding
	addUser     key.Binding
	deleteUser  key.Binding
	password    key.Binding
	backup      key.Binding
}

func newKeyMap() keyMap {
	tabKeys := make([]key.Binding, 0, len(dashboard.Tabs))
	for i, t := range dashboard.Tabs {
		k := string(rune('1' + i))
		tabKeys = append(tabKeys, key.NewBinding(key.WithKeys(k), key.WithHelp(k, t.String())))
	}

	return keyMap{
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		tabKeys: tabKeys,
		refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),

		edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		uploadJar:   key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "upload jar")),
		setWorld:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "set active")),
		uploadWorld: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload world")),
		command:     key.NewBinding(key.WithKeys("i", ":"), key.WithHelp("i", "command")),
		addUser:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add user")),
		deleteUser:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		password:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "password")),
		backup:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "backup now")),
	}
}

// tabHelp lists the bindings shown in the footer for tab t.
func (k keyMap) tabHelp(t dashboard.Tab) []key.Binding {
	var local []key.Binding
	switch t {
	case dashboard.TabConfig:
		local = []key.Binding{k.edit, k.save, k.uploadJar}
	case dashboard.TabWorlds:
		local = []key.Binding{k.up, k.down, k.setWorld, k.uploadWorld}
	case dashboard.TabConsole:
		local = []key.Binding{k.command}
	case dashboard.TabUsers:
		local = []key.Binding{k.up, k.down, k.addUser, k.deleteUser, k.password}
	case dashboard.TabBackups:
		local = []key.Binding{k.backup}
	}
	return append(local, k.start, k.stop, k.restart, k.next, k.logout, k.quit)
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+descStyle.Render(": "+h.Desc))
	}
	return strings.Join(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(" • "))
}
