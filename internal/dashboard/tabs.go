package dashboard

import (
	"fmt"
	"strings"
)

type Tab int

const (
	TabConfig Tab = iota
	TabWorlds
	TabConsole
	TabUsers
	TabBackups
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabConfig, TabWorlds, TabConsole, TabUsers, TabBackups}

var tabNames = map[Tab]string{
	TabConfig:  "config",
	TabWorlds:  "worlds",
	TabConsole: "console",
	TabUsers:   "users",
	TabBackups: "backups",
}

func (t Tab) String() string {
	if name, ok := tabNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tab(%d)", int(t))
}

func (t Tab) Valid() bool {
	_, ok := tabNames[t]
	return ok
}

func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range tabNames {
		if name == s {
			return t, nil
		}
	}
	return TabConfig, fmt.Errorf("unknown tab %q", s)
}

// Refresh names one fetch-and-render cycle.
type Refresh int

const (
	RefreshStatus Refresh = iota
	RefreshProperties
	RefreshWorlds
	RefreshConsole
	RefreshHealth
	RefreshUsers
	RefreshBackups
)

func (r Refresh) String() string {
	switch r {
	case RefreshStatus:
		return "status"
	case RefreshProperties:
		return "properties"
	case RefreshWorlds:
		return "worlds"
	case RefreshConsole:
		return "console"
	case RefreshHealth:
		return "health"
	case RefreshUsers:
		return "users"
	case RefreshBackups:
		return "backups"
	}
	return fmt.Sprintf("refresh(%d)", int(r))
}

// RefreshesFor returns the refreshes triggered by activating tab t.
func RefreshesFor(t Tab) []Refresh {
	switch t {
	case TabConfig:
		return []Refresh{RefreshProperties}
	case TabWorlds:
		return []Refresh{RefreshWorlds}
	case TabConsole:
		return []Refresh{RefreshConsole, RefreshHealth}
	case TabUsers:
		return []Refresh{RefreshUsers}
	case TabBackups:
		return []Refresh{RefreshBackups}
	}
	return nil
}

// TabController owns the active tab. Exactly one tab is active at a time.
type TabController struct {
	active Tab
}

func NewTabController(initial Tab) *TabController {
	if !initial.Valid() {
		initial = TabConfig
	}
	return &TabController{active: initial}
}

func (c *TabController) Active() Tab {
	return c.active
}

func (c *TabController) IsActive(t Tab) bool {
	return c.active == t
}

// SetActiveTab activates t and reports the previous and new tab. Selecting
// the current tab again is allowed; an invalid tab leaves the state unchanged.
func (c *TabController) SetActiveTab(t Tab) (prev, next Tab) {
	prev = c.active
	if t.Valid() {
		c.active = t
	}
	return prev, c.active
}

// Next cycles forward (delta 1) or backward (delta -1) through Tabs.
func (c *TabController) Next(delta int) Tab {
	n := len(Tabs)
	idx := (int(c.active) + delta%n + n) % n
	return Tabs[idx]
}
