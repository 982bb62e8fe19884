package dashboard

import (
	"strings"

	"mcdash/pkg/sdk"
)

const (
	NoWorldsMessage       = "No worlds uploaded yet"
	NoBackupsMessage      = "No backups yet"
	NoUsersMessage        = "No users"
	PropertiesPlaceholder = "# server.properties will be created when server first starts"
)

type WorldRow struct {
	Name   string `json:"name" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`
	// CanActivate is false exactly on the active world.
	CanActivate bool `json:"can_activate" yaml:"can_activate"`
}

// WorldRows builds one row per world in server order. An empty result means
// the empty-state message should be shown instead.
func WorldRows(worlds []string, active string) []WorldRow {
	if len(worlds) == 0 {
		return nil
	}
	rows := make([]WorldRow, 0, len(worlds))
	for _, w := range worlds {
		isActive := active != "" && w == active
		rows = append(rows, WorldRow{
			Name:        w,
			Active:      isActive,
			CanActivate: !isActive,
		})
	}
	return rows
}

type UserRow struct {
	Username string `json:"username" yaml:"username"`
	Current  bool   `json:"current" yaml:"current"`
	// CanDelete is false for the signed-in user so nobody deletes themselves.
	CanDelete bool `json:"can_delete" yaml:"can_delete"`
}

func UserRows(users []string, current string) []UserRow {
	if len(users) == 0 {
		return nil
	}
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		isCurrent := u == current
		rows = append(rows, UserRow{
			Username:  u,
			Current:   isCurrent,
			CanDelete: !isCurrent,
		})
	}
	return rows
}

type BackupRow struct {
	Name    string `json:"name" yaml:"name"`
	Size    string `json:"size" yaml:"size"`
	Created string `json:"created" yaml:"created"`
}

func BackupRows(backups []sdk.Backup) []BackupRow {
	if len(backups) == 0 {
		return nil
	}
	rows := make([]BackupRow, 0, len(backups))
	for _, b := range backups {
		rows = append(rows, BackupRow{
			Name:    b.Name,
			Size:    FormatSizeMB(b.SizeMB),
			Created: b.Created,
		})
	}
	return rows
}

type HealthBar struct {
	Visible bool
	CPU     string
	Memory  string
	Uptime  string
}

// HealthView hides the bar unless the server reports itself running.
func HealthView(h *sdk.Health) HealthBar {
	if h == nil || !h.Running() {
		return HealthBar{}
	}
	return HealthBar{
		Visible: true,
		CPU:     FormatCPU(h.CPUPercent),
		Memory:  FormatMemory(h.MemoryMB),
		Uptime:  FormatUptime(h.UptimeSeconds),
	}
}

// ConsoleText joins the whole buffer; every poll replaces it.
func ConsoleText(lines []string) string {
	return strings.Join(lines, "\n")
}

// PropertiesText is what the editor shows for a properties reply.
func PropertiesText(p *sdk.Properties) string {
	if p == nil || !p.Success {
		return PropertiesPlaceholder
	}
	return p.Content
}

// ConsoleDelta returns the lines of next that were not in prev. The console
// buffer is replaced on every poll and drops old lines from the front, so the
// longest suffix of prev that is also a prefix of next is the overlap.
func ConsoleDelta(prev, next []string) []string {
	for k := min(len(prev), len(next)); k > 0; k-- {
		if equalLines(prev[len(prev)-k:], next[:k]) {
			return next[k:]
		}
	}
	return next
}

func equalLines(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
