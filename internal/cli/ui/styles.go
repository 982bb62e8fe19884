package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  = lipgloss.Color("62")
	colorSelect  = lipgloss.Color("57")
	colorLight   = lipgloss.Color("230")
	colorMuted   = lipgloss.Color("241")
	colorDim     = lipgloss.Color("240")
	colorGood    = lipgloss.Color("42")
	colorBad     = lipgloss.Color("196")
	colorStopped = lipgloss.Color("160")
)

// Frame.
var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorLight).
			Background(colorAccent).
			Bold(true).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorDim).
			Align(lipgloss.Center)

	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTabStyle = tabStyle.Foreground(colorLight).Background(colorSelect).Bold(true)
)

// Text.
var (
	keyStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	descStyle = lipgloss.NewStyle().Foreground(colorMuted)
	dimStyle  = lipgloss.NewStyle().Foreground(colorDim)

	runningStyle = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	stoppedStyle = lipgloss.NewStyle().Foreground(colorStopped).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorBad).Bold(true)

	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(colorSelect)
	activeMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ae60"))
)
