package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"mcdash/internal/dashboard"
	"mcdash/pkg/sdk"
)

type viewMode int

const (
	modeNormal viewMode = iota
	modeLogin
	modeEditProperties
	modeCommand
	modeForm
	modeConfirmDelete
)

type Options struct {
	Logger              logrus.FieldLogger
	Username            string
	InitialTab          dashboard.Tab
	FastInterval        time.Duration
	SlowInterval        time.Duration
	NotificationTimeout time.Duration
	// StartAtLogin shows the login screen first, for when no session is
	// stored.
	StartAtLogin bool
	// OnLogin runs after a successful login with the username used.
	OnLogin func(username string)
}

// statusLine is the inline result shown under an upload or save form.
type statusLine struct {
	text string
	ok   bool
}

type model struct {
	client Client
	ctx    context.Context
	log    logrus.FieldLogger
	keys   keyMap
	opts   Options

	tabs          *dashboard.TabController
	poller        dashboard.Poller
	gens          *dashboard.Generations
	notify        *dashboard.NotificationCenter
	notifyTimeout time.Duration

	// Latest payload per refresh kind. The view is a projection of these.
	status     *sdk.Status
	health     *sdk.Health
	console    []string
	users      *sdk.Users
	backups    []sdk.Backup
	properties *sdk.Properties

	jarStatus        statusLine
	worldStatus      statusLine
	propertiesStatus statusLine

	mode          viewMode
	worldCursor   int
	userCursor    int
	pendingDelete string
	forms         map[formKind]*form
	activeForm    formKind
	login         *loginForm

	consoleView  viewport.Model
	backupTable  table.Model
	commandInput textinput.Model
	editor       textarea.Model
	spinner      spinner.Model
	busy         int

	width  int
	height int
}

func newModel(client Client, opts Options) model {
	if opts.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		opts.Logger = discard
	}
	if opts.NotificationTimeout <= 0 {
		opts.NotificationTimeout = dashboard.NotificationTimeout
	}

	ci := textinput.New()
	ci.Placeholder = "Type a command..."
	ci.CharLimit = 256
	ci.Width = 40

	ed := textarea.New()
	ed.Placeholder = dashboard.PropertiesPlaceholder
	ed.ShowLineNumbers = true
	ed.CharLimit = 0
	ed.MaxHeight = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := model{
		client:        client,
		ctx:           context.Background(),
		log:           opts.Logger,
		keys:          newKeyMap(),
		opts:          opts,
		tabs:          dashboard.NewTabController(opts.InitialTab),
		poller:        dashboard.NewPoller(opts.FastInterval, opts.SlowInterval),
		gens:          dashboard.NewGenerations(),
		notify:        &dashboard.NotificationCenter{},
		notifyTimeout: opts.NotificationTimeout,
		forms:         newForms(),
		login:         newLoginForm(opts.Username),
		consoleView:   viewport.New(0, 0),
		backupTable:   newBackupTable(),
		commandInput:  ci,
		editor:        ed,
		spinner:       sp,
	}
	if opts.StartAtLogin {
		m.mode = modeLogin
		m.login.focus()
	}
	return m
}

// RunDashboard blocks until the user quits.
func RunDashboard(client Client, opts Options) error {
	p := tea.NewProgram(newModel(client, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

type fastTickMsg time.Time
type slowTickMsg time.Time
type hideNotificationMsg struct{}

func (m model) fastTick() tea.Cmd {
	return tea.Tick(m.poller.Fast, func(t time.Time) tea.Msg {
		return fastTickMsg(t)
	})
}

func (m model) slowTick() tea.Cmd {
	return tea.Tick(m.poller.Slow, func(t time.Time) tea.Msg {
		return slowTickMsg(t)
	})
}

// initialRefreshes is the page-load pass: status, properties and worlds,
// plus whatever the initial tab needs.
func (m model) initialRefreshes() []dashboard.Refresh {
	kinds := []dashboard.Refresh{dashboard.RefreshStatus, dashboard.RefreshProperties, dashboard.RefreshWorlds}
	return dedupe(append(kinds, dashboard.RefreshesFor(m.tabs.Active())...))
}

// Init starts both timers. They are rescheduled only by their own tick
// handlers, so the number of live timers never grows.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fastTick(), m.slowTick()}
	if m.mode == modeLogin {
		cmds = append(cmds, textinput.Blink)
	} else {
		cmds = append(cmds, m.refresh(m.initialRefreshes()...))
	}
	return tea.Batch(cmds...)
}

// showNotification fills the single notification slot and schedules a hide.
func (m model) showNotification(message string, level dashboard.Level) tea.Cmd {
	m.notify.Show(message, level)
	return tea.Tick(m.notifyTimeout, func(time.Time) tea.Msg {
		return hideNotificationMsg{}
	})
}

func (m model) showResult(res *sdk.Result) tea.Cmd {
	level := dashboard.LevelError
	if res.Success {
		level = dashboard.LevelSuccess
	}
	return m.showNotification(res.Message, level)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case fastTickMsg:
		cmds := []tea.Cmd{m.fastTick()}
		if m.mode != modeLogin {
			cmds = append(cmds, m.refresh(m.poller.FastRefreshes(m.tabs.Active())...))
		}
		return m, tea.Batch(cmds...)

	case slowTickMsg:
		cmds := []tea.Cmd{m.slowTick()}
		if m.mode != modeLogin {
			cmds = append(cmds, m.refresh(m.poller.SlowRefreshes()...))
		}
		return m, tea.Batch(cmds...)

	case hideNotificationMsg:
		m.notify.Hide()
		return m, nil

	case refreshMsg:
		return m.applyRefresh(msg)

	case delayedRefreshMsg:
		if m.mode == modeLogin {
			return m, nil
		}
		return m, m.refresh(msg.kinds...)

	case actionMsg:
		return m.applyAction(msg)

	case loginMsg:
		return m.applyLogin(msg)

	case logoutMsg:
		return m.applyLogout(msg)

	case spinner.TickMsg:
		if m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeLogin:
			return m.updateLogin(msg)
		case modeEditProperties:
			return m.updateEditor(msg)
		case modeCommand:
			return m.updateCommand(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		return m.updateNormal(msg)
	}

	return m.forward(msg)
}

// forward hands other messages (cursor blinks) to the focused widget.
func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeLogin:
		cmd = m.login.update(msg)
	case modeEditProperties:
		m.editor, cmd = m.editor.Update(msg)
	case modeCommand:
		m.commandInput, cmd = m.commandInput.Update(msg)
	case modeForm:
		cmd = m.forms[m.activeForm].update(msg)
	default:
		m.consoleView, cmd = m.consoleView.Update(msg)
	}
	return m, cmd
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := max(width-8, 10)
	contentHeight := max(height-14, 3)

	m.consoleView.Width = contentWidth
	m.consoleView.Height = max(contentHeight-2, 1)
	m.editor.SetWidth(contentWidth)
	m.editor.SetHeight(max(contentHeight-2, 1))
	m.commandInput.Width = max(contentWidth-4, 10)
	m.backupTable.SetWidth(contentWidth)
	m.backupTable.SetHeight(max(contentHeight-1, 2))
}

func newBackupTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 40},
			{Title: "Size", Width: 10},
			{Title: "Created", Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *model) updateBackupTable() {
	rows := []table.Row{}
	for _, b := range dashboard.BackupRows(m.backups) {
		rows = append(rows, table.Row{b.Name, b.Size, b.Created})
	}
	m.backupTable.SetRows(rows)
}

// startBusy counts an in-flight action and starts the spinner if it was idle.
func (m *model) startBusy() tea.Cmd {
	m.busy++
	if m.busy == 1 {
		return m.spinner.Tick
	}
	return nil
}

func (m *model) endBusy() {
	if m.busy > 0 {
		m.busy--
	}
}

// toLogin switches to the login screen. Nothing from the response that
// triggered it is applied.
func (m model) toLogin() (tea.Model, tea.Cmd) {
	if m.mode == modeLogin {
		return m, nil
	}
	m.log.Info("session rejected, showing login")
	m.mode = modeLogin
	m.editor.Blur()
	m.commandInput.Blur()
	m.login.reset()
	return m, m.login.focus()
}
