package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mcdash/internal/dashboard"
	"mcdash/pkg/sdk"
)

type actionKind int

const (
	actionStart actionKind = iota
	actionStop
	actionRestart
	actionCommand
	actionUploadJar
	actionUploadWorld
	actionSetWorld
	actionSaveProperties
	actionBackup
	actionAddUser
	actionDeleteUser
	actionChangePassword
)

// failureMessages are shown when an action fails before the server could
// answer with a message of its own.
var failureMessages = map[actionKind]string{
	actionStart:          "Failed to start server",
	actionStop:           "Failed to stop server",
	actionRestart:        "Failed to restart server",
	actionCommand:        "Failed to send command",
	actionUploadJar:      "Upload failed",
	actionUploadWorld:    "Upload failed",
	actionSetWorld:       "Failed to set active world",
	actionSaveProperties: "Failed to save properties",
	actionBackup:         "Failed to create backup",
	actionAddUser:        "Failed to add user",
	actionDeleteUser:     "Failed to delete user",
	actionChangePassword: "Failed to change password",
}

type actionMsg struct {
	kind   actionKind
	result *sdk.Result
	err    error
}

type actionFunc func() (*sdk.Result, error)

func (m *model) runAction(kind actionKind, fn actionFunc) tea.Cmd {
	return tea.Batch(m.startBusy(), func() tea.Msg {
		res, err := fn()
		return actionMsg{kind: kind, result: res, err: err}
	})
}

func (m model) startServer() (tea.Model, tea.Cmd) {
	show := m.showNotification("Starting server...", dashboard.LevelSuccess)
	client, ctx := m.client, m.ctx
	run := m.runAction(actionStart, func() (*sdk.Result, error) { return client.StartServer(ctx) })
	return m, tea.Batch(show, run)
}

func (m model) stopServer() (tea.Model, tea.Cmd) {
	show := m.showNotification("Stopping server...", dashboard.LevelSuccess)
	client, ctx := m.client, m.ctx
	run := m.runAction(actionStop, func() (*sdk.Result, error) { return client.StopServer(ctx) })
	return m, tea.Batch(show, run)
}

func (m model) restartServer() (tea.Model, tea.Cmd) {
	show := m.showNotification("Restarting server...", dashboard.LevelSuccess)
	client, ctx := m.client, m.ctx
	run := m.runAction(actionRestart, func() (*sdk.Result, error) { return client.RestartServer(ctx) })
	return m, tea.Batch(show, run)
}

func (m model) sendCommand() (tea.Model, tea.Cmd) {
	command := strings.TrimSpace(m.commandInput.Value())
	if command == "" {
		return m, nil
	}
	client, ctx := m.client, m.ctx
	cmd := m.runAction(actionCommand, func() (*sdk.Result, error) { return client.SendCommand(ctx, command) })
	return m, cmd
}

func (m model) saveProperties() (tea.Model, tea.Cmd) {
	content := m.editor.Value()
	client, ctx := m.client, m.ctx
	cmd := m.runAction(actionSaveProperties, func() (*sdk.Result, error) { return client.SaveProperties(ctx, content) })
	return m, cmd
}

func (m model) setActiveWorld(world string) (tea.Model, tea.Cmd) {
	client, ctx := m.client, m.ctx
	cmd := m.runAction(actionSetWorld, func() (*sdk.Result, error) { return client.SetWorld(ctx, world) })
	return m, cmd
}

func (m model) createBackup() (tea.Model, tea.Cmd) {
	show := m.showNotification("Creating backup...", dashboard.LevelSuccess)
	client, ctx := m.client, m.ctx
	run := m.runAction(actionBackup, func() (*sdk.Result, error) { return client.CreateBackup(ctx) })
	return m, tea.Batch(show, run)
}

func (m model) deleteUser(username string) (tea.Model, tea.Cmd) {
	client, ctx := m.client, m.ctx
	cmd := m.runAction(actionDeleteUser, func() (*sdk.Result, error) { return client.DeleteUser(ctx, username) })
	return m, cmd
}

// upload opens path inside the command so a slow disk never blocks Update.
func (m model) upload(kind actionKind, path string) (tea.Model, tea.Cmd) {
	status := statusLine{text: "Uploading..."}
	if kind == actionUploadJar {
		m.jarStatus = status
	} else {
		m.worldStatus = status
	}

	client, ctx := m.client, m.ctx
	cmd := m.runAction(kind, func() (*sdk.Result, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		name := filepath.Base(path)
		if kind == actionUploadJar {
			return client.UploadJar(ctx, name, f)
		}
		return client.UploadWorld(ctx, name, f)
	})
	return m, cmd
}

func (m model) applyAction(msg actionMsg) (tea.Model, tea.Cmd) {
	m.endBusy()

	if msg.err != nil {
		if errors.Is(msg.err, sdk.ErrUnauthorized) {
			return m.toLogin()
		}
		m.log.WithError(msg.err).WithField("action", int(msg.kind)).Error("action failed")

		// a non-2xx reply may still carry a message meant for the user
		text := failureMessages[msg.kind]
		var apiErr *sdk.APIError
		if errors.As(msg.err, &apiErr) && apiErr.Message != "" {
			text = apiErr.Message
		}
		switch msg.kind {
		case actionUploadJar:
			m.jarStatus = statusLine{text: text}
		case actionUploadWorld:
			m.worldStatus = statusLine{text: text}
		case actionSaveProperties:
			m.propertiesStatus = statusLine{text: text}
		}
		return m, m.showNotification(text, dashboard.LevelError)
	}

	res := msg.result
	if res == nil {
		res = &sdk.Result{}
	}

	switch msg.kind {
	case actionStart:
		if !res.Success {
			return m, m.showResult(res)
		}
		return m, tea.Batch(
			m.showResult(res),
			refreshAfter(time.Second, dashboard.RefreshStatus),
			m.refresh(dashboard.RefreshConsole),
		)

	case actionStop:
		return m, tea.Batch(m.showResult(res), refreshAfter(time.Second, dashboard.RefreshStatus))

	case actionRestart:
		return m, tea.Batch(
			m.showResult(res),
			refreshAfter(2*time.Second, dashboard.RefreshStatus),
			m.refresh(dashboard.RefreshConsole),
		)

	case actionCommand:
		if !res.Success {
			return m, m.showResult(res)
		}
		m.commandInput.SetValue("")
		return m, refreshAfter(500*time.Millisecond, dashboard.RefreshConsole)

	case actionUploadJar, actionUploadWorld:
		line := statusLine{text: res.Message, ok: res.Success}
		follow := dashboard.RefreshStatus
		fk := formUploadJar
		if msg.kind == actionUploadJar {
			m.jarStatus = line
		} else {
			m.worldStatus = line
			follow = dashboard.RefreshWorlds
			fk = formUploadWorld
		}
		if !res.Success {
			return m, nil
		}
		m.forms[fk].clear()
		if m.mode == modeForm && m.activeForm == fk {
			m.closeForm()
		}
		return m, tea.Batch(m.showResult(res), m.refresh(follow))

	case actionSetWorld:
		if !res.Success {
			return m, m.showResult(res)
		}
		return m, tea.Batch(m.showResult(res), m.refresh(dashboard.RefreshWorlds))

	case actionSaveProperties:
		m.propertiesStatus = statusLine{text: res.Message, ok: res.Success}
		return m, m.showResult(res)

	case actionBackup:
		if !res.Success {
			return m, m.showResult(res)
		}
		return m, tea.Batch(m.showResult(res), m.refresh(dashboard.RefreshBackups))

	case actionAddUser, actionChangePassword:
		fk := formAddUser
		if msg.kind == actionChangePassword {
			fk = formChangePassword
		}
		if !res.Success {
			return m, m.showResult(res)
		}
		m.forms[fk].clear()
		if m.mode == modeForm && m.activeForm == fk {
			m.closeForm()
		}
		if msg.kind == actionAddUser {
			return m, tea.Batch(m.showResult(res), m.refresh(dashboard.RefreshUsers))
		}
		return m, m.showResult(res)

	case actionDeleteUser:
		if !res.Success {
			return m, m.showResult(res)
		}
		return m, tea.Batch(m.showResult(res), m.refresh(dashboard.RefreshUsers))
	}

	return m, nil
}
