package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mcdash/internal/dashboard"
	"mcdash/pkg/sdk"
)

type formKind int

const (
	formAddUser formKind = iota
	formChangePassword
	formUploadJar
	formUploadWorld
)

// form is a small stack of text inputs with one focused at a time.
type form struct {
	title  string
	inputs []textinput.Model
	labels []string
	focus  int
	err    string
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func newForms() map[formKind]*form {
	return map[formKind]*form{
		formAddUser: {
			title:  "Add User",
			labels: []string{"Username", "Password"},
			inputs: []textinput.Model{newInput("username", false), newInput("password", true)},
		},
		formChangePassword: {
			title:  "Change Password",
			labels: []string{"Current password", "New password"},
			inputs: []textinput.Model{newInput("current password", true), newInput("new password", true)},
		},
		formUploadJar: {
			title:  "Upload Server Jar",
			labels: []string{"Path to .jar"},
			inputs: []textinput.Model{newInput("/path/to/server.jar", false)},
		},
		formUploadWorld: {
			title:  "Upload World",
			labels: []string{"Path to world archive"},
			inputs: []textinput.Model{newInput("/path/to/world.zip", false)},
		},
	}
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) focusInput(i int) tea.Cmd {
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return cmd
}

func (f *form) blur() {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
}

// clear empties every field. Forms are only cleared after a successful
// submit so a failed attempt keeps what was typed.
func (f *form) clear() {
	for j := range f.inputs {
		f.inputs[j].SetValue("")
	}
	f.err = ""
	f.focus = 0
}

func (f *form) last() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (m *model) openForm(kind formKind) tea.Cmd {
	m.mode = modeForm
	m.activeForm = kind
	f := m.forms[kind]
	f.err = ""
	return f.focusInput(0)
}

func (m *model) closeForm() {
	m.forms[m.activeForm].blur()
	m.mode = modeNormal
}

// submitForm validates locally and only then issues the request.
func (m model) submitForm() (tea.Model, tea.Cmd) {
	f := m.forms[m.activeForm]
	f.err = ""

	client, ctx := m.client, m.ctx
	switch m.activeForm {
	case formAddUser:
		username, password := strings.TrimSpace(f.value(0)), f.value(1)
		if err := dashboard.ValidateNewUser(username, password); err != nil {
			f.err = dashboard.ValidationMessage(err)
			return m, nil
		}
		cmd := m.runAction(actionAddUser, func() (*sdk.Result, error) {
			return client.AddUser(ctx, username, password)
		})
		return m, cmd

	case formChangePassword:
		current, next := f.value(0), f.value(1)
		if err := dashboard.ValidatePasswordChange(current, next); err != nil {
			f.err = dashboard.ValidationMessage(err)
			return m, nil
		}
		cmd := m.runAction(actionChangePassword, func() (*sdk.Result, error) {
			return client.ChangePassword(ctx, current, next)
		})
		return m, cmd

	case formUploadJar, formUploadWorld:
		path := strings.TrimSpace(f.value(0))
		kind := actionUploadWorld
		if m.activeForm == formUploadJar {
			kind = actionUploadJar
		}
		if err := dashboard.ValidateUpload(path); err != nil {
			f.err = dashboard.ValidationMessage(err)
			return m, nil
		}
		return m.upload(kind, path)
	}
	return m, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.forms[m.activeForm]
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "tab", "down":
		return m, f.focusInput(f.focus + 1)
	case "shift+tab", "up":
		return m, f.focusInput(f.focus - 1)
	case "enter":
		if !f.last() {
			return m, f.focusInput(f.focus + 1)
		}
		return m.submitForm()
	}
	return m, f.update(msg)
}

type loginForm struct {
	username textinput.Model
	password textinput.Model
	focused  int
	err      string
	pending  bool
}

func newLoginForm(username string) *loginForm {
	u := newInput("username", false)
	u.SetValue(username)
	return &loginForm{
		username: u,
		password: newInput("password", true),
	}
}

// focus puts the cursor on the username, or on the password when a
// username is already filled in.
func (l *loginForm) focus() tea.Cmd {
	if l.username.Value() != "" {
		return l.focusAt(1)
	}
	return l.focusAt(0)
}

func (l *loginForm) focusAt(i int) tea.Cmd {
	l.focused = i
	if i == 0 {
		l.password.Blur()
		return l.username.Focus()
	}
	l.username.Blur()
	return l.password.Focus()
}

// reset keeps the username so re-authenticating only needs the password.
func (l *loginForm) reset() {
	l.password.SetValue("")
	l.pending = false
}

func (l *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if l.focused == 0 {
		l.username, cmd = l.username.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return cmd
}

type loginMsg struct {
	username string
	err      error
}

type logoutMsg struct {
	err error
}

func (m model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.login
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		return m, l.focusAt(1 - l.focused)
	case "enter":
		if l.focused == 0 {
			return m, l.focusAt(1)
		}
		if l.pending {
			return m, nil
		}
		username, password := strings.TrimSpace(l.username.Value()), l.password.Value()
		if username == "" || password == "" {
			l.err = "Please fill in all fields"
			return m, nil
		}
		l.err = ""
		l.pending = true
		client, ctx := m.client, m.ctx
		busy := m.startBusy()
		return m, tea.Batch(busy, func() tea.Msg {
			return loginMsg{username: username, err: client.Login(ctx, username, password)}
		})
	}
	return m, l.update(msg)
}

func (m model) applyLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.endBusy()
	m.login.pending = false

	if msg.err != nil {
		if errors.Is(msg.err, sdk.ErrInvalidCredentials) {
			m.login.err = "Invalid username or password"
		} else {
			m.log.WithError(msg.err).Error("login failed")
			m.login.err = "Login failed"
		}
		m.login.password.SetValue("")
		return m, nil
	}

	m.log.WithField("username", msg.username).Info("logged in")
	m.login.err = ""
	m.login.reset()
	m.login.username.Blur()
	m.login.password.Blur()
	m.mode = modeNormal
	if m.opts.OnLogin != nil {
		m.opts.OnLogin(msg.username)
	}

	return m, m.refresh(m.initialRefreshes()...)
}

func (m model) logout() (tea.Model, tea.Cmd) {
	client, ctx := m.client, m.ctx
	busy := m.startBusy()
	return m, tea.Batch(busy, func() tea.Msg {
		return logoutMsg{err: client.Logout(ctx)}
	})
}

func (m model) applyLogout(msg logoutMsg) (tea.Model, tea.Cmd) {
	m.endBusy()
	if msg.err != nil {
		m.log.WithError(msg.err).Error("logout failed")
		return m, m.showNotification("Logout failed", dashboard.LevelError)
	}
	m.log.Info("logged out")
	return m.toLogin()
}

func dedupe(kinds []dashboard.Refresh) []dashboard.Refresh {
	seen := make(map[dashboard.Refresh]bool, len(kinds))
	out := kinds[:0]
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
