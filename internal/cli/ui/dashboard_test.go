package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"mcdash/internal/dashboard"
	"mcdash/pkg/sdk"
)

type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	status     *sdk.Status
	statusErr  error
	health     *sdk.Health
	console    []string
	consoleErr error
	users      *sdk.Users
	result     *sdk.Result
	resultErr  error
	loginErr   error
	uploaded   string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		calls:   make(map[string]int),
		status:  &sdk.Status{Status: sdk.StatusRunning, HasJar: true, Worlds: []string{"world", "creative"}, ActiveWorld: "world"},
		health:  &sdk.Health{Status: sdk.StatusRunning, CPUPercent: 12.5, MemoryMB: 512, UptimeSeconds: 125},
		console: []string{"[Server] Done"},
		users:   &sdk.Users{Users: []string{"admin", "alex"}, CurrentUser: "admin"},
		result:  &sdk.Result{Success: true, Message: "ok"},
	}
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) BaseURL() string { return "http://mc.test" }

func (f *fakeClient) Status(ctx context.Context) (*sdk.Status, error) {
	f.record("status")
	return f.status, f.statusErr
}

func (f *fakeClient) Health(ctx context.Context) (*sdk.Health, error) {
	f.record("health")
	return f.health, nil
}

func (f *fakeClient) Console(ctx context.Context) ([]string, error) {
	f.record("console")
	return f.console, f.consoleErr
}

func (f *fakeClient) Properties(ctx context.Context) (*sdk.Properties, error) {
	f.record("properties")
	return &sdk.Properties{Success: true, Content: "motd=hi"}, nil
}

func (f *fakeClient) ListBackups(ctx context.Context) ([]sdk.Backup, error) {
	f.record("backups")
	return nil, nil
}

func (f *fakeClient) ListUsers(ctx context.Context) (*sdk.Users, error) {
	f.record("users")
	return f.users, nil
}

func (f *fakeClient) action(name string) (*sdk.Result, error) {
	f.record(name)
	return f.result, f.resultErr
}

func (f *fakeClient) SendCommand(ctx context.Context, command string) (*sdk.Result, error) {
	return f.action("command")
}

func (f *fakeClient) StartServer(ctx context.Context) (*sdk.Result, error) {
	return f.action("start")
}

func (f *fakeClient) StopServer(ctx context.Context) (*sdk.Result, error) {
	return f.action("stop")
}

func (f *fakeClient) RestartServer(ctx context.Context) (*sdk.Result, error) {
	return f.action("restart")
}

func (f *fakeClient) SaveProperties(ctx context.Context, content string) (*sdk.Result, error) {
	return f.action("save-properties")
}

func (f *fakeClient) UploadJar(ctx context.Context, filename string, file io.Reader) (*sdk.Result, error) {
	f.mu.Lock()
	f.uploaded = filename
	f.mu.Unlock()
	return f.action("upload-jar")
}

func (f *fakeClient) UploadWorld(ctx context.Context, filename string, file io.Reader) (*sdk.Result, error) {
	return f.action("upload-world")
}

func (f *fakeClient) SetWorld(ctx context.Context, world string) (*sdk.Result, error) {
	return f.action("set-world")
}

func (f *fakeClient) CreateBackup(ctx context.Context) (*sdk.Result, error) {
	return f.action("backup")
}

func (f *fakeClient) AddUser(ctx context.Context, username, password string) (*sdk.Result, error) {
	return f.action("add-user")
}

func (f *fakeClient) DeleteUser(ctx context.Context, username string) (*sdk.Result, error) {
	return f.action("delete-user")
}

func (f *fakeClient) ChangePassword(ctx context.Context, current, next string) (*sdk.Result, error) {
	return f.action("change-password")
}

func (f *fakeClient) Login(ctx context.Context, username, password string) error {
	f.record("login")
	return f.loginErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.record("logout")
	return nil
}

// testOptions pushes every timer far enough out that a test never sees one
// fire.
func testOptions() Options {
	return Options{
		InitialTab:          dashboard.TabConfig,
		FastInterval:        time.Hour,
		SlowInterval:        time.Hour,
		NotificationTimeout: time.Hour,
	}
}

// drain runs cmd and everything it batches. Commands that do not return
// within the deadline are timers and are counted as pending.
func drain(cmd tea.Cmd) (msgs []tea.Msg, pending int) {
	if cmd == nil {
		return nil, 0
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		switch msg := msg.(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				m, p := drain(c)
				msgs = append(msgs, m...)
				pending += p
			}
		case spinner.TickMsg, nil:
		default:
			msgs = append(msgs, msg)
		}
	case <-time.After(100 * time.Millisecond):
		pending++
	}
	return msgs, pending
}

// send delivers msg and then feeds back every message its commands produce
// until the model goes quiet.
func send(m model, msg tea.Msg) (model, int) {
	next, cmd := m.Update(msg)
	m = next.(model)

	msgs, pending := drain(cmd)
	for _, out := range msgs {
		var p int
		m, p = send(m, out)
		pending += p
	}
	return m, pending
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSwitchToConsoleTabFetchesOncePerSwitch(t *testing.T) {
	fc := newFakeClient()
	m := newModel(fc, testOptions())

	for i := 1; i <= 2; i++ {
		var pending int
		m, pending = send(m, keyPress("3"))
		if pending != 0 {
			t.Errorf("switch %d started %d timers, want 0", i, pending)
		}
		if got := fc.count("console"); got != i {
			t.Errorf("after switch %d console fetched %d times, want %d", i, got, i)
		}
		if got := fc.count("health"); got != i {
			t.Errorf("after switch %d health fetched %d times, want %d", i, got, i)
		}
	}

	if !m.tabs.IsActive(dashboard.TabConsole) {
		t.Errorf("active tab = %v, want console", m.tabs.Active())
	}
	if len(m.console) != 1 || m.console[0] != "[Server] Done" {
		t.Errorf("console = %v", m.console)
	}
}

func TestFastTickOnlyRefreshesOnConsoleTab(t *testing.T) {
	fc := newFakeClient()
	m := newModel(fc, testOptions())

	m, _ = send(m, fastTickMsg(time.Now()))
	if got := fc.count("console"); got != 0 {
		t.Errorf("fast tick on config tab fetched console %d times, want 0", got)
	}

	m.tabs.SetActiveTab(dashboard.TabConsole)
	_, pending := send(m, fastTickMsg(time.Now()))
	if got := fc.count("console"); got != 1 {
		t.Errorf("fast tick on console tab fetched console %d times, want 1", got)
	}
	// the tick reschedules exactly itself
	if pending != 1 {
		t.Errorf("fast tick left %d timers, want 1", pending)
	}
}

func TestUnauthorizedShowsLoginAndKeepsState(t *testing.T) {
	fc := newFakeClient()
	m := newModel(fc, testOptions())
	m, _ = send(m, slowTickMsg(time.Now()))
	if m.status == nil || !m.status.Running() {
		t.Fatalf("expected running status after first tick, got %+v", m.status)
	}
	before := m.status

	fc.status = &sdk.Status{Status: sdk.StatusStopped}
	fc.statusErr = sdk.ErrUnauthorized
	m, _ = send(m, slowTickMsg(time.Now()))

	if m.mode != modeLogin {
		t.Errorf("mode = %v, want login", m.mode)
	}
	if m.status != before {
		t.Error("status changed by a 401 response")
	}

	// no polling while on the login screen
	calls := fc.count("status")
	send(m, slowTickMsg(time.Now()))
	if got := fc.count("status"); got != calls {
		t.Errorf("status polled %d times on login screen", got-calls)
	}
}

func TestLoginRestoresDashboard(t *testing.T) {
	fc := newFakeClient()
	var saved string
	opts := testOptions()
	opts.StartAtLogin = true
	opts.Username = "admin"
	opts.OnLogin = func(u string) { saved = u }
	m := newModel(fc, opts)

	m.login.password.SetValue("secret")
	m.login.focusAt(1)
	m, _ = send(m, keyPress("enter"))

	if m.mode != modeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	if saved != "admin" {
		t.Errorf("OnLogin got %q, want admin", saved)
	}
	if fc.count("status") == 0 {
		t.Error("status not refreshed after login")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	fc := newFakeClient()
	fc.loginErr = sdk.ErrInvalidCredentials
	opts := testOptions()
	opts.StartAtLogin = true
	opts.Username = "admin"
	m := newModel(fc, opts)

	m.login.password.SetValue("wrong")
	m.login.focusAt(1)
	m, _ = send(m, keyPress("enter"))

	if m.mode != modeLogin {
		t.Errorf("mode = %v, want login", m.mode)
	}
	if m.login.err != "Invalid username or password" {
		t.Errorf("login error = %q", m.login.err)
	}
}

func TestShortPasswordIsRejectedLocally(t *testing.T) {
	fc := newFakeClient()
	opts := testOptions()
	opts.InitialTab = dashboard.TabUsers
	m := newModel(fc, opts)

	m, _ = send(m, keyPress("p"))
	if m.mode != modeForm || m.activeForm != formChangePassword {
		t.Fatalf("password form not open: mode=%v form=%v", m.mode, m.activeForm)
	}

	f := m.forms[formChangePassword]
	f.inputs[0].SetValue("oldpass")
	f.inputs[1].SetValue("12345")
	f.focusInput(1)
	m, _ = send(m, keyPress("enter"))

	if got := fc.count("change-password"); got != 0 {
		t.Errorf("change-password called %d times, want 0", got)
	}
	if f.err != "New password must be at least 6 characters" {
		t.Errorf("form error = %q", f.err)
	}
	if f.value(1) != "12345" {
		t.Error("rejected form should keep its fields")
	}
}

func TestChangePasswordClearsOnlyOnSuccess(t *testing.T) {
	fc := newFakeClient()
	fc.result = &sdk.Result{Success: false, Message: "Current password is incorrect"}
	opts := testOptions()
	opts.InitialTab = dashboard.TabUsers
	m := newModel(fc, opts)

	m, _ = send(m, keyPress("p"))
	f := m.forms[formChangePassword]
	f.inputs[0].SetValue("oldpass")
	f.inputs[1].SetValue("newpass1")
	f.focusInput(1)
	m, _ = send(m, keyPress("enter"))

	if f.value(0) != "oldpass" || f.value(1) != "newpass1" {
		t.Error("failed change should keep fields")
	}
	n, ok := m.notify.Current()
	if !ok || n.Message != "Current password is incorrect" || n.Level != dashboard.LevelError {
		t.Errorf("notification = %+v (visible %v)", n, ok)
	}

	fc.result = &sdk.Result{Success: true, Message: "Password changed"}
	m, _ = send(m, keyPress("enter"))
	if f.value(0) != "" || f.value(1) != "" {
		t.Error("successful change should clear fields")
	}
	if m.mode != modeNormal {
		t.Errorf("mode = %v, want normal after success", m.mode)
	}
}

func TestOfflineRefreshKeepsContent(t *testing.T) {
	fc := newFakeClient()
	m := newModel(fc, testOptions())
	m, _ = send(m, keyPress("3"))
	before := m.consoleView.View()

	fc.consoleErr = errors.New("dial tcp: connection refused")
	fc.console = []string{"should not show"}
	m, _ = send(m, fastTickMsg(time.Now()))

	if m.console[0] != "[Server] Done" {
		t.Errorf("console replaced after failure: %v", m.console)
	}
	if m.consoleView.View() != before {
		t.Error("console view changed after failure")
	}
	n, ok := m.notify.Current()
	if !ok || n.Level != dashboard.LevelError || n.Message != "Failed to load console" {
		t.Errorf("notification = %+v (visible %v)", n, ok)
	}
}

func TestOfflineActionShowsGenericFailure(t *testing.T) {
	fc := newFakeClient()
	fc.resultErr = errors.New("dial tcp: connection refused")
	m := newModel(fc, testOptions())

	m, _ = send(m, keyPress("s"))

	n, ok := m.notify.Current()
	if !ok || n.Message != "Failed to start server" || n.Level != dashboard.LevelError {
		t.Errorf("notification = %+v (visible %v)", n, ok)
	}
	if m.busy != 0 {
		t.Errorf("busy = %d after action finished", m.busy)
	}
}

func TestStaleRefreshIsDropped(t *testing.T) {
	fc := newFakeClient()
	m := newModel(fc, testOptions())

	old := m.gens.Issue(dashboard.RefreshStatus)
	current := m.gens.Issue(dashboard.RefreshStatus)

	fresh := &sdk.Status{Status: sdk.StatusStopped}
	next, _ := m.Update(refreshMsg{kind: dashboard.RefreshStatus, gen: current, payload: fresh})
	m = next.(model)

	next, _ = m.Update(refreshMsg{kind: dashboard.RefreshStatus, gen: old, payload: &sdk.Status{Status: sdk.StatusRunning}})
	m = next.(model)

	if m.status != fresh {
		t.Errorf("status = %+v, want the newest response", m.status)
	}
}

func TestCurrentUserCannotBeDeleted(t *testing.T) {
	fc := newFakeClient()
	opts := testOptions()
	opts.InitialTab = dashboard.TabUsers
	m := newModel(fc, opts)
	m, _ = send(m, keyPress("4"))

	// cursor starts on admin, the signed-in user
	m, _ = send(m, keyPress("d"))
	if m.mode == modeConfirmDelete {
		t.Fatal("delete offered for the current user")
	}

	m, _ = send(m, keyPress("j"))
	m, _ = send(m, keyPress("d"))
	if m.mode != modeConfirmDelete || m.pendingDelete != "alex" {
		t.Fatalf("mode=%v pending=%q, want confirm for alex", m.mode, m.pendingDelete)
	}

	m, _ = send(m, keyPress("n"))
	if got := fc.count("delete-user"); got != 0 {
		t.Errorf("delete-user called %d times after cancel", got)
	}
	if n, _ := m.notify.Current(); n.Message != "Deletion cancelled." {
		t.Errorf("notification = %q", n.Message)
	}

	m, _ = send(m, keyPress("d"))
	m, _ = send(m, keyPress("y"))
	if got := fc.count("delete-user"); got != 1 {
		t.Errorf("delete-user called %d times, want 1", got)
	}
}

func TestActiveWorldCannotBeReactivated(t *testing.T) {
	fc := newFakeClient()
	opts := testOptions()
	opts.InitialTab = dashboard.TabWorlds
	m := newModel(fc, opts)
	m, _ = send(m, keyPress("2"))

	m, _ = send(m, keyPress("enter"))
	if got := fc.count("set-world"); got != 0 {
		t.Errorf("set-world called %d times for the active world", got)
	}

	m, _ = send(m, keyPress("j"))
	send(m, keyPress("enter"))
	if got := fc.count("set-world"); got != 1 {
		t.Errorf("set-world called %d times, want 1", got)
	}
}

func TestUploadJarShowsServerRejection(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "server.txt")
	jar := filepath.Join(dir, "paper.jar")
	for _, p := range []string{txt, jar} {
		if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fc := newFakeClient()
	fc.result = &sdk.Result{Success: false, Message: "Only .jar files are allowed"}
	m := newModel(fc, testOptions())
	m, _ = send(m, keyPress("J"))
	if m.mode != modeForm || m.activeForm != formUploadJar {
		t.Fatalf("upload form not open: mode=%v", m.mode)
	}

	f := m.forms[formUploadJar]
	f.inputs[0].SetValue(txt)
	m, _ = send(m, keyPress("enter"))
	if fc.count("upload-jar") != 1 {
		t.Fatalf("upload-jar called %d times, want 1", fc.count("upload-jar"))
	}
	if m.jarStatus.text != "Only .jar files are allowed" || m.jarStatus.ok {
		t.Errorf("jar status = %+v", m.jarStatus)
	}
	if m.mode != modeForm || f.value(0) != txt {
		t.Error("rejected upload should keep the form open with its path")
	}

	fc.result = &sdk.Result{Success: true, Message: "Server JAR uploaded successfully"}
	f.inputs[0].SetValue(jar)
	m, _ = send(m, keyPress("enter"))
	if fc.count("upload-jar") != 2 {
		t.Fatalf("upload-jar called %d times, want 2", fc.count("upload-jar"))
	}
	if fc.uploaded != "paper.jar" {
		t.Errorf("uploaded filename = %q", fc.uploaded)
	}
	if m.mode != modeNormal || f.value(0) != "" {
		t.Error("form should close and clear after a successful upload")
	}
}

func TestAPIErrorMessageIsShownVerbatim(t *testing.T) {
	fc := newFakeClient()
	fc.resultErr = &sdk.APIError{StatusCode: 400, Message: "Username already exists"}
	opts := testOptions()
	opts.InitialTab = dashboard.TabUsers
	m := newModel(fc, opts)

	m, _ = send(m, keyPress("a"))
	f := m.forms[formAddUser]
	f.inputs[0].SetValue("alex")
	f.inputs[1].SetValue("hunter22")
	f.focusInput(1)
	m, _ = send(m, keyPress("enter"))

	n, ok := m.notify.Current()
	if !ok || n.Message != "Username already exists" || n.Level != dashboard.LevelError {
		t.Errorf("notification = %+v (visible %v)", n, ok)
	}

	fc.resultErr = &sdk.APIError{StatusCode: 413, Message: "File too large"}
	m, _ = send(m, keyPress("esc"))
	m.tabs.SetActiveTab(dashboard.TabConfig)
	m, _ = send(m, keyPress("ctrl+s"))
	if m.propertiesStatus.text != "File too large" {
		t.Errorf("properties status = %+v", m.propertiesStatus)
	}

	fc.resultErr = &sdk.APIError{StatusCode: 502}
	m, _ = send(m, keyPress("s"))
	if n, _ := m.notify.Current(); n.Message != "Failed to start server" {
		t.Errorf("empty API message should fall back, got %q", n.Message)
	}
}

func TestCommandSendClearsInputOnSuccess(t *testing.T) {
	fc := newFakeClient()
	opts := testOptions()
	opts.InitialTab = dashboard.TabConsole
	m := newModel(fc, opts)

	m, _ = send(m, keyPress("i"))
	if m.mode != modeCommand {
		t.Fatalf("mode = %v, want command", m.mode)
	}

	// empty input sends nothing
	m, _ = send(m, keyPress("enter"))
	if fc.count("command") != 0 {
		t.Error("empty command was sent")
	}

	m.commandInput.SetValue("say hi")
	m, _ = send(m, keyPress("enter"))
	if fc.count("command") != 1 {
		t.Errorf("command called %d times, want 1", fc.count("command"))
	}
	if m.commandInput.Value() != "" {
		t.Errorf("input = %q, want cleared", m.commandInput.Value())
	}
}

func TestViewRendersEmptyStates(t *testing.T) {
	fc := newFakeClient()
	fc.status = &sdk.Status{Status: sdk.StatusStopped}
	opts := testOptions()
	opts.InitialTab = dashboard.TabWorlds
	m := newModel(fc, opts)
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = send(m, keyPress("2"))

	out := m.View()
	if !strings.Contains(out, dashboard.NoWorldsMessage) {
		t.Errorf("view missing %q:\n%s", dashboard.NoWorldsMessage, out)
	}
	if !strings.Contains(out, "stopped") {
		t.Error("view missing stopped badge")
	}
	if strings.Contains(out, "CPU") {
		t.Error("health bar shown while stopped")
	}
}
