package mockapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mcdash/internal/mockapi"
	"mcdash/pkg/sdk"
)

func newServer(t *testing.T, opts ...mockapi.Option) *httptest.Server {
	t.Helper()
	opts = append([]mockapi.Option{
		mockapi.WithUser("admin", "secret1"),
		mockapi.WithBcryptCost(bcrypt.MinCost),
	}, opts...)
	s, err := mockapi.New(opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *sdk.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New() error: %v", err)
	}
	return sdk.NewClient(srv.URL, sdk.WithCookieJar(jar))
}

func login(t *testing.T, srv *httptest.Server, username, password string) *sdk.Client {
	t.Helper()
	c := newClient(t, srv)
	if err := c.Login(context.Background(), username, password); err != nil {
		t.Fatalf("Login(%s) error: %v", username, err)
	}
	return c
}

func TestRequiresSession(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)

	if _, err := c.Status(context.Background()); !errors.Is(err, sdk.ErrUnauthorized) {
		t.Fatalf("Status() err = %v, want ErrUnauthorized", err)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/status", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "not-a-token"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("forged cookie status = %d", resp.StatusCode)
	}
}

func TestLoginAndLogout(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	if err := newClient(t, srv).Login(ctx, "admin", "wrong"); !errors.Is(err, sdk.ErrInvalidCredentials) {
		t.Fatalf("Login() with bad password err = %v", err)
	}

	c := login(t, srv, "admin", "secret1")
	if _, err := c.Status(ctx); err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if _, err := c.Status(ctx); !errors.Is(err, sdk.ErrUnauthorized) {
		t.Errorf("Status() after logout err = %v", err)
	}
}

func TestExpiredSession(t *testing.T) {
	now := time.Now()
	srv := newServer(t, mockapi.WithClock(func() time.Time { return now }))
	c := login(t, srv, "admin", "secret1")

	now = now.Add(8 * 24 * time.Hour)
	if _, err := c.Status(context.Background()); !errors.Is(err, sdk.ErrUnauthorized) {
		t.Errorf("Status() with expired token err = %v", err)
	}
}

func TestStartRequiresJar(t *testing.T) {
	srv := newServer(t)
	c := login(t, srv, "admin", "secret1")
	ctx := context.Background()

	res, err := c.StartServer(ctx)
	if err != nil {
		t.Fatalf("StartServer() error: %v", err)
	}
	if res.Success || !strings.Contains(res.Message, "No server.jar found") {
		t.Errorf("StartServer() = %+v", res)
	}

	res, err = c.UploadJar(ctx, "paper.jar", strings.NewReader("jar"))
	if err != nil || !res.Success {
		t.Fatalf("UploadJar() = %+v, %v", res, err)
	}

	st, _ := c.Status(ctx)
	if !st.HasJar {
		t.Error("HasJar false after upload")
	}
}

func TestServerLifecycle(t *testing.T) {
	srv := newServer(t, mockapi.WithJar(), mockapi.WithWorlds("world"))
	c := login(t, srv, "admin", "secret1")
	ctx := context.Background()

	if res, _ := c.SendCommand(ctx, "list"); res == nil || res.Success {
		t.Errorf("SendCommand() on stopped server = %+v", res)
	}

	res, err := c.StartServer(ctx)
	if err != nil || !res.Success || res.Message != "Server starting..." {
		t.Fatalf("StartServer() = %+v, %v", res, err)
	}
	if res, _ := c.StartServer(ctx); res.Success || res.Message != "Server is already running" {
		t.Errorf("second StartServer() = %+v", res)
	}

	st, _ := c.Status(ctx)
	if !st.Running() || st.ActiveWorld != "world" {
		t.Errorf("Status() = %+v", st)
	}
	h, _ := c.Health(ctx)
	if !h.Running() || h.MemoryMB == 0 {
		t.Errorf("Health() = %+v", h)
	}

	if res, _ := c.SendCommand(ctx, "   "); res.Success || res.Message != "No command provided" {
		t.Errorf("SendCommand(blank) = %+v", res)
	}
	if res, _ := c.SendCommand(ctx, "say hi"); !res.Success {
		t.Errorf("SendCommand() = %+v", res)
	}
	lines, _ := c.Console(ctx)
	if len(lines) == 0 || !strings.Contains(strings.Join(lines, "\n"), "> say hi") {
		t.Errorf("Console() = %q", lines)
	}

	if res, _ := c.StopServer(ctx); !res.Success {
		t.Errorf("StopServer() = %+v", res)
	}
	if res, _ := c.StopServer(ctx); res.Success || res.Message != "Server is not running" {
		t.Errorf("second StopServer() = %+v", res)
	}
	h, _ = c.Health(ctx)
	if h.Running() || h.UptimeSeconds != 0 {
		t.Errorf("Health() after stop = %+v", h)
	}
}

func TestPropertiesAndWorlds(t *testing.T) {
	srv := newServer(t, mockapi.WithJar())
	c := login(t, srv, "admin", "secret1")
	ctx := context.Background()

	p, err := c.Properties(ctx)
	if err != nil || p.Success {
		t.Fatalf("Properties() before first start = %+v, %v", p, err)
	}

	res, _ := c.UploadWorld(ctx, "survival.zip", strings.NewReader("zip"))
	if !res.Success || res.Message != `World "survival" uploaded successfully` {
		t.Errorf("UploadWorld() = %+v", res)
	}
	if res, _ := c.UploadWorld(ctx, "survival.tar", strings.NewReader("x")); res.Success {
		t.Errorf("UploadWorld(.tar) = %+v", res)
	}

	st, _ := c.Status(ctx)
	if st.ActiveWorld != "" {
		t.Errorf("ActiveWorld = %q, want empty until selected", st.ActiveWorld)
	}

	if res, _ := c.SetWorld(ctx, "survival"); !res.Success {
		t.Errorf("SetWorld() = %+v", res)
	}
	st, _ = c.Status(ctx)
	if st.ActiveWorld != "survival" {
		t.Errorf("ActiveWorld = %q", st.ActiveWorld)
	}

	p, _ = c.Properties(ctx)
	if !p.Success || !strings.Contains(p.Content, "level-name=survival") {
		t.Errorf("Properties() = %+v", p)
	}

	if res, _ := c.SaveProperties(ctx, "motd=hello\n"); !res.Success {
		t.Errorf("SaveProperties() = %+v", res)
	}
	p, _ = c.Properties(ctx)
	if p.Content != "motd=hello\n" {
		t.Errorf("Content = %q", p.Content)
	}
}

func TestBackups(t *testing.T) {
	// The session cookie must not look expired to the client's jar.
	now := time.Now().Truncate(time.Second)
	srv := newServer(t,
		mockapi.WithWorlds("world"),
		mockapi.WithClock(func() time.Time { return now }),
	)
	c := login(t, srv, "admin", "secret1")
	ctx := context.Background()

	if res, _ := c.CreateBackup(ctx); !res.Success {
		t.Fatalf("CreateBackup() = %+v", res)
	}
	now = now.Add(time.Hour)
	c.CreateBackup(ctx)

	backups, err := c.ListBackups(ctx)
	if err != nil {
		t.Fatalf("ListBackups() error: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("len(backups) = %d", len(backups))
	}
	wantName := "world_" + now.Format("20060102_150405") + ".zip"
	if backups[0].Name != wantName || backups[0].Created != now.Format("2006-01-02 15:04:05") {
		t.Errorf("newest backup = %+v, want %s", backups[0], wantName)
	}
}

func TestUsers(t *testing.T) {
	srv := newServer(t)
	c := login(t, srv, "admin", "secret1")
	ctx := context.Background()

	if res, _ := c.AddUser(ctx, "alex", "hunter22"); !res.Success {
		t.Fatalf("AddUser() = %+v", res)
	}
	if res, _ := c.AddUser(ctx, "alex", "other1"); res.Success || res.Message != "User already exists" {
		t.Errorf("duplicate AddUser() = %+v", res)
	}

	users, _ := c.ListUsers(ctx)
	if users.CurrentUser != "admin" || len(users.Users) != 2 || users.Users[1] != "alex" {
		t.Errorf("ListUsers() = %+v", users)
	}

	if res, _ := c.DeleteUser(ctx, "admin"); res.Success || res.Message != "Cannot delete your own account" {
		t.Errorf("DeleteUser(self) = %+v", res)
	}

	alex := login(t, srv, "alex", "hunter22")
	if res, _ := c.DeleteUser(ctx, "alex"); !res.Success {
		t.Fatalf("DeleteUser() = %+v", res)
	}
	if _, err := alex.Status(ctx); !errors.Is(err, sdk.ErrUnauthorized) {
		t.Errorf("deleted user's session err = %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	srv := newServer(t)
	c := login(t, srv, "admin", "secret1")
	ctx := context.Background()

	tests := []struct {
		current, next string
		want          string
	}{
		{"", "newpass", "All fields are required"},
		{"wrong", "newpass", "Current password is incorrect"},
		{"secret1", "abc", "New password must be at least 6 characters"},
		{"secret1", "ééé", "New password must be at least 6 characters"},
	}
	for _, tt := range tests {
		res, err := c.ChangePassword(ctx, tt.current, tt.next)
		if err != nil {
			t.Fatalf("ChangePassword() error: %v", err)
		}
		if res.Success || res.Message != tt.want {
			t.Errorf("ChangePassword(%q, %q) = %+v, want %q", tt.current, tt.next, res, tt.want)
		}
	}

	res, _ := c.ChangePassword(ctx, "secret1", "newpass")
	if !res.Success {
		t.Fatalf("ChangePassword() = %+v", res)
	}
	if err := newClient(t, srv).Login(ctx, "admin", "secret1"); !errors.Is(err, sdk.ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}
	login(t, srv, "admin", "newpass")
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q", got)
	}
}
