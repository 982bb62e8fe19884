// Package mockapi is an in-memory implementation of the game-server
// management API. It backs the mock-server command and the end-to-end tests;
// no game server process is started.
package mockapi

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"mcdash/pkg/sdk"
)

const (
	maxConsoleLines = 1000
	defaultWorld    = "world"
)

type Server struct {
	mu sync.Mutex

	secret []byte
	log    logrus.FieldLogger
	now    func() time.Time
	cost   int

	// users keeps insertion order; hashes holds the bcrypt hashes.
	users  []string
	hashes map[string][]byte

	running    bool
	startedAt  time.Time
	hasJar     bool
	worlds     []string
	properties *string
	console    []string
	backups    []sdk.Backup

	seed []credential
}

type credential struct {
	username string
	password string
}

type Option func(*Server)

// WithUser adds an account that can log in.
func WithUser(username, password string) Option {
	return func(s *Server) {
		s.seed = append(s.seed, credential{username, password})
	}
}

// WithSecret sets the key session tokens are signed with. A random key is
// used otherwise.
func WithSecret(secret []byte) Option {
	return func(s *Server) {
		s.secret = secret
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithJar marks a server jar as already uploaded.
func WithJar() Option {
	return func(s *Server) {
		s.hasJar = true
	}
}

// WithWorlds preloads uploaded worlds.
func WithWorlds(worlds ...string) Option {
	return func(s *Server) {
		s.worlds = append(s.worlds, worlds...)
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithBcryptCost lowers the hashing cost, for tests.
func WithBcryptCost(cost int) Option {
	return func(s *Server) {
		s.cost = cost
	}
}

func New(opts ...Option) (*Server, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Server{
		log:    discard,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
		hashes: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.secret) == 0 {
		s.secret = make([]byte, 32)
		if _, err := rand.Read(s.secret); err != nil {
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
	}

	for _, c := range s.seed {
		if err := s.addUser(c.username, c.password); err != nil {
			return nil, fmt.Errorf("adding user %s: %w", c.username, err)
		}
	}
	s.seed = nil
	return s, nil
}

// Handler routes the login endpoints and, behind the session check, every
// /api endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	api := map[string]http.HandlerFunc{
		"GET /api/status":           s.handleStatus,
		"GET /api/health":           s.handleHealth,
		"GET /api/console":          s.handleConsole,
		"POST /api/command":         s.handleCommand,
		"POST /api/start":           s.handleStart,
		"POST /api/stop":            s.handleStop,
		"POST /api/restart":         s.handleRestart,
		"GET /api/properties":       s.handleGetProperties,
		"POST /api/properties":      s.handleSaveProperties,
		"POST /api/upload-jar":      s.handleUploadJar,
		"POST /api/upload-world":    s.handleUploadWorld,
		"POST /api/set-world":       s.handleSetWorld,
		"POST /api/backup":          s.handleBackup,
		"GET /api/backups":          s.handleListBackups,
		"GET /api/users":            s.handleListUsers,
		"POST /api/users/add":       s.handleAddUser,
		"POST /api/users/delete":    s.handleDeleteUser,
		"POST /api/change-password": s.handleChangePassword,
	}
	for pattern, h := range api {
		mux.Handle(pattern, s.requireSession(h))
	}

	return s.logRequests(mux)
}

// ListenAndServe blocks serving Handler on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.WithField("addr", addr).Info("mock API listening")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "mcdash mock server. Use the mcdash CLI or dashboard against this URL.")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeResult(w http.ResponseWriter, success bool, message string) {
	writeJSON(w, http.StatusOK, sdk.Result{Success: success, Message: message})
}

func (s *Server) appendConsole(lines ...string) {
	s.console = append(s.console, lines...)
	if over := len(s.console) - maxConsoleLines; over > 0 {
		s.console = append([]string(nil), s.console[over:]...)
	}
}
