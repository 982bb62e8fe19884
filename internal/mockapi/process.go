package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mcdash/pkg/sdk"
)

// activeWorld is level-name from server.properties, reported only when that
// world has been uploaded.
func (s *Server) activeWorld() string {
	name := defaultWorld
	if s.properties != nil {
		if v, ok := property(*s.properties, "level-name"); ok {
			name = v
		}
	}
	for _, w := range s.worlds {
		if w == name {
			return name
		}
	}
	return ""
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := sdk.StatusStopped
	if s.running {
		status = sdk.StatusRunning
	}
	writeJSON(w, http.StatusOK, sdk.Status{
		Status:      status,
		HasJar:      s.hasJar,
		Worlds:      append([]string{}, s.worlds...),
		ActiveWorld: s.activeWorld(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := sdk.Health{Status: sdk.StatusStopped}
	if s.running {
		h = sdk.Health{
			Status:        sdk.StatusRunning,
			CPUPercent:    12.5,
			MemoryMB:      1536,
			UptimeSeconds: int64(s.now().Sub(s.startedAt).Seconds()),
		}
	}
	writeJSON(w, http.StatusOK, map[string]sdk.Health{"health": h})
}

func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, sdk.Console{Output: append([]string{}, s.console...)})
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req sdk.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		writeResult(w, false, "Server is not running")
		return
	}
	command := strings.TrimSpace(req.Command)
	if command == "" {
		writeResult(w, false, "No command provided")
		return
	}
	s.appendConsole("> "+command, fmt.Sprintf("[Server thread/INFO]: Executed %q", command))
	writeResult(w, true, "Command sent")
}

func (s *Server) start() (bool, string) {
	if s.running {
		return false, "Server is already running"
	}
	if !s.hasJar {
		return false, "No server.jar found. Please upload a server JAR file first."
	}
	if s.properties == nil {
		content := defaultProperties
		s.properties = &content
	}

	world := defaultWorld
	if v, ok := property(*s.properties, "level-name"); ok {
		world = v
	}

	s.running = true
	s.startedAt = s.now()
	s.console = nil
	s.appendConsole(
		"Starting Minecraft server...",
		fmt.Sprintf("[Server thread/INFO]: Preparing level %q", world),
		"[Server thread/INFO]: Done! For help, type \"help\"",
	)
	return true, "Server starting..."
}

func (s *Server) stop() (bool, string) {
	if !s.running {
		return false, "Server is not running"
	}
	s.running = false
	s.appendConsole("Server stopped")
	return true, "Server stopped"
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, message := s.start()
	writeResult(w, ok, message)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, message := s.stop()
	writeResult(w, ok, message)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
	ok, message := s.start()
	writeResult(w, ok, message)
}

func (s *Server) handleGetProperties(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.properties == nil {
		writeJSON(w, http.StatusOK, sdk.Properties{Success: false, Message: "No server.properties found"})
		return
	}
	writeJSON(w, http.StatusOK, sdk.Properties{Success: true, Content: *s.properties})
}

func (s *Server) handleSaveProperties(w http.ResponseWriter, r *http.Request) {
	var req sdk.PropertiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	content := req.Content
	s.properties = &content
	writeResult(w, true, "Properties saved. Restart server to apply changes.")
}
