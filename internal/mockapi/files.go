package mockapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"mcdash/pkg/sdk"
)

const maxUploadBytes = 500 << 20

// formFile reads the single multipart field "file". ok is false when the
// reply has already been written.
func formFile(w http.ResponseWriter, r *http.Request, ext string) (name string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeResult(w, false, "No file uploaded")
		return "", false
	}
	defer f.Close()

	if hdr.Filename == "" {
		writeResult(w, false, "No file selected")
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(hdr.Filename), ext) {
		writeResult(w, false, fmt.Sprintf("Only %s files are allowed", ext))
		return "", false
	}
	if _, err := io.Copy(io.Discard, f); err != nil {
		writeResult(w, false, fmt.Sprintf("Failed to read upload: %v", err))
		return "", false
	}
	return filepath.Base(hdr.Filename), true
}

func (s *Server) handleUploadJar(w http.ResponseWriter, r *http.Request) {
	if _, ok := formFile(w, r, ".jar"); !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasJar = true
	writeResult(w, true, "Server JAR uploaded successfully")
}

// handleUploadWorld replaces any world of the same name. A running server is
// restarted around the upload.
func (s *Server) handleUploadWorld(w http.ResponseWriter, r *http.Request) {
	filename, ok := formFile(w, r, ".zip")
	if !ok {
		return
	}
	world := strings.TrimSuffix(filename, filepath.Ext(filename))

	s.mu.Lock()
	defer s.mu.Unlock()

	wasRunning := s.running
	if wasRunning {
		s.stop()
	}

	exists := false
	for _, name := range s.worlds {
		if name == world {
			exists = true
			break
		}
	}
	if !exists {
		s.worlds = append(s.worlds, world)
	}

	message := fmt.Sprintf("World %q uploaded successfully", world)
	if wasRunning {
		s.start()
		message += " and server restarted"
	}
	writeResult(w, true, message)
}

func (s *Server) handleSetWorld(w http.ResponseWriter, r *http.Request) {
	var req sdk.SetWorldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.World == "" {
		writeResult(w, false, "No world name provided")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	content := ""
	if s.properties != nil {
		content = *s.properties
	}
	content = setProperty(content, "level-name", req.World)
	s.properties = &content
	writeResult(w, true, fmt.Sprintf("Active world set to %q. Restart server to apply.", req.World))
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	world := s.activeWorld()
	if world == "" {
		writeResult(w, false, "No world to back up")
		return
	}

	now := s.now()
	b := sdk.Backup{
		Name:    fmt.Sprintf("%s_%s.zip", world, now.Format("20060102_150405")),
		SizeMB:  42.5,
		Created: now.Format("2006-01-02 15:04:05"),
	}
	s.backups = append([]sdk.Backup{b}, s.backups...)
	writeResult(w, true, "Backup created: "+b.Name)
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string][]sdk.Backup{"backups": append([]sdk.Backup{}, s.backups...)})
}
