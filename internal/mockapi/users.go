package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"mcdash/pkg/sdk"
)

const minPasswordLength = 6

var errUserExists = errors.New("user already exists")

// addUser must not be called with s.mu held.
func (s *Server) addUser(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hashes[username]; ok {
		return errUserExists
	}
	s.hashes[username] = hash
	s.users = append(s.users, username)
	return nil
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, sdk.Users{
		Users:       append([]string{}, s.users...),
		CurrentUser: currentUser(r),
	})
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req sdk.AddUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		writeResult(w, false, "Username and password required")
		return
	}

	if err := s.addUser(username, req.Password); err != nil {
		if errors.Is(err, errUserExists) {
			writeResult(w, false, "User already exists")
			return
		}
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	writeResult(w, true, fmt.Sprintf("User %s added", username))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	var req sdk.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Username == currentUser(r) {
		writeResult(w, false, "Cannot delete your own account")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hashes[req.Username]; !ok {
		writeResult(w, false, "User not found")
		return
	}
	delete(s.hashes, req.Username)
	for i, u := range s.users {
		if u == req.Username {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	writeResult(w, true, fmt.Sprintf("User %s deleted", req.Username))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req sdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeResult(w, false, "All fields are required")
		return
	}
	username := currentUser(r)
	if !s.checkPassword(username, req.CurrentPassword) {
		writeResult(w, false, "Current password is incorrect")
		return
	}
	if utf8.RuneCountInString(req.NewPassword) < minPasswordLength {
		writeResult(w, false, fmt.Sprintf("New password must be at least %d characters", minPasswordLength))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[username] = hash
	writeResult(w, true, "Password changed successfully")
}
