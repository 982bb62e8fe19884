package dashboard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePasswordChange(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		wantErr bool
	}{
		{"ok", "old", "secret1", false},
		{"exactly six", "old", "123456", false},
		{"too short", "old", "12345", true},
		{"multibyte too short", "old", "ééé", true},
		{"multibyte six", "old", "éééééé", false},
		{"empty current", "", "secret1", true},
		{"empty new", "old", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordChange(tt.current, tt.next)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePasswordChange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error %v should wrap ErrValidation", err)
			}
		})
	}

	err := ValidatePasswordChange("old", "abc")
	if got := ValidationMessage(err); got != "New password must be at least 6 characters" {
		t.Errorf("ValidationMessage() = %q", got)
	}
}

func TestValidateNewUser(t *testing.T) {
	if err := ValidateNewUser("alice", "pw"); err != nil {
		t.Errorf("ValidateNewUser(alice) = %v", err)
	}
	if err := ValidateNewUser("  ", "pw"); err == nil {
		t.Error("blank username should fail")
	}
	if err := ValidateNewUser("alice", ""); err == nil {
		t.Error("empty password should fail")
	}
}

func TestValidateUpload(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "server.jar")
	if err := os.WriteFile(jar, []byte("jar"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateUpload(jar); err != nil {
		t.Errorf("ValidateUpload(jar) = %v", err)
	}
	if err := ValidateUpload(""); err == nil || ValidationMessage(err) != "Please select a file" {
		t.Errorf("empty path error = %v", err)
	}
	if err := ValidateUpload(filepath.Join(dir, "missing.jar")); err == nil {
		t.Error("missing file should fail")
	}
	if err := ValidateUpload(dir); err == nil {
		t.Error("directory should fail")
	}
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateUpload(txt); err != nil {
		t.Errorf("file type is checked by the server, got %v", err)
	}
}
