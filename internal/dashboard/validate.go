package dashboard

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 6

// ErrValidation wraps every local validation failure. These are caught
// before any request is sent.
var ErrValidation = errors.New("validation failed")

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// ValidationMessage strips the ErrValidation prefix for display.
func ValidationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
}

func ValidatePasswordChange(current, next string) error {
	if current == "" || next == "" {
		return validationError("Please fill in all fields")
	}
	if utf8.RuneCountInString(next) < MinPasswordLength {
		return validationError(fmt.Sprintf("New password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

func ValidateNewUser(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return validationError("Please fill in all fields")
	}
	return nil
}

// ValidateUpload checks that path names an existing regular file. The file
// type is left to the server.
func ValidateUpload(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return validationError("Please select a file")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return validationError(fmt.Sprintf("File not found: %s", path))
		}
		return validationError(err.Error())
	}
	if info.IsDir() {
		return validationError(fmt.Sprintf("%s is a directory", path))
	}
	return nil
}
