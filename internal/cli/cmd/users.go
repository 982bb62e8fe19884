package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mcdash/internal/cli/ui"
	"mcdash/internal/dashboard"
	"mcdash/internal/storage"
	"mcdash/pkg/sdk"
)

const passwordEnv = "MCDASH_PASSWORD"

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage dashboard users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleListUsers()
	},
}

var addPassword string

var usersAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Add a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleAddUser(args[0], addPassword)
	},
}

var deleteYes bool

var usersDeleteCmd = &cobra.Command{
	Use:   "delete [username]",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleDeleteUser(args[0])
	},
}

var passwdCurrent, passwdNew string

var usersPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleChangePassword(passwdCurrent, passwdNew)
	},
}

var loginUsername, loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleLogin(loginUsername, loginPassword)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleLogout()
	},
}

func init() {
	usersAddCmd.Flags().StringVar(&addPassword, "password", "", "password for the new user (prompted when empty)")
	usersDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
	usersPasswdCmd.Flags().StringVar(&passwdCurrent, "current", "", "current password (prompted when empty)")
	usersPasswdCmd.Flags().StringVar(&passwdNew, "new", "", "new password (prompted when empty)")
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (defaults to the last one used)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when empty, or MCDASH_PASSWORD)")

	usersCmd.AddCommand(usersListCmd, usersAddCmd, usersDeleteCmd, usersPasswdCmd)
	RootCmd.AddCommand(usersCmd, loginCmd, logoutCmd)
}

// promptIfEmpty returns value, or asks for it on the terminal.
func promptIfEmpty(value, label string, secret bool) string {
	if value != "" {
		return value
	}
	v, err := ui.Prompt(label, secret)
	if errors.Is(err, ui.ErrPromptCancelled) {
		usageError("Cancelled.")
	}
	exitOnError(err, "Error reading input")
	return v
}

func handleListUsers() {
	users, err := Client.ListUsers(context.Background())
	exitOnError(err, "Error listing users")

	rows := dashboard.UserRows(users.Users, users.CurrentUser)
	exitOnError(render(os.Stdout, OutputFormat, users, func(o *output) {
		if len(rows) == 0 {
			o.line(dashboard.NoUsersMessage)
			return
		}
		for _, r := range rows {
			if r.Current {
				o.linef("* %s (you)", r.Username)
				continue
			}
			o.linef("  %s", r.Username)
		}
	}), "Error writing output")
}

func handleAddUser(username, password string) {
	password = promptIfEmpty(password, "Password:", true)
	if err := dashboard.ValidateNewUser(username, password); err != nil {
		usageError("%s", dashboard.ValidationMessage(err))
	}

	res, err := Client.AddUser(context.Background(), strings.TrimSpace(username), password)
	exitOnError(err, "Failed to add user")
	printResult(res)
}

// handleDeleteUser refuses to delete the signed-in user, the same rule the
// dashboard applies to its user list.
func handleDeleteUser(username string) {
	users, err := Client.ListUsers(context.Background())
	exitOnError(err, "Failed to delete user")
	for _, r := range dashboard.UserRows(users.Users, users.CurrentUser) {
		if r.Username == username && !r.CanDelete {
			usageError("You cannot delete the user you are signed in as.")
		}
	}

	if !deleteYes {
		answer := promptIfEmpty("", fmt.Sprintf("Delete user %s? (y/n)", username), false)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Deletion cancelled.")
			return
		}
	}

	res, err := Client.DeleteUser(context.Background(), username)
	exitOnError(err, "Failed to delete user")
	printResult(res)
}

func handleChangePassword(current, next string) {
	current = promptIfEmpty(current, "Current password:", true)
	next = promptIfEmpty(next, "New password:", true)
	if err := dashboard.ValidatePasswordChange(current, next); err != nil {
		usageError("%s", dashboard.ValidationMessage(err))
	}

	res, err := Client.ChangePassword(context.Background(), current, next)
	exitOnError(err, "Failed to change password")
	printResult(res)
}

func handleLogin(username, password string) {
	if username == "" {
		username = lastUsername()
	}
	username = strings.TrimSpace(promptIfEmpty(username, "Username:", false))
	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	password = promptIfEmpty(password, "Password:", true)

	err := Client.Login(context.Background(), username, password)
	if errors.Is(err, sdk.ErrInvalidCredentials) {
		usageError("Invalid username or password")
	}
	exitOnError(err, "Login failed")

	rememberUsername(username)
	fmt.Printf("Logged in to %s as %s.\n", Client.BaseURL(), username)
}

func handleLogout() {
	exitOnError(Client.Logout(context.Background()), "Logout failed")
	// the server normally expires the cookie itself; drop anything left
	exitOnError(container.Jar.Clear(), "Error clearing session")
	fmt.Println("Logged out.")
}

// lastUsername prefers the config value, then the one stored by the last
// successful login.
func lastUsername() string {
	if container.Config.Username != "" {
		return container.Config.Username
	}
	name, err := container.Store.GetSetting(storage.SettingLastUsername)
	if err != nil {
		container.Logger.WithError(err).Warn("could not read last username")
		return ""
	}
	return name
}

func rememberUsername(username string) {
	if err := container.Store.SetSetting(storage.SettingLastUsername, username); err != nil {
		container.Logger.WithError(err).Warn("could not store last username")
	}
}
