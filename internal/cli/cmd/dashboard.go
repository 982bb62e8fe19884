package cmd

import (
	"github.com/spf13/cobra"

	"mcdash/internal/cli/ui"
	"mcdash/internal/dashboard"
)

var initialTab string

func init() {
	for _, c := range []*cobra.Command{RootCmd, dashboardCmd} {
		c.Flags().StringVar(&initialTab, "tab", dashboard.TabConfig.String(), "tab to open first: config, worlds, console, users or backups")
	}
	RootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the terminal dashboard (default)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		RunDashboard()
	},
}

// RunDashboard starts on the login screen when no session cookie is stored.
func RunDashboard() {
	tab, err := dashboard.ParseTab(initialTab)
	if err != nil {
		usageError("%v", err)
	}

	cfg := container.Config
	opts := ui.Options{
		Logger:       container.Logger,
		Username:     lastUsername(),
		InitialTab:   tab,
		FastInterval: cfg.FastInterval,
		SlowInterval: cfg.SlowInterval,
		StartAtLogin: !container.Jar.HasSession(),
		OnLogin:      rememberUsername,
	}
	exitOnError(ui.RunDashboard(Client, opts), "Error running dashboard")
}
