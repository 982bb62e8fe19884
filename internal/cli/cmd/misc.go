package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the web dashboard in a browser",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleOpen()
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleShowConfig()
	},
}

func init() {
	RootCmd.AddCommand(openCmd, configCmd)
}

func handleOpen() {
	url := Client.URL("/")
	fmt.Printf("Opening %s\n", url)
	exitOnError(browser.OpenURL(url), "Error opening browser")
}

func handleShowConfig() {
	cfg := container.Config
	view := map[string]interface{}{
		"config_file":        cfg.ConfigFile,
		"url":                cfg.URL,
		"username":           cfg.Username,
		"data_dir":           cfg.DataDir,
		"database_path":      cfg.DatabasePath,
		"log_file":           cfg.LogFile,
		"log_level":          cfg.LogLevel,
		"poll_fast_interval": cfg.FastInterval.String(),
		"poll_slow_interval": cfg.SlowInterval.String(),
		"session_stored":     container.Jar.HasSession(),
	}
	exitOnError(render(os.Stdout, OutputFormat, view, func(o *output) {
		o.linef("Config file:   %s", cfg.ConfigFile)
		o.linef("URL:           %s", cfg.URL)
		o.linef("Data dir:      %s", cfg.DataDir)
		o.linef("Session db:    %s", cfg.DatabasePath)
		o.linef("Log file:      %s (%s)", cfg.LogFile, cfg.LogLevel)
		o.linef("Polling:       %s / %s", cfg.FastInterval, cfg.SlowInterval)
		o.linef("Session:       %v", container.Jar.HasSession())
	}), "Error writing output")
}
