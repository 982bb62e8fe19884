package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mcdash/internal/app"
	"mcdash/internal/config"
	"mcdash/pkg/sdk"
)

var (
	Client *sdk.Client

	BaseURL      string
	ConfigFile   string
	OutputFormat string

	container *app.Container
)

// cliLog reports command failures on stderr. The file logger in the
// container records request details.
var cliLog = newCLILogger()

func newCLILogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

var RootCmd = &cobra.Command{
	Use:           "mcdash",
	Short:         "Dashboard and CLI for a remote Minecraft server manager",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if container != nil {
			container.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		RunDashboard()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&BaseURL, "url", "", "URL of the server manager (overrides config)")
	RootCmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mcdash/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&OutputFormat, "output", "o", formatText, "output format: text, json or yaml")
}

func setup(cmd *cobra.Command) error {
	if err := validateFormat(OutputFormat); err != nil {
		return err
	}

	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir, ConfigFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("url") {
		cfg.URL = strings.TrimSpace(BaseURL)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	container, err = app.New(cfg)
	if err != nil {
		return err
	}
	logrus.RegisterExitHandler(func() { container.Close() })

	container.Logger.WithFields(logrus.Fields{
		"command": cmd.CommandPath(),
		"url":     cfg.URL,
		"config":  cfg.ConfigFile,
	}).Debug("starting")

	Client = container.Client
	return nil
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		cliLog.Fatal(err)
	}
}

// exitOnError stops the command on err. A rejected session points the user
// at the login command instead of printing the raw error.
func exitOnError(err error, action string) {
	if err == nil {
		return
	}
	exitOnUnauthorized(err)
	if container != nil {
		container.Logger.WithError(err).Error(action)
	}
	cliLog.Fatalf("%s: %v", action, err)
}

func exitOnUnauthorized(err error) {
	if errors.Is(err, sdk.ErrUnauthorized) {
		cliLog.Fatal("Not authenticated. Run `mcdash login`.")
	}
}

// printResult shows the server message verbatim and exits 1 when the
// server reported a failure.
func printResult(res *sdk.Result) {
	exitOnError(render(os.Stdout, OutputFormat, res, func(w *output) {
		w.line(res.Message)
	}), "Error writing output")
	if !res.Success {
		logrus.Exit(1)
	}
}

func usageError(format string, args ...interface{}) {
	cliLog.Fatal(fmt.Sprintf(format, args...))
}
