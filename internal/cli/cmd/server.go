package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mcdash/internal/dashboard"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleStatus()
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show CPU, memory and uptime of the running server",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleHealth()
	},
}

var consoleFollow bool

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Print the server console",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if consoleFollow {
			handleConsoleFollow()
			return
		}
		handleConsole()
	},
}

var commandCmd = &cobra.Command{
	Use:   "command [command...]",
	Short: "Send a command to the server console",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleCommand(strings.Join(args, " "))
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		res, err := Client.StartServer(context.Background())
		exitOnError(err, "Failed to start server")
		printResult(res)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the server",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		res, err := Client.StopServer(context.Background())
		exitOnError(err, "Failed to stop server")
		printResult(res)
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the server",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		res, err := Client.RestartServer(context.Background())
		exitOnError(err, "Failed to restart server")
		printResult(res)
	},
}

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Read or replace server.properties",
}

var propertiesGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print server.properties",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlePropertiesGet()
	},
}

var propertiesSetCmd = &cobra.Command{
	Use:   "set [file]",
	Short: "Replace server.properties with the contents of file (- for stdin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlePropertiesSet(args[0])
	},
}

func init() {
	consoleCmd.Flags().BoolVarP(&consoleFollow, "follow", "f", false, "keep polling and print new lines")

	propertiesCmd.AddCommand(propertiesGetCmd, propertiesSetCmd)
	RootCmd.AddCommand(statusCmd, healthCmd, consoleCmd, commandCmd, startCmd, stopCmd, restartCmd, propertiesCmd)
}

func handleStatus() {
	st, err := Client.Status(context.Background())
	exitOnError(err, "Error getting status")

	exitOnError(render(os.Stdout, OutputFormat, st, func(o *output) {
		o.linef("Status:       %s", st.Status)
		jar := "missing"
		if st.HasJar {
			jar = "present"
		}
		o.linef("Server jar:   %s", jar)
		active := st.ActiveWorld
		if active == "" {
			active = "-"
		}
		o.linef("Active world: %s", active)
		o.linef("Worlds:       %d", len(st.Worlds))
	}), "Error writing output")
}

func handleHealth() {
	h, err := Client.Health(context.Background())
	exitOnError(err, "Error getting health")

	exitOnError(render(os.Stdout, OutputFormat, h, func(o *output) {
		hb := dashboard.HealthView(h)
		if !hb.Visible {
			o.line("Server is not running.")
			return
		}
		o.linef("CPU:    %s", hb.CPU)
		o.linef("Memory: %s", hb.Memory)
		o.linef("Uptime: %s", hb.Uptime)
	}), "Error writing output")
}

func handleConsole() {
	lines, err := Client.Console(context.Background())
	exitOnError(err, "Error getting console")

	exitOnError(render(os.Stdout, OutputFormat, lines, func(o *output) {
		for _, l := range lines {
			o.line(l)
		}
	}), "Error writing output")
}

// handleConsoleFollow polls the console at the fast interval and prints only
// lines not seen in the previous poll. A failed poll is logged and retried
// on the next tick.
func handleConsoleFollow() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interval := container.Config.FastInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var prev []string
	for {
		lines, err := Client.Console(ctx)
		switch {
		case err == nil:
			for _, l := range dashboard.ConsoleDelta(prev, lines) {
				os.Stdout.WriteString(l + "\n")
			}
			prev = lines
		case ctx.Err() != nil:
			return
		default:
			exitOnUnauthorized(err)
			container.Logger.WithError(err).Warn("console poll failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func handleCommand(command string) {
	res, err := Client.SendCommand(context.Background(), command)
	exitOnError(err, "Failed to send command")
	printResult(res)
}

func handlePropertiesGet() {
	props, err := Client.Properties(context.Background())
	exitOnError(err, "Error getting properties")

	exitOnError(render(os.Stdout, OutputFormat, props, func(o *output) {
		o.line(dashboard.PropertiesText(props))
	}), "Error writing output")
}

func handlePropertiesSet(path string) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	exitOnError(err, "Error reading properties")

	res, err := Client.SaveProperties(context.Background(), string(data))
	exitOnError(err, "Failed to save properties")
	printResult(res)
}
