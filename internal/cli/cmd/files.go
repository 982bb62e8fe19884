package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mcdash/internal/dashboard"
	"mcdash/pkg/sdk"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a server jar or a world archive",
}

var uploadJarCmd = &cobra.Command{
	Use:   "jar [path]",
	Short: "Upload a server jar",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleUpload(args[0], Client.UploadJar)
	},
}

var uploadWorldCmd = &cobra.Command{
	Use:   "world [path]",
	Short: "Upload a world archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleUpload(args[0], Client.UploadWorld)
	},
}

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "Manage worlds",
}

var worldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded worlds",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleListWorlds()
	},
}

var worldsSetCmd = &cobra.Command{
	Use:   "set [world]",
	Short: "Set the active world",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleSetWorld(args[0])
	},
}

func init() {
	uploadCmd.AddCommand(uploadJarCmd, uploadWorldCmd)
	worldsCmd.AddCommand(worldsListCmd, worldsSetCmd)
	RootCmd.AddCommand(uploadCmd, worldsCmd)
}

type uploadFunc func(ctx context.Context, filename string, file io.Reader) (*sdk.Result, error)

func handleUpload(path string, upload uploadFunc) {
	if err := dashboard.ValidateUpload(path); err != nil {
		usageError("%s", dashboard.ValidationMessage(err))
	}

	f, err := os.Open(path)
	exitOnError(err, "Upload failed")
	defer f.Close()

	res, err := upload(context.Background(), filepath.Base(path), f)
	exitOnError(err, "Upload failed")
	printResult(res)
}

func handleListWorlds() {
	st, err := Client.Status(context.Background())
	exitOnError(err, "Error listing worlds")

	rows := dashboard.WorldRows(st.Worlds, st.ActiveWorld)
	exitOnError(render(os.Stdout, OutputFormat, rows, func(o *output) {
		if len(rows) == 0 {
			o.line(dashboard.NoWorldsMessage)
			return
		}
		for _, r := range rows {
			if r.Active {
				o.linef("* %s (active)", r.Name)
				continue
			}
			o.linef("  %s", r.Name)
		}
	}), "Error writing output")
}

func handleSetWorld(world string) {
	res, err := Client.SetWorld(context.Background(), world)
	exitOnError(err, "Failed to set active world")
	printResult(res)
}
