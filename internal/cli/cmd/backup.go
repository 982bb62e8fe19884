package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"mcdash/internal/dashboard"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup of the active world",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleBackupCreate()
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleListBackups()
	},
}

func init() {
	backupCmd.AddCommand(backupCreateCmd, backupListCmd)
	RootCmd.AddCommand(backupCmd)
}

func handleBackupCreate() {
	res, err := Client.CreateBackup(context.Background())
	exitOnError(err, "Failed to create backup")
	printResult(res)
}

func handleListBackups() {
	backups, err := Client.ListBackups(context.Background())
	exitOnError(err, "Error listing backups")

	exitOnError(render(os.Stdout, OutputFormat, backups, func(o *output) {
		rows := dashboard.BackupRows(backups)
		if len(rows) == 0 {
			o.line(dashboard.NoBackupsMessage)
			return
		}
		cells := make([][]string, 0, len(rows))
		for _, r := range rows {
			cells = append(cells, []string{r.Name, r.Size, r.Created})
		}
		o.table([]string{"NAME", "SIZE", "CREATED"}, cells)
	}), "Error writing output")
}
