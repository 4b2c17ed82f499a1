package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/aidocs/internal/backup"
)

// newRestoreCmd creates the restore command.
func newRestoreCmd() *cobra.Command {
	var restoreConfig bool
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore documentation files from a snapshot",
		Long: `Copy the files of a snapshot back over the paths the project currently
configures. Files the snapshot does not hold are left alone.

The project config is only restored with --config.

Examples:
  aidocs backup list                           # Find the id
  aidocs restore 2024-03-05T14-07-09-123Z
  aidocs restore 2024-03-05T14-07-09-123Z --config`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args[0], restoreConfig)
		},
	}
	cmd.Flags().BoolVar(&restoreConfig, "config", false, "Also restore the project config")
	return cmd
}

func runRestore(cmd *cobra.Command, id string, restoreConfig bool) error {
	printer := newPrinter(cmd)
	proj, err := loadProject(cmd)
	if err != nil {
		return fail(printer, err)
	}

	result, err := proj.store.Restore(id, proj.cfg.Project(), backup.RestoreOptions{RestoreConfig: restoreConfig})
	if err != nil {
		return fail(printer, commandError("restoring backup", err))
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.Println(fmt.Sprintf("Restored backup %s", result.ID))
	printer.Bullets(result.RestoredFiles, "no files restored")
	return nil
}
