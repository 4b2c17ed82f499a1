package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/aidocs/internal/docs"
	"github.com/gorewood/aidocs/internal/output"
)

// updateFlags holds the command-line flags for the update command.
type updateFlags struct {
	changes []string
	status  string
	next    []string
}

// newUpdateCmd creates the update command.
func newUpdateCmd() *cobra.Command {
	flags := &updateFlags{}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Record changes, status, and next steps in the docs",
		Long: `Rewrite the "Recent Changes & Updates" section of the AI instructions file
and, when autoUpdateChangelog is set, the matching parts of the changelog.

--change and --next may be repeated. With autoBackup set, the tracked files
are snapshotted first; a failed snapshot is reported as a warning and the
update still runs.

Examples:
  aidocs update --change "Added login page" --status "Auth in progress"
  aidocs update --change "Fixed cache" --change "Bumped deps" --next "Ship 1.2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd, flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.changes, "change", nil, "A change to record (repeatable)")
	cmd.Flags().StringVar(&flags.status, "status", "", "Current project status")
	cmd.Flags().StringArrayVar(&flags.next, "next", nil, "A planned next step (repeatable)")

	return cmd
}

func runUpdate(cmd *cobra.Command, flags *updateFlags) error {
	printer := newPrinter(cmd)
	if len(flags.changes) == 0 && flags.status == "" && len(flags.next) == 0 {
		return fail(printer, output.NewUserError("nothing to record: pass --change, --status, or --next"))
	}

	proj, err := loadProject(cmd)
	if err != nil {
		return fail(printer, err)
	}

	result, err := proj.updater().Apply(docs.Update{
		Changes: flags.changes,
		Status:  flags.status,
		Next:    flags.next,
	})
	if err != nil {
		return fail(printer, commandError("updating docs", err))
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	for _, w := range result.Warnings {
		printer.Warn("%s", w)
	}
	printer.KeyValue("Date", result.Date)
	printer.KeyValue(result.InstructionsFile, updatedLabel(result.InstructionsUpdated))
	if result.ChangelogFile != "" {
		printer.KeyValue(result.ChangelogFile, updatedLabel(result.ChangelogUpdated))
	}
	if result.Backup != nil && result.Backup.Snapshot != nil {
		printer.KeyValue("Backup", result.Backup.Snapshot.ID)
	}
	return nil
}

func updatedLabel(updated bool) string {
	if updated {
		return "updated"
	}
	return "unchanged"
}
