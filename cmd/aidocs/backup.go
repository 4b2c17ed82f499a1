package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/gorewood/aidocs/internal/backup"
	"github.com/gorewood/aidocs/internal/output"
)

// newBackupCmd creates the backup command group.
func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list, and prune documentation snapshots",
		Long: `Manage snapshots of the tracked documentation files.

Each snapshot is a directory under .ai-agent-backups/ named by its UTC
creation time. It holds copies of the AI instructions file, the changelog,
and the project config, plus a backup-info.json describing them.

Examples:
  aidocs backup create              # Snapshot now, prune to maxBackups
  aidocs backup list                # Newest first
  aidocs backup prune --keep 3      # Keep the three newest
  aidocs restore <id>               # Restore a snapshot`,
	}
	cmd.AddCommand(newBackupCreateCmd())
	cmd.AddCommand(newBackupListCmd())
	cmd.AddCommand(newBackupDeleteCmd())
	cmd.AddCommand(newBackupPruneCmd())
	cmd.AddCommand(newBackupStatsCmd())
	return cmd
}

func newBackupCreateCmd() *cobra.Command {
	var timestamp string
	var maxBackups int
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the tracked documentation files",
		Long: `Copy the tracked files that currently exist into a new snapshot.

Afterwards the store is pruned to --max snapshots, or to the project's
maxBackups setting when --max is not given. Use --max 0 with a maxBackups of
0 to keep every snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBackupCreate(cmd, timestamp, maxBackups)
		},
	}
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "Explicit snapshot id (default: current UTC time)")
	cmd.Flags().IntVar(&maxBackups, "max", 0, "Prune to this many snapshots afterwards (default: config maxBackups)")
	return cmd
}

func runBackupCreate(cmd *cobra.Command, timestamp string, maxBackups int) error {
	printer := newPrinter(cmd)
	if maxBackups < 0 {
		return fail(printer, output.NewUserError("--max must not be negative"))
	}

	proj, err := loadProject(cmd)
	if err != nil {
		return fail(printer, err)
	}
	if !cmd.Flags().Changed("max") {
		maxBackups = proj.cfg.MaxBackups
	}

	result, err := proj.store.Create(proj.cfg.Project(), backup.CreateOptions{
		Timestamp:  timestamp,
		MaxBackups: maxBackups,
	})
	if err != nil {
		return fail(printer, commandError("creating backup", err))
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.Println(fmt.Sprintf("Created backup %s (%d files)", result.ID, result.FilesBackedUp))
	printer.KeyValue("Path", result.Path)
	if result.Pruned > 0 {
		printer.KeyValue("Pruned", strconv.Itoa(result.Pruned))
	}
	for _, w := range result.Warnings {
		printer.Warn("%s", w)
	}
	return nil
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List snapshots, newest first",
		Args:    cobra.NoArgs,
		RunE:    runBackupList,
	}
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	proj, err := loadProject(cmd)
	if err != nil {
		return fail(printer, err)
	}

	summaries, err := proj.store.List()
	if err != nil {
		return fail(printer, commandError("listing backups", err))
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"count": len(summaries), "backups": summaries})
	}

	if len(summaries) == 0 {
		printer.Println("No backups found.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		created := "unknown"
		if s.CreatedAt != nil {
			created = s.CreatedAt.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{s.ID, created, strconv.Itoa(s.FilesCount), s.Name()})
	}
	printer.Table([]string{"ID", "CREATED", "FILES", "PROJECT"}, rows)
	return nil
}

func newBackupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete one snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			proj, err := loadProject(cmd)
			if err != nil {
				return fail(printer, err)
			}
			result, err := proj.store.Delete(args[0])
			if err != nil {
				return fail(printer, commandError("deleting backup", err))
			}
			if printer.IsJSON() {
				return printer.WriteJSON(result)
			}
			return printer.Success(map[string]any{"message": "Deleted backup " + result.Deleted})
		},
	}
}

func newBackupPruneCmd() *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest snapshots",
		Long: `Keep the --keep newest snapshots and delete the rest.

A snapshot that cannot be deleted is reported as a warning and pruning
continues with the next one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBackupPrune(cmd, keep)
		},
	}
	cmd.Flags().IntVar(&keep, "keep", backup.DefaultMaxBackups, "Number of snapshots to keep")
	return cmd
}

func runBackupPrune(cmd *cobra.Command, keep int) error {
	printer := newPrinter(cmd)
	if keep < 0 {
		return fail(printer, output.NewUserError("--keep must not be negative"))
	}
	proj, err := loadProject(cmd)
	if err != nil {
		return fail(printer, err)
	}

	result, err := proj.store.Prune(keep)
	if err != nil {
		return fail(printer, commandError("pruning backups", err))
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	for _, f := range result.Failures {
		printer.Warn("failed to delete backup %s: %s", f.ID, f.Error)
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Deleted %d backups, kept %d", result.Deleted, result.Kept),
	})
}

func newBackupStatsCmd() *cobra.Command {
	var toon bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show snapshot count, total size, and age range",
		Long: `Show how many snapshots exist, their combined size, and the oldest and
newest snapshot ids.

--toon prints the stats in TOON, a compact token-oriented notation that is
cheaper for language models to read than JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBackupStats(cmd, toon)
		},
	}
	cmd.Flags().BoolVar(&toon, "toon", false, "Output in TOON format")
	return cmd
}

func runBackupStats(cmd *cobra.Command, toon bool) error {
	printer := newPrinter(cmd)
	proj, err := loadProject(cmd)
	if err != nil {
		return fail(printer, err)
	}

	stats, err := proj.store.Stats()
	if err != nil {
		return fail(printer, commandError("reading backup stats", err))
	}

	switch {
	case printer.IsJSON():
		return printer.WriteJSON(stats)
	case toon:
		encoded, err := gotoon.Encode(*stats)
		if err != nil {
			return fail(printer, output.NewSystemErrorWithCause("encoding TOON", err))
		}
		printer.Println(encoded)
		return nil
	}

	oldest, newest := "none", "none"
	if stats.OldestBackup != nil {
		oldest = *stats.OldestBackup
	}
	if stats.NewestBackup != nil {
		newest = *stats.NewestBackup
	}
	printer.KeyValue("Backups", strconv.Itoa(stats.TotalBackups))
	printer.KeyValue("Total size", output.FormatBytes(stats.TotalSize))
	printer.KeyValue("Oldest", oldest)
	printer.KeyValue("Newest", newest)
	return nil
}
