package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/aidocs/internal/config"
	"github.com/gorewood/aidocs/internal/docs"
)

// viewResult is the JSON shape of the view command.
type viewResult struct {
	ProjectName   string     `json:"project_name"`
	ProjectType   string     `json:"project_type"`
	Configured    bool       `json:"configured"`
	ChangelogFile string     `json:"changelog_file"`
	AutoBackup    bool       `json:"auto_backup"`
	MaxBackups    int        `json:"max_backups"`
	Docs          *docs.View `json:"docs"`
}

// newViewCmd creates the view command.
func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show project settings and the current documentation sections",
		Long: `Show the project's settings and what its AI instructions file currently
records as recent changes, status, and next steps.`,
		Args: cobra.NoArgs,
		RunE: runView,
	}
}

func runView(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	proj, err := loadProject(cmd)
	if err != nil {
		return fail(printer, err)
	}

	view, err := proj.updater().Read()
	if err != nil {
		return fail(printer, commandError("reading docs", err))
	}

	result := viewResult{
		ProjectName:   proj.cfg.ProjectName,
		ProjectType:   proj.cfg.ProjectType,
		Configured:    config.Exists(proj.fs, proj.root),
		ChangelogFile: proj.cfg.ChangelogFile,
		AutoBackup:    proj.cfg.AutoBackup,
		MaxBackups:    proj.cfg.MaxBackups,
		Docs:          view,
	}
	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.Section("Project")
	printer.KeyValue("Name", result.ProjectName)
	printer.KeyValue("Type", result.ProjectType)
	if !result.Configured {
		printer.KeyValue("Config", "defaults (run 'aidocs init')")
	}
	printer.KeyValue("Instructions", view.InstructionsFile)
	printer.KeyValue("Changelog", result.ChangelogFile)
	printer.KeyValue("Auto-backup", strconv.FormatBool(result.AutoBackup))
	printer.KeyValue("Max backups", strconv.Itoa(result.MaxBackups))
	printer.KeyValue("Backups dir", proj.store.Root())

	if !view.Found {
		printer.Println()
		printer.Println(view.InstructionsFile + " not found")
		return nil
	}

	status := view.Sections.Status
	if status == "" {
		status = "not set"
	}
	lastUpdated := view.Sections.LastUpdated
	if lastUpdated == "" {
		lastUpdated = "unknown"
	}

	printer.Section("Status")
	printer.KeyValue("Last updated", lastUpdated)
	printer.KeyValue("Status", status)
	printer.Section("Recent changes")
	printer.Bullets(view.Sections.Changes, "none recorded")
	printer.Section("Next steps")
	printer.Bullets(view.Sections.Next, "none planned")
	return nil
}
