package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gorewood/aidocs/internal/config"
	"github.com/gorewood/aidocs/internal/output"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	name        string
	projectType string
	force       bool
}

// initResult is the JSON shape of the init command.
type initResult struct {
	Status      string   `json:"status"`
	ConfigFile  string   `json:"config_file"`
	ProjectName string   `json:"project_name"`
	ProjectType string   `json:"project_type"`
	Created     []string `json:"created"`
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize aidocs in a project",
		Long: `Initialize aidocs in the project directory.

This command:
  - Writes .ai-agent-config.json with the default settings
  - Creates the AI instructions file and the changelog from a minimal
    skeleton when they do not exist yet

Existing documentation files are never overwritten. An existing config is
only replaced with --force.

Examples:
  aidocs init
  aidocs init --name "Storefront" --type api
  aidocs init --force             # Reset the config to the defaults`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "Project name (default: directory name)")
	cmd.Flags().StringVar(&flags.projectType, "type", "web-app",
		"Project type: "+strings.Join(config.ProjectTypes, ", "))
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing config")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := newPrinter(cmd)
	if !config.ValidProjectType(flags.projectType) {
		return fail(printer, output.NewUserError(fmt.Sprintf(
			"invalid --type %q (use %s)", flags.projectType, strings.Join(config.ProjectTypes, ", "))))
	}

	root, err := projectRoot(cmd)
	if err != nil {
		return fail(printer, err)
	}
	proj := &project{fs: afero.NewOsFs(), root: root}

	if config.Exists(proj.fs, root) && !flags.force {
		return fail(printer, output.NewConflictError(
			config.FileName+" already exists (use --force to overwrite)"))
	}

	name := flags.name
	if name == "" {
		name = filepath.Base(root)
	}

	cfg, err := config.Initialize(proj.fs, root, name, flags.projectType, time.Now())
	if err != nil {
		return fail(printer, commandError("writing config", err))
	}
	proj.cfg = cfg

	created, err := proj.updater().WriteSkeletons()
	if err != nil {
		return fail(printer, commandError("creating docs", err))
	}

	result := initResult{
		Status:      "ok",
		ConfigFile:  config.FileName,
		ProjectName: cfg.ProjectName,
		ProjectType: cfg.ProjectType,
		Created:     created,
	}
	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.Println(fmt.Sprintf("Initialized aidocs for %s (%s)", cfg.ProjectName, cfg.ProjectType))
	printer.KeyValue("Config", config.FileName)
	printer.Section("Created")
	printer.Bullets(created, "no new docs (files already exist)")
	printer.Println()
	printer.Box("Next steps", strings.Join([]string{
		"aidocs update --change \"...\" --status \"...\"",
		"aidocs config set autoBackup true",
		"aidocs serve   # expose to MCP agents",
	}, "\n"))
	return nil
}
