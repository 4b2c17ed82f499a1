// Package main provides the entry point for the aidocs CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gorewood/aidocs/internal/config"
	"github.com/gorewood/aidocs/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// colorMode reads the --color persistent flag, defaulting to "auto".
func colorMode(cmd *cobra.Command) string {
	flag := cmd.Flags().Lookup("color")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("color")
	}
	if flag == nil {
		return "auto"
	}
	return flag.Value.String()
}

// useColor reports whether human output should be styled.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(colorMode(cmd), output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter creates the printer every command writes through.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the aidocs CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aidocs",
		Short: "Keep AI agent instructions and changelogs current",
		Long: `aidocs maintains the documentation a coding agent works from.

It keeps two files in sync with the work being done:
  - the AI instructions file, whose "Recent Changes & Updates" section is
    rewritten on every update
  - the changelog, whose date, modifications, status, and next steps are
    updated in place

Before changes it can snapshot both files (and the project config) into
.ai-agent-backups/, and restore any snapshot later.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'aidocs --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if mode := colorMode(cmd); !output.ValidColorMode(mode) {
			err := output.NewUserError(fmt.Sprintf("invalid --color value %q (use auto, always, or never)", mode))
			output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr()).Error(err)
			return err
		}
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Colorize output: auto, always, never")
	cmd.PersistentFlags().StringP("dir", "C", "", "Project root (default: current directory)")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. Variables already set
// always win, so earlier files take precedence over later ones.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. <config dir>/env (global fallback)
func loadEnvFiles() {
	for _, path := range []string{".env.local", ".env", config.EnvFile()} {
		if path == "" {
			continue
		}
		_ = godotenv.Load(path)
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "backup", Title: "Backup Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newUpdateCmd(), "core")
	addGroupedCommand(cmd, newViewCmd(), "core")

	addGroupedCommand(cmd, newBackupCmd(), "backup")
	addGroupedCommand(cmd, newRestoreCmd(), "backup")

	addGroupedCommand(cmd, newServeCmd(), "agent")

	addGroupedCommand(cmd, newInitCmd(), "admin")
	addGroupedCommand(cmd, newConfigCmd(), "admin")
	addGroupedCommand(cmd, newDoctorCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
