package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gorewood/aidocs/internal/output"
)

// checkStatus represents the result status of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult represents the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results grouped by category.
type doctorResult struct {
	Version string         `json:"version"`
	Config  []checkResult  `json:"config"`
	Docs    []checkResult  `json:"docs"`
	Backups []checkResult  `json:"backups"`
	Summary *doctorSummary `json:"summary"`
}

// doctorSummary counts results by status.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// doctorFlags holds the flags for the doctor command.
type doctorFlags struct {
	quiet bool
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"validate"},
		Short:   "Check that the project is set up correctly",
		Long: `Check the aidocs setup of a project.

Checks:
  CONFIG   - config file present, parses, and validates
  DOCS     - instructions file has its update section; changelog has its anchors
  BACKUPS  - backup directory is writable; newest snapshot has readable metadata

Exits non-zero when any check fails. Warnings do not affect the exit code.

Examples:
  aidocs doctor           # Run all checks
  aidocs doctor --quiet   # Only show warnings and failures
  aidocs doctor --json    # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only show warnings and failures")

	return cmd
}

func runDoctor(cmd *cobra.Command, flags *doctorFlags) error {
	printer := newPrinter(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return fail(printer, err)
	}

	result := gatherDoctorChecks(afero.NewOsFs(), root)

	if printer.IsJSON() {
		if err := printer.WriteJSON(result); err != nil {
			return err
		}
	} else {
		outputDoctorHuman(printer, result, flags.quiet)
	}

	if result.Summary.Failed > 0 {
		err := output.NewUserError("doctor found failing checks")
		if !printer.IsJSON() {
			printer.Error(err)
		}
		return err
	}
	return nil
}

// gatherDoctorChecks runs every check and tallies the summary. When the
// config cannot be loaded the docs and backup checks are skipped, since
// they depend on the configured paths.
func gatherDoctorChecks(fsys afero.Fs, root string) *doctorResult {
	result := &doctorResult{
		Version: buildVersion(),
		Docs:    []checkResult{},
		Backups: []checkResult{},
		Summary: &doctorSummary{},
	}

	cfg, configChecks := runConfigChecks(fsys, root)
	result.Config = configChecks
	if cfg != nil {
		result.Docs = runDocsChecks(fsys, root, cfg)
		result.Backups = runBackupChecks(fsys, root)
	}

	for _, group := range [][]checkResult{result.Config, result.Docs, result.Backups} {
		for _, check := range group {
			switch check.Status {
			case checkPass:
				result.Summary.Passed++
			case checkWarn:
				result.Summary.Warnings++
			case checkFail:
				result.Summary.Failed++
			}
		}
	}
	return result
}

func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("aidocs doctor %s\n", result.Version)

	printCheckSection(printer, "CONFIG", result.Config, quiet)
	printCheckSection(printer, "DOCS", result.Docs, quiet)
	printCheckSection(printer, "BACKUPS", result.Backups, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

// printCheckSection prints one category. In quiet mode passing checks are
// hidden, and so is a category with nothing else to show.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	visible := make([]checkResult, 0, len(checks))
	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}
		visible = append(visible, check)
	}
	if len(visible) == 0 {
		return
	}

	printer.Println()
	printer.Println(title)
	for _, check := range visible {
		printer.Print("  %s  %s %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("     -> %s\n", check.Hint)
		}
	}
}

func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
