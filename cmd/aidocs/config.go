package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/aidocs/internal/config"
	"github.com/gorewood/aidocs/internal/output"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the project configuration",
		Long: `Show or change .ai-agent-config.json.

The effective configuration merges the defaults, the file, and AIDOCS_*
environment overrides (e.g. AIDOCS_AUTOBACKUP=true).`,
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, asYAML)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output in YAML format")
	return cmd
}

func runConfigShow(cmd *cobra.Command, asYAML bool) error {
	printer := newPrinter(cmd)
	proj, err := loadProject(cmd)
	if err != nil {
		return fail(printer, err)
	}
	cfg := proj.cfg

	switch {
	case printer.IsJSON():
		return printer.WriteJSON(cfg)
	case asYAML:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fail(printer, output.NewSystemErrorWithCause("encoding YAML", err))
		}
		printer.Print("%s", data)
		return nil
	}

	if !config.Exists(proj.fs, proj.root) {
		printer.Warn("%s not found, showing defaults", config.FileName)
	}
	printer.KeyValue("projectName", cfg.ProjectName)
	printer.KeyValue("projectType", cfg.ProjectType)
	printer.KeyValue("aiInstructionsFile", cfg.AIInstructionsFile)
	printer.KeyValue("changelogFile", cfg.ChangelogFile)
	printer.KeyValue("updateSection", cfg.UpdateSection)
	printer.KeyValue("statusSection", cfg.StatusSection)
	printer.KeyValue("changesSection", cfg.ChangesSection)
	printer.KeyValue("nextSection", cfg.NextSection)
	printer.KeyValue("dateFormat", cfg.DateFormat)
	printer.KeyValue("autoUpdateChangelog", strconv.FormatBool(cfg.AutoUpdateChangelog))
	printer.KeyValue("autoBackup", strconv.FormatBool(cfg.AutoBackup))
	printer.KeyValue("maxBackups", strconv.Itoa(cfg.MaxBackups))
	printer.KeyValue("customSections", strings.Join(cfg.CustomSections, ", "))
	if cfg.InitializedAt != "" {
		printer.KeyValue("initializedAt", cfg.InitializedAt)
	}
	return nil
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one configuration value",
		Long: `Change one value in .ai-agent-config.json and save it.

Keys: ` + strings.Join(config.Keys(), ", ") + `

customSections takes a comma-separated list.

Examples:
  aidocs config set autoBackup true
  aidocs config set maxBackups 10
  aidocs config set changelogFile docs/CHANGELOG.md`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	}
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	printer := newPrinter(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return fail(printer, err)
	}
	fsys := afero.NewOsFs()

	cfg, err := config.LoadFile(fsys, root)
	if err != nil {
		return fail(printer, commandError("loading config", err))
	}
	if err := cfg.Set(key, value); err != nil {
		return fail(printer, commandError("setting "+key, err))
	}
	if err := config.Save(fsys, root, cfg); err != nil {
		return fail(printer, commandError("saving config", err))
	}

	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Set %s = %s", key, value),
		"key":     key,
		"value":   value,
	})
}
