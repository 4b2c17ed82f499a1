package main

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/gorewood/aidocs/internal/backup"
	"github.com/gorewood/aidocs/internal/config"
	"github.com/gorewood/aidocs/internal/docs"
	"github.com/gorewood/aidocs/internal/fsutil"
)

// runConfigChecks checks the config file. It returns the loaded config, or
// nil when it could not be loaded.
func runConfigChecks(fsys afero.Fs, root string) (*config.Config, []checkResult) {
	checks := make([]checkResult, 0, 2)

	if config.Exists(fsys, root) {
		checks = append(checks, checkResult{
			Name:    "Config File",
			Status:  checkPass,
			Message: config.FileName + " found",
		})
	} else {
		checks = append(checks, checkResult{
			Name:    "Config File",
			Status:  checkWarn,
			Message: config.FileName + " not found, using defaults",
			Hint:    "Run 'aidocs init' to create it",
		})
	}

	cfg, err := config.Load(fsys, root)
	if err != nil {
		checks = append(checks, checkResult{
			Name:    "Config Valid",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Fix the file by hand or with 'aidocs config set'",
		})
		return nil, checks
	}
	checks = append(checks, checkResult{
		Name:    "Config Valid",
		Status:  checkPass,
		Message: "project " + cfg.ProjectName + " (" + cfg.ProjectType + ")",
	})
	return cfg, checks
}

// runDocsChecks checks the instructions file and the changelog.
func runDocsChecks(fsys afero.Fs, root string, cfg *config.Config) []checkResult {
	return []checkResult{
		checkInstructions(fsys, root, cfg),
		checkChangelog(fsys, root, cfg),
	}
}

func checkInstructions(fsys afero.Fs, root string, cfg *config.Config) checkResult {
	const name = "Instructions File"
	data, err := afero.ReadFile(fsys, cfg.InstructionsPath(root))
	if err != nil {
		return checkResult{
			Name:    name,
			Status:  checkFail,
			Message: cfg.AIInstructionsFile + " not readable",
			Hint:    "Run 'aidocs init' to create it",
		}
	}
	if !strings.Contains(string(data), cfg.UpdateSection) {
		return checkResult{
			Name:    name,
			Status:  checkFail,
			Message: fmt.Sprintf("%s has no %q section", cfg.AIInstructionsFile, cfg.UpdateSection),
			Hint:    "Add the section header or change updateSection",
		}
	}
	return checkResult{
		Name:    name,
		Status:  checkPass,
		Message: cfg.AIInstructionsFile + " has its update section",
	}
}

// checkChangelog reports a missing changelog or missing anchors as a
// warning: updates skip what they cannot find but still succeed.
func checkChangelog(fsys afero.Fs, root string, cfg *config.Config) checkResult {
	const name = "Changelog"
	data, err := afero.ReadFile(fsys, cfg.ChangelogPath(root))
	if err != nil {
		return checkResult{
			Name:    name,
			Status:  checkWarn,
			Message: cfg.ChangelogFile + " not readable",
			Hint:    "Run 'aidocs init' to create it",
		}
	}

	var missing []string
	for _, anchor := range docs.ChangelogAnchors() {
		if !strings.Contains(string(data), anchor) {
			missing = append(missing, anchor)
		}
	}
	if len(missing) > 0 {
		return checkResult{
			Name:    name,
			Status:  checkWarn,
			Message: cfg.ChangelogFile + " is missing " + strings.Join(missing, ", "),
			Hint:    "Updates leave the missing parts untouched",
		}
	}
	return checkResult{
		Name:    name,
		Status:  checkPass,
		Message: cfg.ChangelogFile + " has all anchors",
	}
}

// runBackupChecks checks the backup store.
func runBackupChecks(fsys afero.Fs, root string) []checkResult {
	store := backup.NewStore(fsys, root, "")
	return []checkResult{
		checkBackupRootWritable(fsys, root, store.Root()),
		checkNewestSnapshot(store),
	}
}

// checkBackupRootWritable writes and removes a scratch file in the backup
// root, or in the project root when no snapshot has been taken yet.
func checkBackupRootWritable(fsys afero.Fs, root, backupRoot string) checkResult {
	const name = "Backup Directory"
	dir := backupRoot
	if !fsutil.Exists(fsys, dir) {
		dir = root
	}

	f, err := afero.TempFile(fsys, dir, ".aidocs-doctor-*")
	if err != nil {
		return checkResult{
			Name:    name,
			Status:  checkFail,
			Message: dir + " is not writable",
			Hint:    "Snapshots cannot be created until this is fixed",
		}
	}
	_ = f.Close()
	_ = fsys.Remove(f.Name())

	return checkResult{
		Name:    name,
		Status:  checkPass,
		Message: backupRoot + " is writable",
	}
}

func checkNewestSnapshot(store *backup.Store) checkResult {
	const name = "Newest Snapshot"
	summaries, err := store.List()
	if err != nil {
		return checkResult{
			Name:    name,
			Status:  checkFail,
			Message: "cannot list snapshots: " + err.Error(),
		}
	}
	if len(summaries) == 0 {
		return checkResult{
			Name:    name,
			Status:  checkPass,
			Message: "no snapshots yet",
		}
	}

	newest := summaries[0]
	if newest.CreatedAt == nil {
		return checkResult{
			Name:    name,
			Status:  checkFail,
			Message: newest.ID + " has no readable " + backup.MetadataFile,
			Hint:    "Take a fresh snapshot with 'aidocs backup create'",
		}
	}
	return checkResult{
		Name:    name,
		Status:  checkPass,
		Message: fmt.Sprintf("%s (%d files)", newest.ID, newest.FilesCount),
	}
}
