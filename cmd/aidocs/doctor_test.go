package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/gorewood/aidocs/internal/backup"
	"github.com/gorewood/aidocs/internal/config"
	"github.com/gorewood/aidocs/internal/output"
)

func writeProjectFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// checkStatuses flattens a doctor result into name -> status.
func checkStatuses(result doctorResult) map[string]checkStatus {
	statuses := make(map[string]checkStatus)
	for _, group := range [][]checkResult{result.Config, result.Docs, result.Backups} {
		for _, check := range group {
			statuses[check.Name] = check.Status
		}
	}
	return statuses
}

func TestDoctorCommand(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T) string
		wantErr    bool
		wantStatus map[string]checkStatus
		wantAbsent []string
	}{
		{
			name:    "healthy project",
			setup:   func(t *testing.T) string { return initProject(t) },
			wantErr: false,
			wantStatus: map[string]checkStatus{
				"Config File":       checkPass,
				"Config Valid":      checkPass,
				"Instructions File": checkPass,
				"Changelog":         checkPass,
				"Backup Directory":  checkPass,
				"Newest Snapshot":   checkPass,
			},
		},
		{
			name:    "uninitialized directory",
			setup:   func(t *testing.T) string { return t.TempDir() },
			wantErr: true,
			wantStatus: map[string]checkStatus{
				"Config File":       checkWarn,
				"Config Valid":      checkPass,
				"Instructions File": checkFail,
				"Changelog":         checkWarn,
			},
		},
		{
			name: "unparseable config skips the other checks",
			setup: func(t *testing.T) string {
				dir := initProject(t)
				writeProjectFile(t, dir, config.FileName, "{not json")
				return dir
			},
			wantErr:    true,
			wantStatus: map[string]checkStatus{"Config Valid": checkFail},
			wantAbsent: []string{"Instructions File", "Newest Snapshot"},
		},
		{
			name: "instructions file without the update section",
			setup: func(t *testing.T) string {
				dir := initProject(t)
				writeProjectFile(t, dir, "AI_INSTRUCTIONS.md", "# Widget\n\nNothing here yet.\n")
				return dir
			},
			wantErr:    true,
			wantStatus: map[string]checkStatus{"Instructions File": checkFail},
		},
		{
			name: "changelog without anchors only warns",
			setup: func(t *testing.T) string {
				dir := initProject(t)
				writeProjectFile(t, dir, "CHANGELOG.md", "# Changelog\n\n- something\n")
				return dir
			},
			wantErr:    false,
			wantStatus: map[string]checkStatus{"Changelog": checkWarn},
		},
		{
			name: "newest snapshot without metadata",
			setup: func(t *testing.T) string {
				dir := initProject(t)
				createBackup(t, dir, "2024-01-01T00-00-00-000Z")
				createBackup(t, dir, "2024-01-02T00-00-00-000Z")
				meta := filepath.Join(dir, backup.DefaultDirName, "2024-01-02T00-00-00-000Z", backup.MetadataFile)
				if err := os.Remove(meta); err != nil {
					t.Fatalf("failed to remove metadata: %v", err)
				}
				return dir
			},
			wantErr:    true,
			wantStatus: map[string]checkStatus{"Newest Snapshot": checkFail},
		},
		{
			name: "newest snapshot with metadata",
			setup: func(t *testing.T) string {
				dir := initProject(t)
				createBackup(t, dir, "2024-01-01T00-00-00-000Z")
				return dir
			},
			wantErr:    false,
			wantStatus: map[string]checkStatus{"Newest Snapshot": checkPass},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)

			out, err := executeCommand(t, "doctor", "--dir", dir, "--json")
			if (err != nil) != tt.wantErr {
				t.Fatalf("doctor error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, out)
			}
			if err != nil && output.GetExitCode(err) != output.ExitUserError {
				t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
			}

			var result doctorResult
			decodeJSON(t, out, &result)
			if result.Summary == nil {
				t.Fatal("summary missing from JSON output")
			}
			if tt.wantErr && result.Summary.Failed == 0 {
				t.Error("summary should count the failing check")
			}

			statuses := checkStatuses(result)
			for name, want := range tt.wantStatus {
				if got, ok := statuses[name]; !ok {
					t.Errorf("check %q missing", name)
				} else if got != want {
					t.Errorf("check %q = %s, want %s", name, got, want)
				}
			}
			for _, name := range tt.wantAbsent {
				if _, ok := statuses[name]; ok {
					t.Errorf("check %q should have been skipped", name)
				}
			}
		})
	}
}

func TestDoctorCommand_ValidateAlias(t *testing.T) {
	dir := initProject(t)

	out, err := executeCommand(t, "validate", "--dir", dir)
	if err != nil {
		t.Fatalf("validate error = %v\nOutput: %s", err, out)
	}
	for _, want := range []string{"CONFIG", "DOCS", "BACKUPS", "0 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestDoctorCommand_Quiet(t *testing.T) {
	dir := initProject(t)
	writeProjectFile(t, dir, "CHANGELOG.md", "# Changelog\n")

	out, err := executeCommand(t, "doctor", "--dir", dir, "--quiet")
	if err != nil {
		t.Fatalf("doctor error = %v\nOutput: %s", err, out)
	}
	if strings.Contains(out, "CONFIG") {
		t.Errorf("quiet output should hide all-passing sections:\n%s", out)
	}
	if !strings.Contains(out, "Changelog") {
		t.Errorf("quiet output should show the warning:\n%s", out)
	}
}

func TestCheckBackupRootWritable_ReadOnly(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())

	check := checkBackupRootWritable(fsys, "/project", "/project/"+backup.DefaultDirName)
	if check.Status != checkFail {
		t.Errorf("status = %s, want %s (%s)", check.Status, checkFail, check.Message)
	}
}

func TestCheckBackupRootWritable_LeavesNoFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/project", 0o755); err != nil {
		t.Fatal(err)
	}

	check := checkBackupRootWritable(fsys, "/project", "/project/"+backup.DefaultDirName)
	if check.Status != checkPass {
		t.Fatalf("status = %s, want %s (%s)", check.Status, checkPass, check.Message)
	}
	entries, err := afero.ReadDir(fsys, "/project")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch file left behind: %v", entries[0].Name())
	}
}
