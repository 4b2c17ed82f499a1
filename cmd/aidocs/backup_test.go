package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/aidocs/internal/backup"
	"github.com/gorewood/aidocs/internal/output"
)

// createBackup runs backup create with an explicit id.
func createBackup(t *testing.T, dir, id string) backup.SnapshotResult {
	t.Helper()
	out, err := executeCommand(t, "backup", "create", "--dir", dir, "--json", "--timestamp", id)
	if err != nil {
		t.Fatalf("backup create error = %v\nOutput: %s", err, out)
	}
	var result backup.SnapshotResult
	decodeJSON(t, out, &result)
	return result
}

type listOutput struct {
	Count   int              `json:"count"`
	Backups []backup.Summary `json:"backups"`
}

func listBackups(t *testing.T, dir string) listOutput {
	t.Helper()
	out, err := executeCommand(t, "backup", "list", "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("backup list error = %v\nOutput: %s", err, out)
	}
	var result listOutput
	decodeJSON(t, out, &result)
	return result
}

func TestBackupCreate(t *testing.T) {
	dir := initProject(t)

	result := createBackup(t, dir, "2024-01-01T00-00-00-000Z")
	if result.ID != "2024-01-01T00-00-00-000Z" {
		t.Errorf("ID = %q, want the explicit timestamp", result.ID)
	}
	if result.FilesBackedUp != 3 {
		t.Errorf("FilesBackedUp = %d, want 3", result.FilesBackedUp)
	}
	stored := filepath.Join(dir, ".ai-agent-backups", result.ID, "backup-info.json")
	if _, err := os.Stat(stored); err != nil {
		t.Errorf("metadata should exist at %s: %v", stored, err)
	}
}

func TestBackupCreate_PrunesToMax(t *testing.T) {
	dir := initProject(t)
	createBackup(t, dir, "2024-01-01T00-00-00-000Z")
	createBackup(t, dir, "2024-01-02T00-00-00-000Z")

	out, err := executeCommand(t, "backup", "create", "--dir", dir, "--json",
		"--timestamp", "2024-01-03T00-00-00-000Z", "--max", "2")
	if err != nil {
		t.Fatalf("backup create error = %v\nOutput: %s", err, out)
	}
	var result backup.SnapshotResult
	decodeJSON(t, out, &result)
	if result.Pruned != 1 {
		t.Errorf("Pruned = %d, want 1", result.Pruned)
	}

	list := listBackups(t, dir)
	if list.Count != 2 || list.Backups[0].ID != "2024-01-03T00-00-00-000Z" {
		t.Errorf("list = %+v, want the two newest", list)
	}
}

func TestBackupList(t *testing.T) {
	dir := initProject(t)

	if list := listBackups(t, dir); list.Count != 0 {
		t.Errorf("Count = %d, want 0 before any backup", list.Count)
	}

	createBackup(t, dir, "2024-01-01T00-00-00-000Z")
	createBackup(t, dir, "2024-01-02T00-00-00-000Z")

	list := listBackups(t, dir)
	if list.Count != 2 {
		t.Fatalf("Count = %d, want 2", list.Count)
	}
	if list.Backups[0].ID != "2024-01-02T00-00-00-000Z" {
		t.Errorf("first = %q, want newest first", list.Backups[0].ID)
	}
	if list.Backups[0].Name() != "Widget" || list.Backups[0].FilesCount != 3 {
		t.Errorf("summary = %+v, want Widget with 3 files", list.Backups[0])
	}

	out, err := executeCommand(t, "backup", "list", "--dir", dir)
	if err != nil {
		t.Fatalf("backup list error = %v", err)
	}
	for _, want := range []string{"ID", "CREATED", "2024-01-02T00-00-00-000Z", "Widget"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q:\n%s", want, out)
		}
	}
}

func TestBackupDelete(t *testing.T) {
	dir := initProject(t)
	createBackup(t, dir, "2024-01-01T00-00-00-000Z")

	if out, err := executeCommand(t, "backup", "delete", "2024-01-01T00-00-00-000Z", "--dir", dir); err != nil {
		t.Fatalf("backup delete error = %v\nOutput: %s", err, out)
	}
	if list := listBackups(t, dir); list.Count != 0 {
		t.Errorf("Count = %d, want 0 after delete", list.Count)
	}

	_, err := executeCommand(t, "backup", "delete", "2024-01-01T00-00-00-000Z", "--dir", dir)
	if err == nil {
		t.Fatal("expected error deleting a missing backup")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
}

func TestBackupPrune(t *testing.T) {
	dir := initProject(t)
	for _, id := range []string{"2024-01-01T00-00-00-000Z", "2024-01-02T00-00-00-000Z", "2024-01-03T00-00-00-000Z"} {
		createBackup(t, dir, id)
	}

	out, err := executeCommand(t, "backup", "prune", "--keep", "1", "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("backup prune error = %v\nOutput: %s", err, out)
	}
	var result backup.PruneResult
	decodeJSON(t, out, &result)
	if result.Deleted != 2 || result.Kept != 1 {
		t.Errorf("result = %+v, want deleted 2 kept 1", result)
	}

	list := listBackups(t, dir)
	if list.Count != 1 || list.Backups[0].ID != "2024-01-03T00-00-00-000Z" {
		t.Errorf("list = %+v, want only the newest", list)
	}
}

func TestBackupStats(t *testing.T) {
	dir := initProject(t)
	createBackup(t, dir, "2024-01-01T00-00-00-000Z")
	createBackup(t, dir, "2024-01-02T00-00-00-000Z")

	out, err := executeCommand(t, "backup", "stats", "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("backup stats error = %v\nOutput: %s", err, out)
	}
	var stats backup.Stats
	decodeJSON(t, out, &stats)
	if stats.TotalBackups != 2 {
		t.Errorf("TotalBackups = %d, want 2", stats.TotalBackups)
	}
	if stats.TotalSize <= 0 {
		t.Errorf("TotalSize = %d, want positive", stats.TotalSize)
	}
	if stats.OldestBackup == nil || stats.NewestBackup == nil {
		t.Fatalf("range = %v..%v, want both ids", stats.OldestBackup, stats.NewestBackup)
	}
	if *stats.OldestBackup != "2024-01-01T00-00-00-000Z" || *stats.NewestBackup != "2024-01-02T00-00-00-000Z" {
		t.Errorf("range = %s..%s", *stats.OldestBackup, *stats.NewestBackup)
	}

	out, err = executeCommand(t, "backup", "stats", "--dir", dir, "--toon")
	if err != nil {
		t.Fatalf("backup stats --toon error = %v\nOutput: %s", err, out)
	}
	if !strings.Contains(out, "2024-01-02T00-00-00-000Z") {
		t.Errorf("TOON output should contain the newest id:\n%s", out)
	}
}

func TestBackupJSON_UnknownValuesAreNull(t *testing.T) {
	dir := initProject(t)

	out, err := executeCommand(t, "backup", "stats", "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("backup stats error = %v\nOutput: %s", err, out)
	}
	var stats map[string]any
	decodeJSON(t, out, &stats)
	for _, key := range []string{"oldest_backup", "newest_backup"} {
		value, ok := stats[key]
		if !ok || value != nil {
			t.Errorf("%s = %v (present %v), want null on an empty store", key, value, ok)
		}
	}

	createBackup(t, dir, "2024-01-01T00-00-00-000Z")
	meta := filepath.Join(dir, backup.DefaultDirName, "2024-01-01T00-00-00-000Z", backup.MetadataFile)
	if err := os.Remove(meta); err != nil {
		t.Fatal(err)
	}

	out, err = executeCommand(t, "backup", "list", "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("backup list error = %v\nOutput: %s", err, out)
	}
	var list struct {
		Backups []map[string]any `json:"backups"`
	}
	decodeJSON(t, out, &list)
	if len(list.Backups) != 1 {
		t.Fatalf("backups = %v, want one", list.Backups)
	}
	for _, key := range []string{"created_at", "project_name"} {
		value, ok := list.Backups[0][key]
		if !ok || value != nil {
			t.Errorf("%s = %v (present %v), want null without metadata", key, value, ok)
		}
	}
}

func TestRestore(t *testing.T) {
	dir := initProject(t)
	instructionsPath := filepath.Join(dir, "AI_INSTRUCTIONS.md")
	original := readFile(t, instructionsPath)
	createBackup(t, dir, "2024-01-01T00-00-00-000Z")

	if err := os.WriteFile(instructionsPath, []byte("clobbered\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "restore", "2024-01-01T00-00-00-000Z", "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("restore error = %v\nOutput: %s", err, out)
	}
	var result backup.RestoreResult
	decodeJSON(t, out, &result)
	if len(result.RestoredFiles) != 2 {
		t.Errorf("RestoredFiles = %v, want instructions and changelog only", result.RestoredFiles)
	}
	if got := readFile(t, instructionsPath); got != original {
		t.Errorf("instructions not restored:\n%s", got)
	}
}

func TestRestore_NotFound(t *testing.T) {
	dir := initProject(t)

	_, err := executeCommand(t, "restore", "2024-01-01T00-00-00-000Z", "--dir", dir)
	if err == nil {
		t.Fatal("expected error restoring a missing backup")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
}
