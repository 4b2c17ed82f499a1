package backup

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/gorewood/aidocs/internal/fsutil"
)

// --- Test Helpers ---

const testProjectRoot = "/project"

func testProject() Project {
	return Project{
		Name: "Test Project",
		Type: "library",
		Files: map[Role]string{
			RoleInstructions: "a.md",
			RoleChangelog:    "b.md",
			RoleConfig:       ".ai-agent-config.json",
		},
		MaxBackups: 5,
	}
}

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll(testProjectRoot, 0o755); err != nil {
		t.Fatalf("failed to create project root: %v", err)
	}
	store := NewStore(fsys, testProjectRoot, "")
	store.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return store, fsys
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func writeProjectFile(t *testing.T, fsys afero.Fs, rel, content string) {
	t.Helper()
	path := filepath.Join(testProjectRoot, rel)
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func readProjectFile(t *testing.T, fsys afero.Fs, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, filepath.Join(testProjectRoot, rel))
	if err != nil {
		t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

func removeProjectFile(t *testing.T, fsys afero.Fs, rel string) {
	t.Helper()
	if err := fsys.Remove(filepath.Join(testProjectRoot, rel)); err != nil {
		t.Fatalf("failed to remove %s: %v", rel, err)
	}
}

func mustCreate(t *testing.T, store *Store, project Project, id string) *SnapshotResult {
	t.Helper()
	result, err := store.Create(project, CreateOptions{Timestamp: id})
	if err != nil {
		t.Fatalf("Create(%q) error = %v", id, err)
	}
	return result
}

// --- Create Tests ---

func TestStore_Create_FixedTimestamp(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A")
	writeProjectFile(t, fsys, "b.md", "B")

	result := mustCreate(t, store, testProject(), "2024-01-01T00-00-00")

	wantDir := filepath.Join(testProjectRoot, DefaultDirName, "2024-01-01T00-00-00")
	if result.Path != wantDir {
		t.Errorf("Path = %q, want %q", result.Path, wantDir)
	}
	if result.ID != "2024-01-01T00-00-00" {
		t.Errorf("ID = %q, want %q", result.ID, "2024-01-01T00-00-00")
	}
	if !result.Success {
		t.Error("Success = false, want true")
	}
	if result.FilesBackedUp != 2 {
		t.Errorf("FilesBackedUp = %d, want 2", result.FilesBackedUp)
	}

	for name, want := range map[string]string{"AI_INSTRUCTIONS.md": "A", "CHANGELOG.md": "B"} {
		data, err := afero.ReadFile(fsys, filepath.Join(wantDir, name))
		if err != nil {
			t.Fatalf("snapshot missing %s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}

	meta, err := readMetadata(fsys, wantDir)
	if err != nil {
		t.Fatalf("readMetadata() error = %v", err)
	}
	if len(meta.Files) != 2 {
		t.Fatalf("len(meta.Files) = %d, want 2", len(meta.Files))
	}
	if meta.Files[0] != (FileEntry{Original: "a.md", Backup: "AI_INSTRUCTIONS.md"}) {
		t.Errorf("meta.Files[0] = %+v", meta.Files[0])
	}
	if meta.ProjectName != "Test Project" || meta.ProjectType != "library" {
		t.Errorf("meta project = %q/%q, want Test Project/library", meta.ProjectName, meta.ProjectType)
	}
}

func TestStore_Create_StoredNameIgnoresConfiguredPath(t *testing.T) {
	store, fsys := newTestStore(t)
	project := testProject()
	project.Files[RoleInstructions] = "docs/agents/INSTRUCTIONS.md"
	if err := fsys.MkdirAll(filepath.Join(testProjectRoot, "docs", "agents"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeProjectFile(t, fsys, "docs/agents/INSTRUCTIONS.md", "nested")

	result := mustCreate(t, store, project, "snap")

	data, err := afero.ReadFile(fsys, filepath.Join(result.Path, "AI_INSTRUCTIONS.md"))
	if err != nil {
		t.Fatalf("expected canonical stored name: %v", err)
	}
	if string(data) != "nested" {
		t.Errorf("content = %q, want %q", data, "nested")
	}
}

func TestStore_Create_IncludesConfigWhenPresent(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A")
	writeProjectFile(t, fsys, ".ai-agent-config.json", `{"projectName":"x"}`)

	result := mustCreate(t, store, testProject(), "snap")

	if result.FilesBackedUp != 2 {
		t.Errorf("FilesBackedUp = %d, want 2", result.FilesBackedUp)
	}
	if !fsutil.Exists(fsys, filepath.Join(result.Path, "config.json")) {
		t.Error("config.json missing from snapshot")
	}
}

func TestStore_Create_GeneratedID(t *testing.T) {
	store, fsys := newTestStore(t)
	store.now = fixedClock(time.Date(2024, 3, 5, 14, 7, 9, 123_000_000, time.UTC))
	writeProjectFile(t, fsys, "a.md", "A")

	result, err := store.Create(testProject(), CreateOptions{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.ID != "2024-03-05T14-07-09-123Z" {
		t.Errorf("ID = %q, want %q", result.ID, "2024-03-05T14-07-09-123Z")
	}
}

func TestStore_Create_GeneratedIDCollision(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A")

	var created []string
	for range 12 {
		result, err := store.Create(testProject(), CreateOptions{})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		created = append(created, result.ID)
	}

	if created[0] != "2024-01-01T00-00-00-000Z" {
		t.Errorf("first ID = %q, want the bare timestamp", created[0])
	}
	if created[1] != "2024-01-01T00-00-00-000Z-001" || created[11] != "2024-01-01T00-00-00-000Z-011" {
		t.Errorf("suffixed IDs = %q, %q, want counters 001 and 011", created[1], created[11])
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != len(created) {
		t.Fatalf("List() returned %d snapshots, want %d", len(summaries), len(created))
	}
	for i, summary := range summaries {
		if want := created[len(created)-1-i]; summary.ID != want {
			t.Errorf("List()[%d] = %q, want %q (reverse creation order)", i, summary.ID, want)
		}
	}
}

func TestStore_Create_CollisionCounterSkipsGaps(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A")
	mustCreate(t, store, testProject(), "2024-01-01T00-00-00-000Z")
	mustCreate(t, store, testProject(), "2024-01-01T00-00-00-000Z-003")

	result, err := store.Create(testProject(), CreateOptions{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.ID != "2024-01-01T00-00-00-000Z-004" {
		t.Errorf("ID = %q, want counter after the highest existing one", result.ID)
	}
}

func TestStore_Create_PartialFiles(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A")

	result := mustCreate(t, store, testProject(), "partial")

	if result.FilesBackedUp != 1 {
		t.Errorf("FilesBackedUp = %d, want 1", result.FilesBackedUp)
	}
	meta, err := readMetadata(fsys, result.Path)
	if err != nil {
		t.Fatalf("readMetadata() error = %v", err)
	}
	if len(meta.Files) != 1 {
		t.Errorf("len(meta.Files) = %d, want 1", len(meta.Files))
	}
}

func TestStore_Create_Retention(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A")

	for _, id := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"} {
		mustCreate(t, store, testProject(), id)
	}

	result, err := store.Create(testProject(), CreateOptions{Timestamp: "2024-01-05", MaxBackups: 2})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.Pruned != 3 {
		t.Errorf("Pruned = %d, want 3", result.Pruned)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(list))
	}
	if list[0].ID != "2024-01-05" || list[1].ID != "2024-01-04" {
		t.Errorf("retained = [%s %s], want [2024-01-05 2024-01-04]", list[0].ID, list[1].ID)
	}
}

func TestStore_Create_ReadOnlyFilesystem(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	store := NewStore(fsys, testProjectRoot, "")

	_, err := store.Create(testProject(), CreateOptions{Timestamp: "snap"})
	if err == nil {
		t.Fatal("expected error on read-only filesystem")
	}

	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("error = %T, want *FilesystemError", err)
	}
	if fsErr.Op != OpBackup {
		t.Errorf("Op = %q, want %q", fsErr.Op, OpBackup)
	}
	if !strings.Contains(fsErr.Path, "snap") {
		t.Errorf("Path = %q, want it to name the snapshot directory", fsErr.Path)
	}
}

func TestStore_Create_InvalidTimestamp(t *testing.T) {
	store, _ := newTestStore(t)

	for _, id := range []string{"../escape", "a/b", ".."} {
		_, err := store.Create(testProject(), CreateOptions{Timestamp: id})
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("Create(%q) error = %v, want ErrInvalidID", id, err)
		}
	}
}

// --- Restore Tests ---

func TestStore_Restore_RoundTrip(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A\nwith lines\n")
	writeProjectFile(t, fsys, "b.md", "B")
	mustCreate(t, store, testProject(), "2024-01-01T00-00-00")

	removeProjectFile(t, fsys, "a.md")
	removeProjectFile(t, fsys, "b.md")

	result, err := store.Restore("2024-01-01T00-00-00", testProject(), RestoreOptions{})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if len(result.RestoredFiles) != 2 {
		t.Errorf("len(RestoredFiles) = %d, want 2", len(result.RestoredFiles))
	}
	if got := readProjectFile(t, fsys, "a.md"); got != "A\nwith lines\n" {
		t.Errorf("a.md = %q", got)
	}
	if got := readProjectFile(t, fsys, "b.md"); got != "B" {
		t.Errorf("b.md = %q", got)
	}
	if result.Metadata == nil || result.Metadata.ProjectName != "Test Project" {
		t.Errorf("Metadata = %+v, want project name Test Project", result.Metadata)
	}
}

func TestStore_Restore_TargetsCurrentPaths(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A")
	mustCreate(t, store, testProject(), "snap")

	moved := testProject()
	moved.Files[RoleInstructions] = "renamed/INSTRUCTIONS.md"

	result, err := store.Restore("snap", moved, RestoreOptions{})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if len(result.RestoredFiles) != 1 || result.RestoredFiles[0] != "renamed/INSTRUCTIONS.md" {
		t.Errorf("RestoredFiles = %v", result.RestoredFiles)
	}
	if got := readProjectFile(t, fsys, "renamed/INSTRUCTIONS.md"); got != "A" {
		t.Errorf("restored content = %q, want %q", got, "A")
	}
}

func TestStore_Restore_PartialLeavesOthersUntouched(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A")
	mustCreate(t, store, testProject(), "snap")

	writeProjectFile(t, fsys, "a.md", "A modified")
	writeProjectFile(t, fsys, "b.md", "B current")

	result, err := store.Restore("snap", testProject(), RestoreOptions{})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if len(result.RestoredFiles) != 1 {
		t.Errorf("len(RestoredFiles) = %d, want 1", len(result.RestoredFiles))
	}
	if got := readProjectFile(t, fsys, "a.md"); got != "A" {
		t.Errorf("a.md = %q, want %q", got, "A")
	}
	if got := readProjectFile(t, fsys, "b.md"); got != "B current" {
		t.Errorf("b.md = %q, want it untouched", got)
	}
}

func TestStore_Restore_ConfigOnlyWhenRequested(t *testing.T) {
	tests := []struct {
		name          string
		restoreConfig bool
		wantConfig    string
	}{
		{name: "config skipped by default", restoreConfig: false, wantConfig: `{"v":2}`},
		{name: "config restored on request", restoreConfig: true, wantConfig: `{"v":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, fsys := newTestStore(t)
			writeProjectFile(t, fsys, ".ai-agent-config.json", `{"v":1}`)
			mustCreate(t, store, testProject(), "snap")
			writeProjectFile(t, fsys, ".ai-agent-config.json", `{"v":2}`)

			if _, err := store.Restore("snap", testProject(), RestoreOptions{RestoreConfig: tt.restoreConfig}); err != nil {
				t.Fatalf("Restore() error = %v", err)
			}
			if got := readProjectFile(t, fsys, ".ai-agent-config.json"); got != tt.wantConfig {
				t.Errorf("config = %q, want %q", got, tt.wantConfig)
			}
		})
	}
}

func TestStore_Restore_MissingMetadata(t *testing.T) {
	store, fsys := newTestStore(t)
	writeProjectFile(t, fsys, "a.md", "A")
	result := mustCreate(t, store, testProject(), "snap")
	if err := fsys.Remove(filepath.Join(result.Path, MetadataFile)); err != nil {
		t.Fatal(err)
	}

	restored, err := store.Restore("snap", testProject(), RestoreOptions{})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if restored.Metadata != nil {
		t.Errorf("Metadata = %+v, want nil", restored.Metadata)
	}
	if len(restored.RestoredFiles) != 1 {
		t.Errorf("len(RestoredFiles) = %d, want 1", len(restored.RestoredFiles))
	}
}

func TestStore_Restore_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Restore("missing", testProject(), RestoreOptions{})
	if err == nil {
		t.Fatal("expected error for missing snapshot")
	}

	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("error = %T, want *FilesystemError", err)
	}
	if fsErr.Op != OpRestore {
		t.Errorf("Op = %q, want %q", fsErr.Op, OpRestore)
	}
	if fsErr.Path != store.SnapshotPath("missing") {
		t.Errorf("Path = %q, want %q", fsErr.Path, store.SnapshotPath("missing"))
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false, want true")
	}
}

func TestFormatID(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc",
			in:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2024-01-01T00-00-00-000Z",
		},
		{
			name: "converts to utc",
			in:   time.Date(2024, 6, 30, 23, 59, 58, 7_000_000, time.FixedZone("X", 2*3600)),
			want: "2024-06-30T21-59-58-007Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatID(tt.in); got != tt.want {
				t.Errorf("FormatID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoredName(t *testing.T) {
	for _, role := range Roles() {
		if StoredName(role) == "" {
			t.Errorf("StoredName(%q) is empty", role)
		}
	}
	if StoredName(Role("unknown")) != "" {
		t.Error("StoredName(unknown) should be empty")
	}
}
