package backup

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/gorewood/aidocs/internal/fsutil"
)

// idCounterFormat suffixes a generated id that collides with an existing
// snapshot. The counter is zero-padded so suffixed ids sort in creation order.
const idCounterFormat = "%s-%03d"

// Store manages the snapshots of one project.
type Store struct {
	fs          afero.Fs
	projectRoot string
	root        string
	now         func() time.Time
}

// NewStore creates a Store for the project at projectRoot.
// If fsys is nil, the OS filesystem is used.
// If backupRoot is empty, snapshots live in projectRoot/.ai-agent-backups.
func NewStore(fsys afero.Fs, projectRoot, backupRoot string) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if backupRoot == "" {
		backupRoot = filepath.Join(projectRoot, DefaultDirName)
	}
	return &Store{
		fs:          fsys,
		projectRoot: projectRoot,
		root:        backupRoot,
		now:         time.Now,
	}
}

// Root returns the backup root directory.
func (s *Store) Root() string {
	return s.root
}

// SnapshotPath returns the directory of the snapshot with the given id.
func (s *Store) SnapshotPath(id string) string {
	return filepath.Join(s.root, id)
}

// FormatID turns a time into a snapshot id: the UTC ISO-8601 timestamp with
// millisecond precision, with ':' and '.' replaced by '-'.
func FormatID(t time.Time) string {
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}

// nextID returns a fresh id for the current time. If a snapshot with that
// id already exists, the id gets a counter one above the highest counter
// already used for the same time.
func (s *Store) nextID() string {
	base := FormatID(s.now())
	if !fsutil.Exists(s.fs, s.SnapshotPath(base)) {
		return base
	}

	highest := 0
	entries, _ := afero.ReadDir(s.fs, s.root)
	for _, entry := range entries {
		suffix, ok := strings.CutPrefix(entry.Name(), base+"-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf(idCounterFormat, base, highest+1)
}

// CreateOptions controls Create.
type CreateOptions struct {
	// Timestamp is used verbatim as the snapshot id when set.
	Timestamp string
	// MaxBackups prunes the store down to this many snapshots after
	// creation when positive.
	MaxBackups int
}

// Create copies every tracked file of project that currently exists into a
// new snapshot and writes its metadata. Copies already made are not rolled
// back when a later step fails.
func (s *Store) Create(project Project, opts CreateOptions) (*SnapshotResult, error) {
	id := opts.Timestamp
	if id == "" {
		id = s.nextID()
	} else if err := validateID(id); err != nil {
		return nil, fsError(OpBackup, s.root, err)
	}

	dir := s.SnapshotPath(id)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fsError(OpBackup, dir, fmt.Errorf("create snapshot directory: %w", err))
	}

	meta := &Metadata{
		CreatedAt:   s.now().UTC(),
		ProjectName: project.Name,
		ProjectType: project.Type,
		Files:       []FileEntry{},
	}

	for _, tf := range trackedFiles {
		rel := project.Path(tf.role)
		if rel == "" {
			continue
		}
		src := filepath.Join(s.projectRoot, rel)
		if !fsutil.Exists(s.fs, src) {
			continue
		}
		if err := copyFile(s.fs, src, filepath.Join(dir, tf.storedName)); err != nil {
			return nil, fsError(OpBackup, src, err)
		}
		meta.Files = append(meta.Files, FileEntry{Original: rel, Backup: tf.storedName})
	}

	if err := writeMetadata(s.fs, dir, meta); err != nil {
		return nil, fsError(OpBackup, dir, err)
	}

	result := &SnapshotResult{
		Success:       true,
		ID:            id,
		Path:          dir,
		FilesBackedUp: len(meta.Files),
	}

	if opts.MaxBackups > 0 {
		pruned, err := s.Prune(opts.MaxBackups)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		} else {
			result.Pruned = pruned.Deleted
			for _, f := range pruned.Failures {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("failed to delete backup %s: %s", f.ID, f.Error))
			}
		}
	}

	return result, nil
}

// RestoreOptions controls Restore.
type RestoreOptions struct {
	// RestoreConfig also restores the configuration file.
	RestoreConfig bool
}

// Restore copies the files of snapshot id over the paths project currently
// configures. Files absent from the snapshot are skipped.
func (s *Store) Restore(id string, project Project, opts RestoreOptions) (*RestoreResult, error) {
	dir := s.SnapshotPath(id)
	if err := validateID(id); err != nil {
		return nil, fsError(OpRestore, dir, err)
	}
	if !isDir(s.fs, dir) {
		return nil, fsError(OpRestore, dir, fmt.Errorf("%w: %s", ErrNotFound, id))
	}

	// Unreadable metadata does not block restoring the files themselves.
	meta, err := readMetadata(s.fs, dir)
	if err != nil {
		meta = nil
	}

	restored := []string{}
	for _, tf := range trackedFiles {
		if tf.role == RoleConfig && !opts.RestoreConfig {
			continue
		}
		target := project.Path(tf.role)
		if target == "" {
			continue
		}
		src := filepath.Join(dir, tf.storedName)
		if !fsutil.Exists(s.fs, src) {
			continue
		}
		if err := copyFile(s.fs, src, filepath.Join(s.projectRoot, target)); err != nil {
			return nil, fsError(OpRestore, dir, err)
		}
		restored = append(restored, target)
	}

	return &RestoreResult{
		Success:       true,
		ID:            id,
		RestoredFiles: restored,
		Metadata:      meta,
	}, nil
}

// validateID rejects ids that would escape the backup root.
func validateID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return nil
}
