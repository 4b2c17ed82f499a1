package docs

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/gorewood/aidocs/internal/backup"
	"github.com/gorewood/aidocs/internal/config"
	"github.com/gorewood/aidocs/internal/fsutil"
)

// ErrInstructionsNotFound is returned by Apply when the configured
// instructions file does not exist.
var ErrInstructionsNotFound = errors.New("instructions file not found")

// Result reports what Apply changed.
type Result struct {
	Date                string                   `json:"date"`
	InstructionsFile    string                   `json:"instructions_file"`
	InstructionsUpdated bool                     `json:"instructions_updated"`
	ChangelogFile       string                   `json:"changelog_file,omitempty"`
	ChangelogUpdated    bool                     `json:"changelog_updated"`
	ChangesLogged       int                      `json:"changes_logged"`
	Backup              *backup.AutoBackupResult `json:"backup,omitempty"`
	Warnings            []string                 `json:"warnings,omitempty"`
}

// Updater applies updates to the documentation of one project.
type Updater struct {
	fs    afero.Fs
	root  string
	cfg   *config.Config
	store *backup.Store
	now   func() time.Time
}

// NewUpdater creates an Updater. If store is nil no auto-backup is taken.
func NewUpdater(fsys afero.Fs, root string, cfg *config.Config, store *backup.Store) *Updater {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Updater{fs: fsys, root: root, cfg: cfg, store: store, now: time.Now}
}

// Apply validates update, takes an auto-backup when the project enables it,
// rewrites the instructions file, and then the changelog when
// autoUpdateChangelog is set. A failed auto-backup or a missing changelog
// is reported in the result warnings and does not stop the update.
func (u *Updater) Apply(update Update) (*Result, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	update = update.Normalize()

	instructionsPath := u.cfg.InstructionsPath(u.root)
	if !fsutil.Exists(u.fs, instructionsPath) {
		return nil, fmt.Errorf("%w: %s", ErrInstructionsNotFound, u.cfg.AIInstructionsFile)
	}

	date := FormatDate(u.now())
	result := &Result{
		Date:             date,
		InstructionsFile: u.cfg.AIInstructionsFile,
		ChangesLogged:    len(update.Changes),
	}

	if u.store != nil {
		result.Backup = u.store.AutoBackup(u.cfg.Project(), backup.CreateOptions{})
		if result.Backup.Warning != "" {
			result.Warnings = append(result.Warnings, result.Backup.Warning)
		}
		if result.Backup.Snapshot != nil {
			result.Warnings = append(result.Warnings, result.Backup.Snapshot.Warnings...)
		}
	}

	updated, err := u.rewrite(instructionsPath, func(content string) (string, bool) {
		return RewriteInstructions(content, u.cfg, update, date)
	})
	if err != nil {
		return nil, err
	}
	result.InstructionsUpdated = updated
	if !updated {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("section %q not found in %s", u.cfg.UpdateSection, u.cfg.AIInstructionsFile))
	}

	if !u.cfg.AutoUpdateChangelog {
		return result, nil
	}

	result.ChangelogFile = u.cfg.ChangelogFile
	changelogPath := u.cfg.ChangelogPath(u.root)
	if !fsutil.Exists(u.fs, changelogPath) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s not found, changelog not updated", u.cfg.ChangelogFile))
		return result, nil
	}
	updated, err = u.rewrite(changelogPath, func(content string) (string, bool) {
		return RewriteChangelog(content, update, date)
	})
	if err != nil {
		return nil, err
	}
	result.ChangelogUpdated = updated
	return result, nil
}

// rewrite reads path, applies fn, and writes the result back when fn
// reports a change.
func (u *Updater) rewrite(path string, fn func(string) (string, bool)) (bool, error) {
	data, err := afero.ReadFile(u.fs, path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	content, changed := fn(string(data))
	if !changed {
		return false, nil
	}
	mode := fsutil.FileMode(u.fs, path, 0o644)
	if err := fsutil.WriteAtomic(u.fs, path, []byte(content), mode); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// View is the current documentation state of a project.
type View struct {
	InstructionsFile string   `json:"instructions_file"`
	Found            bool     `json:"found"`
	Sections         Sections `json:"sections"`
}

// Read loads the current sections from the instructions file. A missing
// file gives a View with Found false.
func (u *Updater) Read() (*View, error) {
	view := &View{InstructionsFile: u.cfg.AIInstructionsFile, Sections: Sections{Changes: []string{}, Next: []string{}}}
	path := u.cfg.InstructionsPath(u.root)
	data, err := afero.ReadFile(u.fs, path)
	if err != nil {
		if fsutil.Exists(u.fs, path) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return view, nil
	}
	view.Found = true
	view.Sections = ReadSections(string(data), u.cfg)
	return view, nil
}

// WriteSkeletons creates the instructions file and the changelog from their
// skeletons when they do not exist yet. It returns the files it created,
// relative to the project root.
func (u *Updater) WriteSkeletons() ([]string, error) {
	date := FormatDate(u.now())
	files := []struct {
		rel     string
		path    string
		content string
	}{
		{u.cfg.AIInstructionsFile, u.cfg.InstructionsPath(u.root), InstructionsSkeleton(u.cfg, date)},
		{u.cfg.ChangelogFile, u.cfg.ChangelogPath(u.root), ChangelogSkeleton(u.cfg, date)},
	}

	created := []string{}
	for _, f := range files {
		if fsutil.Exists(u.fs, f.path) {
			continue
		}
		if err := u.fs.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return created, fmt.Errorf("creating directory for %s: %w", f.rel, err)
		}
		if err := afero.WriteFile(u.fs, f.path, []byte(f.content), 0o644); err != nil {
			return created, fmt.Errorf("writing %s: %w", f.rel, err)
		}
		created = append(created, f.rel)
	}
	return created, nil
}
