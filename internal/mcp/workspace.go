package mcp

import (
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/gorewood/aidocs/internal/backup"
	"github.com/gorewood/aidocs/internal/config"
	"github.com/gorewood/aidocs/internal/docs"
)

// Workspace is the project the server operates on. Configuration is read
// again on every tool call so edits made outside the server are picked up.
type Workspace struct {
	fs   afero.Fs
	root string
}

// NewWorkspace creates a Workspace for the project at root.
// If fsys is nil, the OS filesystem is used.
func NewWorkspace(fsys afero.Fs, root string) *Workspace {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Workspace{fs: fsys, root: root}
}

func (w *Workspace) load() (*config.Config, *backup.Store, error) {
	cfg, err := config.Load(w.fs, w.root)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, backup.NewStore(w.fs, w.root, ""), nil
}

func (w *Workspace) updater() (*config.Config, *docs.Updater, error) {
	cfg, store, err := w.load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, docs.NewUpdater(w.fs, w.root, cfg, store), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
