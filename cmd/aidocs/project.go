package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gorewood/aidocs/internal/backup"
	"github.com/gorewood/aidocs/internal/config"
	"github.com/gorewood/aidocs/internal/docs"
	"github.com/gorewood/aidocs/internal/output"
)

// project bundles what most commands need: the resolved root, its
// configuration, and the backup store.
type project struct {
	fs    afero.Fs
	root  string
	cfg   *config.Config
	store *backup.Store
}

// projectRoot resolves --dir, falling back to the working directory.
func projectRoot(cmd *cobra.Command) (string, error) {
	dir := ""
	if flag := cmd.Flags().Lookup("dir"); flag != nil {
		dir = flag.Value.String()
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", output.NewSystemErrorWithCause("cannot determine working directory", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", output.NewUserErrorWithCause(fmt.Sprintf("invalid --dir %q", dir), err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", output.NewUserError(fmt.Sprintf("project directory %s does not exist", abs))
	}
	return abs, nil
}

// loadProject resolves the root and loads its configuration.
func loadProject(cmd *cobra.Command) (*project, error) {
	root, err := projectRoot(cmd)
	if err != nil {
		return nil, err
	}
	fsys := afero.NewOsFs()
	cfg, err := config.Load(fsys, root)
	if err != nil {
		return nil, commandError("loading config", err)
	}
	return &project{
		fs:    fsys,
		root:  root,
		cfg:   cfg,
		store: backup.NewStore(fsys, root, ""),
	}, nil
}

func (p *project) updater() *docs.Updater {
	return docs.NewUpdater(p.fs, p.root, p.cfg, p.store)
}

// commandError maps a domain error onto an exit-coded error. Unknown
// backups, invalid input, and invalid configuration are user errors;
// everything else is a system error.
func commandError(action string, err error) error {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	msg := fmt.Sprintf("%s: %v", action, err)
	var cfgErr *config.ConfigurationError
	var cfgValErr *config.ValidationError
	var docsValErr *docs.ValidationError
	switch {
	case errors.Is(err, backup.ErrNotFound):
		return output.NewUserErrorWithCause(msg, err)
	case errors.Is(err, backup.ErrInvalidID):
		return output.NewUserErrorWithCause(msg, err)
	case errors.Is(err, docs.ErrInstructionsNotFound):
		return output.NewUserErrorWithCause(msg+" (run 'aidocs init' first)", err)
	case errors.As(err, &cfgErr), errors.As(err, &cfgValErr), errors.As(err, &docsValErr):
		return output.NewUserErrorWithCause(msg, err)
	default:
		return output.NewSystemErrorWithCause(msg, err)
	}
}

// fail prints err through printer and returns it.
func fail(printer *output.Printer, err error) error {
	printer.Error(err)
	return err
}
