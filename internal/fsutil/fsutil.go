// Package fsutil holds the small filesystem helpers shared by the backup,
// config, and docs packages. Everything goes through an afero.Fs so callers
// can run against memory in tests.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Exists reports whether path exists on fsys.
func Exists(fsys afero.Fs, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// FileMode returns the permission bits of path, or fallback when it cannot
// be stat'ed.
func FileMode(fsys afero.Fs, path string, fallback os.FileMode) os.FileMode {
	info, err := fsys.Stat(path)
	if err != nil {
		return fallback
	}
	return info.Mode().Perm()
}

// WriteAtomic writes data to path using write-to-temp-then-rename, leaving
// the file with permission bits perm. The temp file is created in the same
// directory as path, which must exist.
func WriteAtomic(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	tmpFile, err := afero.TempFile(fsys, filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = fsys.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fsys.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := fsys.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
