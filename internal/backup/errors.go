package backup

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by FilesystemError when a snapshot id does not exist.
var ErrNotFound = errors.New("backup not found")

// ErrInvalidID is wrapped by FilesystemError when an id cannot name a
// snapshot directory (empty, or containing path separators).
var ErrInvalidID = errors.New("invalid backup id")

// Operation names carried by FilesystemError.
const (
	OpBackup  = "backup"
	OpRestore = "restore"
	OpDelete  = "delete"
	OpList    = "list"
	OpClean   = "clean"
	OpStats   = "stats"
)

// FilesystemError reports a failed filesystem operation on the backup tree.
// Path is the subject of the failure (snapshot directory or backup root).
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err signals a missing snapshot.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func fsError(op, path string, err error) *FilesystemError {
	return &FilesystemError{Op: op, Path: path, Err: err}
}
