package backup

import "time"

// FileEntry records one tracked file captured in a snapshot.
type FileEntry struct {
	Original string `json:"original"`
	Backup   string `json:"backup"`
}

// Metadata is the content of a snapshot's backup-info.json.
type Metadata struct {
	CreatedAt   time.Time   `json:"timestamp"`
	ProjectName string      `json:"projectName"`
	ProjectType string      `json:"projectType"`
	Files       []FileEntry `json:"files"`
}

// SnapshotResult is returned by Create.
type SnapshotResult struct {
	Success       bool     `json:"success"`
	ID            string   `json:"id"`
	Path          string   `json:"path"`
	FilesBackedUp int      `json:"files_backed_up"`
	Pruned        int      `json:"pruned,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// RestoreResult is returned by Restore.
type RestoreResult struct {
	Success       bool      `json:"success"`
	ID            string    `json:"id"`
	RestoredFiles []string  `json:"restored_files"`
	Metadata      *Metadata `json:"metadata"`
}

// Summary describes one snapshot in a listing. CreatedAt and ProjectName
// are nil when the snapshot's metadata is missing or unreadable.
type Summary struct {
	ID          string     `json:"id"`
	CreatedAt   *time.Time `json:"created_at"`
	ProjectName *string    `json:"project_name"`
	FilesCount  int        `json:"files_count"`
	Path        string     `json:"path"`
}

// Name returns the recorded project name, or "" when it is unknown.
func (s Summary) Name() string {
	if s.ProjectName == nil {
		return ""
	}
	return *s.ProjectName
}

// DeleteResult is returned by Delete.
type DeleteResult struct {
	Success bool   `json:"success"`
	Deleted string `json:"deleted"`
}

// PruneFailure records a snapshot that could not be removed during pruning.
type PruneFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// PruneResult is returned by Prune.
type PruneResult struct {
	Deleted  int            `json:"deleted"`
	Kept     int            `json:"kept"`
	Failures []PruneFailure `json:"failures,omitempty"`
}

// Stats aggregates the store. OldestBackup and NewestBackup are nil when
// the store holds no snapshots.
type Stats struct {
	TotalBackups int     `json:"total_backups"`
	TotalSize    int64   `json:"total_size"`
	OldestBackup *string `json:"oldest_backup"`
	NewestBackup *string `json:"newest_backup"`
}

// AutoBackupResult is returned by AutoBackup. When Success is false, Warning
// holds the reason the snapshot could not be taken.
type AutoBackupResult struct {
	Success  bool            `json:"success"`
	Skipped  bool            `json:"skipped,omitempty"`
	Reason   string          `json:"reason,omitempty"`
	Warning  string          `json:"warning,omitempty"`
	Snapshot *SnapshotResult `json:"snapshot,omitempty"`
}
