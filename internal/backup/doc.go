// Package backup keeps timestamped snapshots of a project's tracked
// documentation files.
//
// A Store owns a single backup root. Every snapshot is a directory under that
// root named by its id, holding copies of the tracked files under fixed
// canonical names plus a backup-info.json metadata file:
//
//	.ai-agent-backups/
//	  2024-01-01T00-00-00-000Z/
//	    AI_INSTRUCTIONS.md
//	    CHANGELOG.md
//	    config.json
//	    backup-info.json
//
// Ids are ISO-8601 timestamps with ':' and '.' replaced by '-', so sorting ids
// lexicographically also sorts snapshots chronologically. Listing, pruning and
// statistics all rely on that ordering.
//
// # Error Handling
//
// Create, Restore, Delete, List and Stats return *FilesystemError for disk
// failures. A missing snapshot id is reported as a *FilesystemError wrapping
// ErrNotFound:
//
//	if errors.Is(err, backup.ErrNotFound) { ... }
//
// Prune and AutoBackup are best-effort: per-item failures are collected into
// their results rather than returned.
//
// The store performs no locking. It assumes one writer at a time.
package backup
