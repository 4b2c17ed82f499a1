package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/aidocs/internal/backup"
)

// --- Shared types ---

// BackupSummary describes one snapshot.
type BackupSummary struct {
	ID          string `json:"id"                     jsonschema:"snapshot id"`
	CreatedAt   string `json:"created_at,omitempty"   jsonschema:"creation timestamp, empty when metadata is missing"`
	ProjectName string `json:"project_name,omitempty" jsonschema:"project name recorded at creation"`
	FilesCount  int    `json:"files_count"            jsonschema:"number of files in the snapshot"`
}

// --- list_backups ---

// ListBackupsInput is the input for list_backups (no parameters needed).
type ListBackupsInput struct{}

// ListBackupsOutput is the output for list_backups.
type ListBackupsOutput struct {
	Count   int             `json:"count"   jsonschema:"number of snapshots"`
	Backups []BackupSummary `json:"backups" jsonschema:"snapshots, newest first"`
}

func handleListBackups(ws *Workspace) mcp.ToolHandlerFor[ListBackupsInput, ListBackupsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListBackupsInput) (*mcp.CallToolResult, ListBackupsOutput, error) {
		_, store, err := ws.load()
		if err != nil {
			return nil, ListBackupsOutput{}, err
		}
		summaries, err := store.List()
		if err != nil {
			return nil, ListBackupsOutput{}, fmt.Errorf("listing backups: %w", err)
		}

		out := ListBackupsOutput{Count: len(summaries), Backups: make([]BackupSummary, 0, len(summaries))}
		for _, s := range summaries {
			out.Backups = append(out.Backups, BackupSummary{
				ID:          s.ID,
				CreatedAt:   formatTime(s.CreatedAt),
				ProjectName: s.Name(),
				FilesCount:  s.FilesCount,
			})
		}
		return nil, out, nil
	}
}

// --- backup_stats ---

// BackupStatsInput is the input for backup_stats (no parameters needed).
type BackupStatsInput struct{}

// BackupStatsOutput is the output for backup_stats.
type BackupStatsOutput struct {
	TotalBackups int    `json:"total_backups"           jsonschema:"number of snapshots"`
	TotalSize    int64  `json:"total_size"              jsonschema:"combined size of all snapshots in bytes"`
	OldestBackup string `json:"oldest_backup,omitempty" jsonschema:"id of the oldest snapshot"`
	NewestBackup string `json:"newest_backup,omitempty" jsonschema:"id of the newest snapshot"`
}

func handleBackupStats(ws *Workspace) mcp.ToolHandlerFor[BackupStatsInput, BackupStatsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ BackupStatsInput) (*mcp.CallToolResult, BackupStatsOutput, error) {
		_, store, err := ws.load()
		if err != nil {
			return nil, BackupStatsOutput{}, err
		}
		stats, err := store.Stats()
		if err != nil {
			return nil, BackupStatsOutput{}, fmt.Errorf("reading backup stats: %w", err)
		}
		out := BackupStatsOutput{TotalBackups: stats.TotalBackups, TotalSize: stats.TotalSize}
		if stats.OldestBackup != nil {
			out.OldestBackup, out.NewestBackup = *stats.OldestBackup, *stats.NewestBackup
		}
		return nil, out, nil
	}
}

// --- create_backup ---

// CreateBackupInput is the input for create_backup.
type CreateBackupInput struct {
	Timestamp  string `json:"timestamp,omitempty"   jsonschema:"explicit snapshot id (default: current UTC time)"`
	MaxBackups int    `json:"max_backups,omitempty" jsonschema:"prune to this many snapshots afterwards (default: project maxBackups)"`
}

// CreateBackupOutput is the output for create_backup.
type CreateBackupOutput struct {
	ID            string   `json:"id"                 jsonschema:"snapshot id"`
	Path          string   `json:"path"               jsonschema:"snapshot directory"`
	FilesBackedUp int      `json:"files_backed_up"    jsonschema:"number of files copied"`
	Pruned        int      `json:"pruned"             jsonschema:"number of old snapshots removed"`
	Warnings      []string `json:"warnings,omitempty" jsonschema:"non-fatal pruning problems"`
}

func handleCreateBackup(ws *Workspace) mcp.ToolHandlerFor[CreateBackupInput, CreateBackupOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CreateBackupInput) (*mcp.CallToolResult, CreateBackupOutput, error) {
		if input.MaxBackups < 0 {
			return nil, CreateBackupOutput{}, errors.New("max_backups must not be negative")
		}
		cfg, store, err := ws.load()
		if err != nil {
			return nil, CreateBackupOutput{}, err
		}

		maxBackups := input.MaxBackups
		if maxBackups == 0 {
			maxBackups = cfg.MaxBackups
		}
		result, err := store.Create(cfg.Project(), backup.CreateOptions{
			Timestamp:  input.Timestamp,
			MaxBackups: maxBackups,
		})
		if err != nil {
			return nil, CreateBackupOutput{}, fmt.Errorf("creating backup: %w", err)
		}
		return nil, CreateBackupOutput{
			ID:            result.ID,
			Path:          result.Path,
			FilesBackedUp: result.FilesBackedUp,
			Pruned:        result.Pruned,
			Warnings:      result.Warnings,
		}, nil
	}
}

// --- restore_backup ---

// RestoreBackupInput is the input for restore_backup.
type RestoreBackupInput struct {
	ID            string `json:"id"                       jsonschema:"snapshot id to restore (required)"`
	RestoreConfig bool   `json:"restore_config,omitempty" jsonschema:"also restore the project config file"`
}

// RestoreBackupOutput is the output for restore_backup.
type RestoreBackupOutput struct {
	ID            string   `json:"id"             jsonschema:"restored snapshot id"`
	RestoredFiles []string `json:"restored_files" jsonschema:"project-relative paths that were overwritten"`
	CreatedAt     string   `json:"created_at,omitempty" jsonschema:"snapshot creation timestamp"`
}

func handleRestoreBackup(ws *Workspace) mcp.ToolHandlerFor[RestoreBackupInput, RestoreBackupOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RestoreBackupInput) (*mcp.CallToolResult, RestoreBackupOutput, error) {
		if input.ID == "" {
			return nil, RestoreBackupOutput{}, errors.New("id is required")
		}
		cfg, store, err := ws.load()
		if err != nil {
			return nil, RestoreBackupOutput{}, err
		}
		result, err := store.Restore(input.ID, cfg.Project(), backup.RestoreOptions{RestoreConfig: input.RestoreConfig})
		if err != nil {
			return nil, RestoreBackupOutput{}, fmt.Errorf("restoring backup: %w", err)
		}

		out := RestoreBackupOutput{ID: result.ID, RestoredFiles: result.RestoredFiles}
		if result.Metadata != nil {
			out.CreatedAt = formatTime(&result.Metadata.CreatedAt)
		}
		return nil, out, nil
	}
}

// --- delete_backup ---

// DeleteBackupInput is the input for delete_backup.
type DeleteBackupInput struct {
	ID string `json:"id" jsonschema:"snapshot id to delete (required)"`
}

// DeleteBackupOutput is the output for delete_backup.
type DeleteBackupOutput struct {
	Deleted string `json:"deleted" jsonschema:"id of the deleted snapshot"`
}

func handleDeleteBackup(ws *Workspace) mcp.ToolHandlerFor[DeleteBackupInput, DeleteBackupOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DeleteBackupInput) (*mcp.CallToolResult, DeleteBackupOutput, error) {
		if input.ID == "" {
			return nil, DeleteBackupOutput{}, errors.New("id is required")
		}
		_, store, err := ws.load()
		if err != nil {
			return nil, DeleteBackupOutput{}, err
		}
		result, err := store.Delete(input.ID)
		if err != nil {
			return nil, DeleteBackupOutput{}, fmt.Errorf("deleting backup: %w", err)
		}
		return nil, DeleteBackupOutput{Deleted: result.Deleted}, nil
	}
}
