// Package mcp provides a Model Context Protocol server for aidocs.
// It exposes the backup store and the documentation updater as MCP tools
// so coding agents can record their changes and manage snapshots.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all aidocs tools registered.
func NewServer(version string, ws *Workspace) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "aidocs",
		Version: version,
	}, nil)
	registerTools(server, ws)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for additive write tools.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// destructiveAnnotations returns annotations for tools that overwrite or
// remove project files.
func destructiveAnnotations(idempotent bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  idempotent,
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, ws *Workspace) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_backups",
		Description: "List documentation backup snapshots, newest first, with creation time, project name, and file count.",
		Annotations: readOnlyAnnotations(),
	}, handleListBackups(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "backup_stats",
		Description: "Report the number of backup snapshots, their total size in bytes, and the oldest and newest snapshot ids.",
		Annotations: readOnlyAnnotations(),
	}, handleBackupStats(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_docs",
		Description: "Show the project configuration summary and the current changes, status, and next steps recorded in the AI instructions file.",
		Annotations: readOnlyAnnotations(),
	}, handleViewDocs(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_backup",
		Description: "Snapshot the AI instructions file, changelog, and config. Optionally prune to max_backups snapshots afterwards.",
		Annotations: writeAnnotations(),
	}, handleCreateBackup(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "restore_backup",
		Description: "Overwrite the tracked documentation files with the copies from a snapshot. The config file is restored only with restore_config=true.",
		Annotations: destructiveAnnotations(true),
	}, handleRestoreBackup(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_backup",
		Description: "Delete one backup snapshot by id.",
		Annotations: destructiveAnnotations(false),
	}, handleDeleteBackup(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_docs",
		Description: "Record a change in the AI instructions file and changelog: list of changes, current status, and next planned improvements. Takes an auto-backup first when the project enables it.",
		Annotations: writeAnnotations(),
	}, handleUpdateDocs(ws))
}
