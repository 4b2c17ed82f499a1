package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/aidocs/internal/docs"
)

// --- view_docs ---

// ViewDocsInput is the input for view_docs (no parameters needed).
type ViewDocsInput struct{}

// ViewDocsOutput is the output for view_docs.
type ViewDocsOutput struct {
	ProjectName      string   `json:"project_name"           jsonschema:"configured project name"`
	ProjectType      string   `json:"project_type"           jsonschema:"configured project type"`
	InstructionsFile string   `json:"instructions_file"      jsonschema:"AI instructions file, relative to the project root"`
	ChangelogFile    string   `json:"changelog_file"         jsonschema:"changelog file, relative to the project root"`
	Found            bool     `json:"found"                  jsonschema:"whether the instructions file exists"`
	LastUpdated      string   `json:"last_updated,omitempty" jsonschema:"date of the last recorded update"`
	Changes          []string `json:"changes"                jsonschema:"recent modifications"`
	Status           string   `json:"status,omitempty"       jsonschema:"current status"`
	Next             []string `json:"next"                   jsonschema:"next planned improvements"`
}

func handleViewDocs(ws *Workspace) mcp.ToolHandlerFor[ViewDocsInput, ViewDocsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ViewDocsInput) (*mcp.CallToolResult, ViewDocsOutput, error) {
		cfg, updater, err := ws.updater()
		if err != nil {
			return nil, ViewDocsOutput{}, err
		}
		view, err := updater.Read()
		if err != nil {
			return nil, ViewDocsOutput{}, fmt.Errorf("reading docs: %w", err)
		}
		return nil, ViewDocsOutput{
			ProjectName:      cfg.ProjectName,
			ProjectType:      cfg.ProjectType,
			InstructionsFile: cfg.AIInstructionsFile,
			ChangelogFile:    cfg.ChangelogFile,
			Found:            view.Found,
			LastUpdated:      view.Sections.LastUpdated,
			Changes:          view.Sections.Changes,
			Status:           view.Sections.Status,
			Next:             view.Sections.Next,
		}, nil
	}
}

// --- update_docs ---

// UpdateDocsInput is the input for update_docs.
type UpdateDocsInput struct {
	Changes []string `json:"changes,omitempty" jsonschema:"changes made in this session"`
	Status  string   `json:"status,omitempty"  jsonschema:"one-line current project status"`
	Next    []string `json:"next,omitempty"    jsonschema:"next planned improvements"`
}

// UpdateDocsOutput is the output for update_docs.
type UpdateDocsOutput struct {
	Date                string   `json:"date"                jsonschema:"date written into the files"`
	InstructionsUpdated bool     `json:"instructions_updated" jsonschema:"whether the AI instructions file changed"`
	ChangelogUpdated    bool     `json:"changelog_updated"   jsonschema:"whether the changelog changed"`
	ChangesLogged       int      `json:"changes_logged"      jsonschema:"number of changes recorded"`
	BackupID            string   `json:"backup_id,omitempty" jsonschema:"auto-backup snapshot id, when one was taken"`
	Warnings            []string `json:"warnings,omitempty"  jsonschema:"non-fatal problems such as a failed auto-backup"`
}

func handleUpdateDocs(ws *Workspace) mcp.ToolHandlerFor[UpdateDocsInput, UpdateDocsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input UpdateDocsInput) (*mcp.CallToolResult, UpdateDocsOutput, error) {
		_, updater, err := ws.updater()
		if err != nil {
			return nil, UpdateDocsOutput{}, err
		}
		result, err := updater.Apply(docs.Update{Changes: input.Changes, Status: input.Status, Next: input.Next})
		if err != nil {
			return nil, UpdateDocsOutput{}, fmt.Errorf("updating docs: %w", err)
		}

		out := UpdateDocsOutput{
			Date:                result.Date,
			InstructionsUpdated: result.InstructionsUpdated,
			ChangelogUpdated:    result.ChangelogUpdated,
			ChangesLogged:       result.ChangesLogged,
			Warnings:            result.Warnings,
		}
		if result.Backup != nil && result.Backup.Snapshot != nil {
			out.BackupID = result.Backup.Snapshot.ID
		}
		return nil, out, nil
	}
}
