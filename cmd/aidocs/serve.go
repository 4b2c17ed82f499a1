package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	aidocsmcp "github.com/gorewood/aidocs/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run aidocs as a Model Context Protocol (MCP) server over stdio.

The server works on the project given by --dir (default: the working
directory) and reloads its config on every call.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "aidocs": {
        "command": "aidocs",
        "args": ["serve", "--dir", "/path/to/project"]
      }
    }
  }

Available tools: list_backups, backup_stats, view_docs, create_backup,
restore_backup, delete_backup, update_docs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := projectRoot(cmd)
			if err != nil {
				return err
			}
			server := aidocsmcp.NewServer(buildVersion(), aidocsmcp.NewWorkspace(afero.NewOsFs(), root))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
