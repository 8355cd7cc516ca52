// Package main provides the entry point for the maestro CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	maestromcp "github.com/gorewood/maestro/internal/mcp"
	"github.com/gorewood/maestro/internal/tokens"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run maestro as a Model Context Protocol (MCP) server over stdio.

This exposes repository inspection and CI status operations as MCP tools
that any MCP-capable agent environment can use (Claude Code, Cursor,
Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "maestro": {
        "command": "maestro",
        "args": ["serve"]
      }
    }
  }

Available tools: repo_state, list_workflow_runs, run_jobs, download_job_traces`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := maestromcp.NewServer(buildVersion(), tokens.NewStore())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
