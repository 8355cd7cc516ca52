// Package mcp provides a Model Context Protocol server for maestro.
// It exposes repository inspection and CI status operations as MCP tools
// that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/maestro/internal/tokens"
)

// NewServer creates an MCP server with all maestro tools registered.
func NewServer(version string, store *tokens.Store) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "maestro",
		Version: version,
	}, nil)
	registerTools(server, store)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

// writeAnnotations returns annotations for tools that write files
// (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all maestro tools to the server.
func registerTools(server *mcp.Server, store *tokens.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "repo_state",
		Description: "Inspect a local git working directory: repository presence, commits, branch, README, .gitignore, remote, and working tree cleanliness.",
		Annotations: readOnlyAnnotations(),
	}, handleRepoState())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_workflow_runs",
		Description: "List recent GitHub Actions workflow runs for the repository's origin remote. Optionally filter by branch.",
		Annotations: readOnlyAnnotations(),
	}, handleListWorkflowRuns(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_jobs",
		Description: "List the jobs of a GitHub Actions workflow run, including failed steps.",
		Annotations: readOnlyAnnotations(),
	}, handleRunJobs(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "download_job_traces",
		Description: "Download logs of the failed jobs in a workflow run into the repository's .maestro/traces directory.",
		Annotations: writeAnnotations(),
	}, handleDownloadJobTraces(store))
}
