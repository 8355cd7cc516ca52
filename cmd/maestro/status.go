// Package main provides the entry point for the maestro CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/maestro/internal/menu"
	"github.com/gorewood/maestro/internal/output"
	"github.com/gorewood/maestro/internal/state"
)

// newStatusCmd creates the status command: a one-shot, non-interactive
// view of the repository state.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [path]",
		Short: "Show repository setup state",
		Long: `Inspect a git working directory and report its setup state without
entering the interactive assistant.

Examples:
  maestro status            # Inspect the current directory
  maestro status ~/project  # Inspect another directory
  maestro status --json     # Output state as JSON for scripting`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStatus,
	}
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))
	st := state.New(path)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"path":            st.Path,
			"is_git_repo":     st.IsGitRepo,
			"has_commits":     st.HasCommits,
			"branch":          st.BranchName,
			"has_readme":      st.HasReadme,
			"has_gitignore":   st.HasGitignore,
			"has_remote":      st.HasRemote,
			"remote_url":      st.RemoteURL,
			"remote_type":     string(st.GetRemoteType()),
			"is_clean":        st.IsClean,
			"untracked_files": st.UntrackedFiles,
			"modified_files":  st.ModifiedFiles,
		})
	}

	menu.StatePanel(printer, st)
	return nil
}
