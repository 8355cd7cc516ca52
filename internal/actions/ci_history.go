package actions

import (
	"context"

	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/hosting"
	"github.com/gorewood/maestro/internal/state"
)

// RunHistory shows recent workflow runs across all branches, not just the
// latest run the status check cached.
type RunHistory struct {
	*Deps
}

// NewRunHistory creates the action.
func NewRunHistory(deps *Deps) *RunHistory {
	return &RunHistory{Deps: deps}
}

// Meta implements action.Action.
func (a *RunHistory) Meta() action.Meta {
	return action.Meta{
		Name:        "View Run History",
		Description: "Show recent workflow runs across all branches",
		Category:    action.CategoryInfo,
	}
}

// IsApplicable requires a checked status that found at least one run.
func (a *RunHistory) IsApplicable(st *state.RepoState) bool {
	return st.HasFact(state.FactActionsChecked) &&
		st.BoolFact(state.FactActionsHasRuns, false)
}

// Execute fetches and prints the run history. The fact cache is left
// untouched; history is a view, not state.
func (a *RunHistory) Execute(st *state.RepoState) bool {
	_, owner, name, ok := hosting.ParseRemoteURL(st.RemoteURL)
	if !ok {
		a.fail("Remote URL %s is not a GitHub URL", st.RemoteURL)
		return false
	}

	ctx := context.Background()
	client := githubFromStore(a.Deps)
	runs, err := client.ListWorkflowRuns(ctx, owner, name, "", runListLimit)
	if err != nil {
		a.fail("Error fetching run history: %v", err)
		return false
	}
	if len(runs) == 0 {
		a.note("No workflow runs found")
		return true
	}

	printRunsTable(a.Deps, runs)
	return true
}
