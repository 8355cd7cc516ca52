package actions

import (
	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/state"
)

// FetchActionsStatus queries GitHub Actions CI status for the first time
// in a session and caches the result as facts.
type FetchActionsStatus struct {
	*Deps
}

// NewFetchActionsStatus creates the action.
func NewFetchActionsStatus(deps *Deps) *FetchActionsStatus {
	return &FetchActionsStatus{Deps: deps}
}

// Meta implements action.Action.
func (a *FetchActionsStatus) Meta() action.Meta {
	return action.Meta{
		Name:        "Check GitHub Actions Status",
		Description: "Fetch recent CI workflow runs and job results",
		Category:    action.CategoryInfo,
	}
}

// IsApplicable offers the action for GitHub remotes that have not been
// checked yet this session.
func (a *FetchActionsStatus) IsApplicable(st *state.RepoState) bool {
	return st.IsGitRepo && st.HasRemote &&
		st.GetRemoteType() == state.RemoteGitHub &&
		!st.HasFact(state.FactActionsChecked)
}

// Execute fetches and caches the CI status.
func (a *FetchActionsStatus) Execute(st *state.RepoState) bool {
	return fetchActionsStatus(a.Deps, st)
}
