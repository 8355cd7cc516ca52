package actions

import (
	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/state"
)

// RefreshActionsStatus re-fetches CI status after it has been checked
// once, discarding the whole cached fact namespace first.
type RefreshActionsStatus struct {
	*Deps
}

// NewRefreshActionsStatus creates the action.
func NewRefreshActionsStatus(deps *Deps) *RefreshActionsStatus {
	return &RefreshActionsStatus{Deps: deps}
}

// Meta implements action.Action.
func (a *RefreshActionsStatus) Meta() action.Meta {
	return action.Meta{
		Name:        "Refresh GitHub Actions Status",
		Description: "Re-fetch CI status, discarding cached results",
		Category:    action.CategoryInfo,
	}
}

// IsApplicable is the complement of the first-time fetch: only after a
// check has happened.
func (a *RefreshActionsStatus) IsApplicable(st *state.RepoState) bool {
	return st.IsGitRepo && st.HasRemote &&
		st.GetRemoteType() == state.RemoteGitHub &&
		st.HasFact(state.FactActionsChecked)
}

// Execute clears the github_actions_ namespace and fetches fresh status.
// Clearing first means a failed fetch leaves the state unchecked rather
// than stale.
func (a *RefreshActionsStatus) Execute(st *state.RepoState) bool {
	st.ClearFactsMatching(state.FactActionsPrefix)
	return fetchActionsStatus(a.Deps, st)
}
