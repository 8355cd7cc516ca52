package actions

import "github.com/gorewood/maestro/internal/action"

// NewRegistry builds the registry with every action in its canonical
// order. Registration order is what the menu preserves within each
// category, so setup actions are listed in the order a fresh repo needs
// them.
func NewRegistry(deps *Deps) *action.Registry {
	r := action.NewRegistry()
	r.MustRegister(
		NewInitRepo(deps),
		NewInitialCommit(deps),
		NewAddReadme(deps),
		NewAddGitignore(deps),
		NewSetupRemote(deps),
		NewCreateRemoteRepo(deps),
		NewFetchActionsStatus(deps),
		NewRefreshActionsStatus(deps),
		NewViewFailedJobs(deps),
		NewDownloadJobTraces(deps),
		NewRunHistory(deps),
	)
	return r
}
