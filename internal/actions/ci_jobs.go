package actions

import (
	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/state"
)

// ViewFailedJobs lists the failed jobs of the latest checked run from the
// fact cache. Purely local; no network access.
type ViewFailedJobs struct {
	*Deps
}

// NewViewFailedJobs creates the action.
func NewViewFailedJobs(deps *Deps) *ViewFailedJobs {
	return &ViewFailedJobs{Deps: deps}
}

// Meta implements action.Action.
func (a *ViewFailedJobs) Meta() action.Meta {
	return action.Meta{
		Name:        "View Failed Jobs",
		Description: "Show the failed jobs of the latest workflow run",
		Category:    action.CategoryInfo,
	}
}

// IsApplicable requires a checked status with at least one failed job.
func (a *ViewFailedJobs) IsApplicable(st *state.RepoState) bool {
	return st.HasFact(state.FactActionsChecked) &&
		st.IntFact(state.FactActionsFailedCount, 0) > 0
}

// Execute prints the cached failed jobs with their web URLs.
func (a *ViewFailedJobs) Execute(st *state.RepoState) bool {
	failed := st.JobsFact(state.FactActionsFailedJobs)
	runURL := st.StringFact(state.FactActionsURL, "")

	a.Printer.Section("Failed jobs")
	for _, j := range failed {
		a.fail("  ✗ %s", j.Name)
		a.note("      %s", j.URL)
	}
	if runURL != "" {
		a.note("Run details: %s", runURL)
	}
	return true
}
