package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/hosting"
	"github.com/gorewood/maestro/internal/state"
)

// DownloadJobTraces downloads the logs of the failed jobs in the latest
// checked run into the repository's .maestro/traces directory.
type DownloadJobTraces struct {
	*Deps
}

// NewDownloadJobTraces creates the action.
func NewDownloadJobTraces(deps *Deps) *DownloadJobTraces {
	return &DownloadJobTraces{Deps: deps}
}

// Meta implements action.Action.
func (a *DownloadJobTraces) Meta() action.Meta {
	return action.Meta{
		Name:        "Download Job Traces",
		Description: "Save logs of failed CI jobs for local inspection",
		Category:    action.CategoryInfo,
		StorageDir:  "traces",
	}
}

// IsApplicable requires a checked status with failed jobs. Re-running is
// allowed; traces are overwritten per run ID.
func (a *DownloadJobTraces) IsApplicable(st *state.RepoState) bool {
	return st.HasFact(state.FactActionsChecked) &&
		st.IntFact(state.FactActionsFailedCount, 0) > 0
}

// Execute fetches each failed job's log and writes it under
// traces/run-<id>/, together with a summary README.
func (a *DownloadJobTraces) Execute(st *state.RepoState) bool {
	_, owner, name, ok := hosting.ParseRemoteURL(st.RemoteURL)
	if !ok {
		a.fail("Remote URL %s is not a GitHub URL", st.RemoteURL)
		return false
	}
	runID := st.IntFact(state.FactActionsRunID, 0)
	failed := st.JobsFact(state.FactActionsFailedJobs)
	if runID == 0 || len(failed) == 0 {
		a.warn("No failed jobs recorded; run a status check first")
		return false
	}

	base, err := action.StoragePath(st, a)
	if err != nil {
		a.fail("Error preparing traces directory: %v", err)
		return false
	}
	runDir := filepath.Join(base, fmt.Sprintf("run-%d", runID))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		a.fail("Error preparing traces directory: %v", err)
		return false
	}

	a.step("Downloading traces for %d failed job(s)...", len(failed))

	ctx := context.Background()
	client := githubFromStore(a.Deps)
	saved := 0
	for _, job := range failed {
		logs, err := client.JobLogs(ctx, owner, name, job.ID)
		if err != nil {
			a.warn("Could not download logs for %s: %v", job.Name, err)
			continue
		}
		path := filepath.Join(runDir, hosting.JobLogFile(job.ID, job.Name))
		if err := os.WriteFile(path, []byte(logs), 0o644); err != nil {
			a.warn("Could not write %s: %v", path, err)
			continue
		}
		a.ok("Saved %s", path)
		saved++
	}
	if saved == 0 {
		a.fail("No traces could be downloaded")
		return false
	}

	if err := a.writeSummary(st, runDir, runID, failed); err != nil {
		a.warn("Could not write summary: %v", err)
	}

	st.SetFacts(map[string]state.FactValue{
		state.FactTracesDownloaded: state.BoolValue(true),
		state.FactTracesPath:       state.StringValue(runDir),
		state.FactTracesRunID:      state.IntValue(runID),
	})
	a.ok("Traces saved to %s", runDir)
	return true
}

// writeSummary drops a README next to the logs.
func (a *DownloadJobTraces) writeSummary(st *state.RepoState, runDir string, runID int64, failed []state.JobRef) error {
	jobs := make([]hosting.TraceJob, 0, len(failed))
	for _, job := range failed {
		jobs = append(jobs, hosting.TraceJob{ID: job.ID, Name: job.Name, URL: job.URL})
	}
	content := hosting.TraceSummary(runID, st.BranchName, st.StringFact(state.FactActionsURL, ""), jobs)
	return os.WriteFile(filepath.Join(runDir, "README.md"), []byte(content), 0o644)
}
