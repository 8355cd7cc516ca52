package actions

import (
	"context"

	"github.com/gorewood/maestro/internal/hosting"
	"github.com/gorewood/maestro/internal/state"
)

// runListLimit caps how many workflow runs status and history fetch.
const runListLimit = 10

// githubFromStore builds a GitHub client using the stored token when one
// exists. Public repositories work without a token.
func githubFromStore(d *Deps) *hosting.GitHub {
	token, _ := d.Tokens.Get("github")
	return hosting.NewGitHub(token)
}

// fetchActionsStatus queries GitHub Actions for the current branch and
// records the result as github_actions_* facts. It is the body of both
// the fetch and the refresh action.
func fetchActionsStatus(d *Deps, st *state.RepoState) bool {
	_, owner, name, ok := hosting.ParseRemoteURL(st.RemoteURL)
	if !ok {
		d.fail("Remote URL %s is not a GitHub URL", st.RemoteURL)
		return false
	}

	d.step("Fetching GitHub Actions status for %s/%s...", owner, name)

	ctx := context.Background()
	client := githubFromStore(d)
	runs, err := client.ListWorkflowRuns(ctx, owner, name, st.BranchName, runListLimit)
	if err != nil {
		d.fail("Error fetching workflow runs: %v", err)
		return false
	}

	if len(runs) == 0 {
		d.note("No workflow runs found for branch '%s'", st.BranchName)
		st.SetFacts(map[string]state.FactValue{
			state.FactActionsChecked: state.BoolValue(true),
			state.FactActionsHasRuns: state.BoolValue(false),
		})
		return true
	}

	latest := runs[0]
	jobs, err := client.ListJobs(ctx, owner, name, latest.ID)
	if err != nil {
		d.fail("Error fetching jobs for run %d: %v", latest.ID, err)
		return false
	}

	var failed []state.JobRef
	for _, j := range jobs {
		if j.Conclusion == "failure" {
			failed = append(failed, state.JobRef{ID: j.ID, Name: j.Name, URL: j.HTMLURL})
		}
	}

	printRunsTable(d, runs)
	printJobs(d, latest, jobs)

	st.SetFacts(map[string]state.FactValue{
		state.FactActionsChecked:     state.BoolValue(true),
		state.FactActionsHasRuns:     state.BoolValue(true),
		state.FactActionsRunID:       state.IntValue(latest.ID),
		state.FactActionsStatus:      state.StringValue(latest.Status),
		state.FactActionsConclusion:  state.StringValue(latest.Conclusion),
		state.FactActionsURL:         state.StringValue(latest.HTMLURL),
		state.FactActionsJobCount:    state.IntValue(int64(len(jobs))),
		state.FactActionsFailedCount: state.IntValue(int64(len(failed))),
		state.FactActionsFailedJobs:  state.JobsValue(failed),
	})
	return true
}

// printRunsTable renders recent workflow runs.
func printRunsTable(d *Deps, runs []hosting.WorkflowRun) {
	d.Printer.Section("Recent workflow runs")
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.Name,
			r.Status,
			conclusionOrDash(r.Conclusion),
			r.HeadBranch,
			shortSHA(r.HeadSHA),
			hosting.Duration(r.UpdatedAt.Sub(r.CreatedAt)),
		})
	}
	d.Printer.Table([]string{"Workflow", "Status", "Conclusion", "Branch", "Commit", "Duration"}, rows)
}

// printJobs renders the jobs of the latest run, with failed steps inline.
func printJobs(d *Deps, run hosting.WorkflowRun, jobs []hosting.Job) {
	d.Printer.Section("Latest run: " + run.Name)
	for _, j := range jobs {
		mark := "✓"
		switch j.Conclusion {
		case "failure":
			mark = "✗"
		case "":
			mark = "…"
		}
		d.Printer.Print("  %s %s (%s)\n", mark, j.Name, conclusionOrDash(j.Conclusion))
		if j.Conclusion != "failure" {
			continue
		}
		for _, s := range j.Steps {
			if s.Conclusion == "failure" {
				d.note("      failed step: %s", s.Name)
			}
		}
	}
}

func conclusionOrDash(conclusion string) string {
	if conclusion == "" {
		return "-"
	}
	return conclusion
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
