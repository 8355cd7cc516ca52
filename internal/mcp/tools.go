package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/maestro/internal/hosting"
	"github.com/gorewood/maestro/internal/state"
	"github.com/gorewood/maestro/internal/tokens"
)

// --- Shared types ---

// RunSummary is a simplified workflow run for output.
type RunSummary struct {
	ID         int64  `json:"id"                   jsonschema:"workflow run ID"`
	Name       string `json:"name"                 jsonschema:"workflow name"`
	Status     string `json:"status"               jsonschema:"queued, in_progress, or completed"`
	Conclusion string `json:"conclusion,omitempty" jsonschema:"success, failure, cancelled, etc; empty until completed"`
	Branch     string `json:"branch,omitempty"     jsonschema:"head branch of the run"`
	Commit     string `json:"commit"               jsonschema:"head commit SHA"`
	URL        string `json:"url"                  jsonschema:"web URL of the run"`
	Duration   string `json:"duration"             jsonschema:"run duration, human formatted"`
}

// JobSummary is a simplified job for output.
type JobSummary struct {
	ID          int64    `json:"id"                     jsonschema:"job ID"`
	Name        string   `json:"name"                   jsonschema:"job name"`
	Status      string   `json:"status"                 jsonschema:"job status"`
	Conclusion  string   `json:"conclusion,omitempty"   jsonschema:"job conclusion; empty until completed"`
	URL         string   `json:"url"                    jsonschema:"web URL of the job"`
	FailedSteps []string `json:"failed_steps,omitempty" jsonschema:"names of steps that failed"`
}

// repoForPath builds a fresh RepoState for path. Empty path means the
// current directory.
func repoForPath(path string) *state.RepoState {
	if path == "" {
		path = "."
	}
	return state.New(path)
}

// githubForRepo resolves the owner/name of the repo's origin remote and
// builds a GitHub client with the stored token when one exists.
func githubForRepo(store *tokens.Store, st *state.RepoState) (*hosting.GitHub, string, string, error) {
	if !st.IsGitRepo {
		return nil, "", "", fmt.Errorf("%s is not a git repository", st.Path)
	}
	if !st.HasRemote {
		return nil, "", "", fmt.Errorf("%s has no remote configured", st.Path)
	}
	provider, owner, name, ok := hosting.ParseRemoteURL(st.RemoteURL)
	if !ok || provider != "github" {
		return nil, "", "", fmt.Errorf("remote %s is not a GitHub URL", st.RemoteURL)
	}
	token, _ := store.Get("github")
	return hosting.NewGitHub(token), owner, name, nil
}

// --- repo_state tool ---

// RepoStateInput is the input for the repo_state tool.
type RepoStateInput struct {
	Path string `json:"path,omitempty" jsonschema:"directory to inspect (default: current directory)"`
}

// RepoStateOutput is the output for the repo_state tool.
type RepoStateOutput struct {
	Path           string   `json:"path"            jsonschema:"absolute path of the inspected directory"`
	IsGitRepo      bool     `json:"is_git_repo"     jsonschema:"whether the directory is a git repository"`
	HasCommits     bool     `json:"has_commits"     jsonschema:"whether the repository has at least one commit"`
	Branch         string   `json:"branch,omitempty" jsonschema:"current branch name; empty before the first commit"`
	HasReadme      bool     `json:"has_readme"      jsonschema:"whether a README file exists"`
	HasGitignore   bool     `json:"has_gitignore"   jsonschema:"whether a .gitignore file exists"`
	HasRemote      bool     `json:"has_remote"      jsonschema:"whether a remote is configured"`
	RemoteURL      string   `json:"remote_url,omitempty" jsonschema:"URL of the first remote"`
	RemoteType     string   `json:"remote_type"     jsonschema:"github, gitlab, unknown, or none"`
	IsClean        bool     `json:"is_clean"        jsonschema:"whether the working tree is clean"`
	UntrackedFiles []string `json:"untracked_files,omitempty" jsonschema:"untracked file paths"`
	ModifiedFiles  []string `json:"modified_files,omitempty"  jsonschema:"modified file paths"`
}

func handleRepoState() mcp.ToolHandlerFor[RepoStateInput, RepoStateOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RepoStateInput) (*mcp.CallToolResult, RepoStateOutput, error) {
		st := repoForPath(input.Path)

		out := RepoStateOutput{
			Path:           st.Path,
			IsGitRepo:      st.IsGitRepo,
			HasCommits:     st.HasCommits,
			Branch:         st.BranchName,
			HasReadme:      st.HasReadme,
			HasGitignore:   st.HasGitignore,
			HasRemote:      st.HasRemote,
			RemoteURL:      st.RemoteURL,
			RemoteType:     string(st.GetRemoteType()),
			IsClean:        st.IsClean,
			UntrackedFiles: st.UntrackedFiles,
			ModifiedFiles:  st.ModifiedFiles,
		}

		return nil, out, nil
	}
}

// --- list_workflow_runs tool ---

// ListWorkflowRunsInput is the input for the list_workflow_runs tool.
type ListWorkflowRunsInput struct {
	Path   string `json:"path,omitempty"   jsonschema:"repository directory (default: current directory)"`
	Branch string `json:"branch,omitempty" jsonschema:"filter runs to this branch"`
	Limit  int    `json:"limit,omitempty"  jsonschema:"maximum runs to return (default 10)"`
}

// ListWorkflowRunsOutput is the output for the list_workflow_runs tool.
type ListWorkflowRunsOutput struct {
	Repo  string       `json:"repo"  jsonschema:"owner/name of the repository"`
	Count int          `json:"count" jsonschema:"number of runs returned"`
	Runs  []RunSummary `json:"runs"  jsonschema:"recent workflow runs, newest first"`
}

func handleListWorkflowRuns(store *tokens.Store) mcp.ToolHandlerFor[ListWorkflowRunsInput, ListWorkflowRunsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListWorkflowRunsInput) (*mcp.CallToolResult, ListWorkflowRunsOutput, error) {
		st := repoForPath(input.Path)
		client, owner, name, err := githubForRepo(store, st)
		if err != nil {
			return nil, ListWorkflowRunsOutput{}, err
		}

		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		runs, err := client.ListWorkflowRuns(ctx, owner, name, input.Branch, limit)
		if err != nil {
			return nil, ListWorkflowRunsOutput{}, fmt.Errorf("listing workflow runs: %w", err)
		}

		out := ListWorkflowRunsOutput{
			Repo:  owner + "/" + name,
			Count: len(runs),
			Runs:  make([]RunSummary, 0, len(runs)),
		}
		for _, r := range runs {
			out.Runs = append(out.Runs, RunSummary{
				ID:         r.ID,
				Name:       r.Name,
				Status:     r.Status,
				Conclusion: r.Conclusion,
				Branch:     r.HeadBranch,
				Commit:     r.HeadSHA,
				URL:        r.HTMLURL,
				Duration:   hosting.Duration(r.UpdatedAt.Sub(r.CreatedAt)),
			})
		}
		return nil, out, nil
	}
}

// --- run_jobs tool ---

// RunJobsInput is the input for the run_jobs tool.
type RunJobsInput struct {
	Path  string `json:"path,omitempty" jsonschema:"repository directory (default: current directory)"`
	RunID int64  `json:"run_id"         jsonschema:"workflow run ID to inspect"`
}

// RunJobsOutput is the output for the run_jobs tool.
type RunJobsOutput struct {
	RunID       int64        `json:"run_id"       jsonschema:"the inspected workflow run ID"`
	JobCount    int          `json:"job_count"    jsonschema:"total number of jobs"`
	FailedCount int          `json:"failed_count" jsonschema:"number of failed jobs"`
	Jobs        []JobSummary `json:"jobs"         jsonschema:"jobs of the run"`
}

func handleRunJobs(store *tokens.Store) mcp.ToolHandlerFor[RunJobsInput, RunJobsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RunJobsInput) (*mcp.CallToolResult, RunJobsOutput, error) {
		if input.RunID == 0 {
			return nil, RunJobsOutput{}, fmt.Errorf("run_id is required")
		}
		st := repoForPath(input.Path)
		client, owner, name, err := githubForRepo(store, st)
		if err != nil {
			return nil, RunJobsOutput{}, err
		}

		jobs, err := client.ListJobs(ctx, owner, name, input.RunID)
		if err != nil {
			return nil, RunJobsOutput{}, fmt.Errorf("listing jobs: %w", err)
		}

		out := RunJobsOutput{RunID: input.RunID, JobCount: len(jobs)}
		for _, j := range jobs {
			summary := JobSummary{
				ID:         j.ID,
				Name:       j.Name,
				Status:     j.Status,
				Conclusion: j.Conclusion,
				URL:        j.HTMLURL,
			}
			if j.Conclusion == "failure" {
				out.FailedCount++
				for _, s := range j.Steps {
					if s.Conclusion == "failure" {
						summary.FailedSteps = append(summary.FailedSteps, s.Name)
					}
				}
			}
			out.Jobs = append(out.Jobs, summary)
		}
		return nil, out, nil
	}
}

// --- download_job_traces tool ---

// DownloadJobTracesInput is the input for the download_job_traces tool.
type DownloadJobTracesInput struct {
	Path  string `json:"path,omitempty" jsonschema:"repository directory (default: current directory)"`
	RunID int64  `json:"run_id"         jsonschema:"workflow run ID whose failed job logs to download"`
}

// DownloadJobTracesOutput is the output for the download_job_traces tool.
type DownloadJobTracesOutput struct {
	RunID    int64    `json:"run_id"          jsonschema:"the workflow run ID"`
	TraceDir string   `json:"trace_dir"       jsonschema:"directory the logs were written to"`
	Files    []string `json:"files"           jsonschema:"paths of the downloaded log files"`
	Skipped  []string `json:"skipped,omitempty" jsonschema:"failed jobs whose logs could not be fetched"`
}

func handleDownloadJobTraces(store *tokens.Store) mcp.ToolHandlerFor[DownloadJobTracesInput, DownloadJobTracesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DownloadJobTracesInput) (*mcp.CallToolResult, DownloadJobTracesOutput, error) {
		if input.RunID == 0 {
			return nil, DownloadJobTracesOutput{}, fmt.Errorf("run_id is required")
		}
		st := repoForPath(input.Path)
		client, owner, name, err := githubForRepo(store, st)
		if err != nil {
			return nil, DownloadJobTracesOutput{}, err
		}

		jobs, err := client.ListJobs(ctx, owner, name, input.RunID)
		if err != nil {
			return nil, DownloadJobTracesOutput{}, fmt.Errorf("listing jobs: %w", err)
		}

		var failed []hosting.Job
		for _, j := range jobs {
			if j.Conclusion == "failure" {
				failed = append(failed, j)
			}
		}
		if len(failed) == 0 {
			return nil, DownloadJobTracesOutput{}, fmt.Errorf("run %d has no failed jobs", input.RunID)
		}

		traceDir := filepath.Join(st.Path, ".maestro", "traces", fmt.Sprintf("run-%d", input.RunID))
		if err := os.MkdirAll(traceDir, 0o755); err != nil {
			return nil, DownloadJobTracesOutput{}, fmt.Errorf("creating trace directory: %w", err)
		}

		out := DownloadJobTracesOutput{RunID: input.RunID, TraceDir: traceDir}
		for _, j := range failed {
			logs, logErr := client.JobLogs(ctx, owner, name, j.ID)
			if logErr != nil {
				out.Skipped = append(out.Skipped, j.Name)
				continue
			}
			path := filepath.Join(traceDir, hosting.JobLogFile(j.ID, j.Name))
			if writeErr := os.WriteFile(path, []byte(logs), 0o644); writeErr != nil {
				out.Skipped = append(out.Skipped, j.Name)
				continue
			}
			out.Files = append(out.Files, path)
		}
		if len(out.Files) == 0 {
			return nil, DownloadJobTracesOutput{}, fmt.Errorf("no logs could be downloaded for run %d", input.RunID)
		}

		summaryJobs := make([]hosting.TraceJob, 0, len(failed))
		for _, j := range failed {
			summaryJobs = append(summaryJobs, hosting.TraceJob{ID: j.ID, Name: j.Name, URL: j.HTMLURL})
		}
		// Best effort; the logs themselves are the deliverable.
		summary := hosting.TraceSummary(input.RunID, "", "", summaryJobs)
		_ = os.WriteFile(filepath.Join(traceDir, "README.md"), []byte(summary), 0o644)

		return nil, out, nil
	}
}
