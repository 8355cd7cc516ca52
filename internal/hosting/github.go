package hosting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/go-github/v66/github"
)

// GitHub is a thin client over the GitHub REST API.
type GitHub struct {
	client *github.Client
}

// NewGitHub creates a GitHub client. An empty token yields an
// unauthenticated client, which is enough to read public repositories.
func NewGitHub(token string) *GitHub {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHub{client: client}
}

// Login verifies the token and returns the authenticated user's login.
func (g *GitHub) Login(ctx context.Context) (string, error) {
	user, _, err := g.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("authenticating with GitHub: %w", err)
	}
	return user.GetLogin(), nil
}

// CreateRepo creates a repository under the authenticated user. When a
// repository of that name already exists, it is fetched and returned with
// Existed set instead of failing.
func (g *GitHub) CreateRepo(ctx context.Context, name, description string, visibility Visibility) (*Repo, error) {
	created, _, err := g.client.Repositories.Create(ctx, "", &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(visibility == VisibilityPrivate),
		AutoInit:    github.Bool(false),
	})
	if err == nil {
		return &Repo{Name: created.GetName(), SSHURL: created.GetSSHURL(), HTMLURL: created.GetHTMLURL()}, nil
	}

	// 422 means the name is taken; reuse the existing repo.
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusUnprocessableEntity {
		login, loginErr := g.Login(ctx)
		if loginErr != nil {
			return nil, loginErr
		}
		existing, _, getErr := g.client.Repositories.Get(ctx, login, name)
		if getErr != nil {
			return nil, fmt.Errorf("repo %q exists but could not be fetched: %w", name, getErr)
		}
		return &Repo{Name: existing.GetName(), SSHURL: existing.GetSSHURL(), HTMLURL: existing.GetHTMLURL(), Existed: true}, nil
	}

	return nil, fmt.Errorf("creating GitHub repository: %w", err)
}

// RepoExists checks whether owner/name exists and is accessible.
func (g *GitHub) RepoExists(ctx context.Context, owner, name string) (bool, error) {
	_, resp, err := g.client.Repositories.Get(ctx, owner, name)
	if err == nil {
		return true, nil
	}
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("checking repository %s/%s: %w", owner, name, err)
}

// ListWorkflowRuns returns up to limit recent workflow runs on branch.
func (g *GitHub) ListWorkflowRuns(ctx context.Context, owner, repo, branch string, limit int) ([]WorkflowRun, error) {
	runs, _, err := g.client.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, &github.ListWorkflowRunsOptions{
		Branch:      branch,
		ListOptions: github.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, fmt.Errorf("listing workflow runs: %w", err)
	}

	out := make([]WorkflowRun, 0, len(runs.WorkflowRuns))
	for _, r := range runs.WorkflowRuns {
		out = append(out, WorkflowRun{
			ID:         r.GetID(),
			Name:       r.GetName(),
			Status:     r.GetStatus(),
			Conclusion: r.GetConclusion(),
			HeadBranch: r.GetHeadBranch(),
			HeadSHA:    r.GetHeadSHA(),
			HTMLURL:    r.GetHTMLURL(),
			CreatedAt:  r.GetCreatedAt().Time,
			UpdatedAt:  r.GetUpdatedAt().Time,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ListJobs returns every job of a workflow run.
func (g *GitHub) ListJobs(ctx context.Context, owner, repo string, runID int64) ([]Job, error) {
	jobs, _, err := g.client.Actions.ListWorkflowJobs(ctx, owner, repo, runID, &github.ListWorkflowJobsOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing jobs for run %d: %w", runID, err)
	}

	out := make([]Job, 0, len(jobs.Jobs))
	for _, j := range jobs.Jobs {
		job := Job{
			ID:          j.GetID(),
			Name:        j.GetName(),
			Status:      j.GetStatus(),
			Conclusion:  j.GetConclusion(),
			HTMLURL:     j.GetHTMLURL(),
			StartedAt:   j.GetStartedAt().Time,
			CompletedAt: j.GetCompletedAt().Time,
		}
		for _, s := range j.Steps {
			job.Steps = append(job.Steps, Step{
				Name:       s.GetName(),
				Status:     s.GetStatus(),
				Conclusion: s.GetConclusion(),
			})
		}
		out = append(out, job)
	}
	return out, nil
}

// JobLogs fetches the log content of a job. The API answers with a signed
// blob-storage URL that needs no further authentication.
func (g *GitHub) JobLogs(ctx context.Context, owner, repo string, jobID int64) (string, error) {
	logsURL, _, err := g.client.Actions.GetWorkflowJobLogs(ctx, owner, repo, jobID, 2)
	if err != nil {
		return "", fmt.Errorf("resolving logs URL for job %d: %w", jobID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logsURL.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := (&http.Client{Timeout: 30 * time.Second}).Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading logs for job %d: %w", jobID, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading logs for job %d: HTTP %d", jobID, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading logs for job %d: %w", jobID, err)
	}
	return string(data), nil
}

// ListSSHKeys returns the public keys registered on the user's account.
func (g *GitHub) ListSSHKeys(ctx context.Context) ([]SSHKey, error) {
	keys, _, err := g.client.Users.ListKeys(ctx, "", nil)
	if err != nil {
		return nil, fmt.Errorf("listing GitHub SSH keys: %w", err)
	}
	out := make([]SSHKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, SSHKey{Title: k.GetTitle(), Key: k.GetKey()})
	}
	return out, nil
}
