package actions

import (
	"context"

	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/git"
	"github.com/gorewood/maestro/internal/hosting"
	"github.com/gorewood/maestro/internal/state"
)

// CreateRemoteRepo creates the hosted repository for an already
// configured origin that points at a repo which does not exist yet.
// That happens when a remote URL was added by hand before the repo was
// created on the provider.
type CreateRemoteRepo struct {
	*Deps
}

// NewCreateRemoteRepo creates the action.
func NewCreateRemoteRepo(deps *Deps) *CreateRemoteRepo {
	return &CreateRemoteRepo{Deps: deps}
}

// Meta implements action.Action.
func (a *CreateRemoteRepo) Meta() action.Meta {
	return action.Meta{
		Name:        "Create Remote Repository",
		Description: "Create the repository that origin points to on GitHub or GitLab",
		Category:    action.CategorySetup,
	}
}

// IsApplicable probes the configured remote with ls-remote. The probe is
// permissive: when the network is down or the check times out, the remote
// is assumed to exist and the action is not offered.
func (a *CreateRemoteRepo) IsApplicable(st *state.RepoState) bool {
	if !st.IsGitRepo || !st.HasRemote {
		return false
	}
	if _, _, _, ok := hosting.ParseRemoteURL(st.RemoteURL); !ok {
		return false
	}
	return !git.RemoteRepoReachable(st.Path, "origin")
}

// Execute creates the repository named by the origin URL.
func (a *CreateRemoteRepo) Execute(st *state.RepoState) bool {
	provider, owner, name, ok := hosting.ParseRemoteURL(st.RemoteURL)
	if !ok {
		a.fail("Remote URL %s is not a GitHub or GitLab URL", st.RemoteURL)
		return false
	}
	a.step("Creating %s/%s on %s...", owner, name, provider)

	token, err := resolveToken(a.Deps, provider)
	if err != nil || token == "" {
		a.warn("No token provided")
		return false
	}

	a.Printer.Println("Select visibility:")
	visibilities := []string{"public", "private"}
	if provider == "gitlab" {
		visibilities = []string{"public", "internal", "private"}
	}
	idx, err := a.Prompt.Choose("Choice", visibilities, 0)
	if err != nil {
		a.warn("Cancelled")
		return false
	}
	visibility := hosting.Visibility(visibilities[idx])

	var repo *hosting.Repo
	switch provider {
	case "github":
		repo, err = a.createOnGitHub(token, owner, name, visibility)
	default:
		repo, err = a.createOnGitLab(token, name, visibility)
	}
	if err != nil {
		a.fail("Error creating repository: %v", err)
		return false
	}

	if repo.Existed {
		a.ok("Repository %s already exists: %s", repo.Name, repo.HTMLURL)
	} else {
		a.ok("Repository created: %s", repo.HTMLURL)
	}

	if st.HasCommits {
		a.offerPush(st)
	}
	return true
}

func (a *CreateRemoteRepo) createOnGitHub(token, owner, name string, visibility hosting.Visibility) (*hosting.Repo, error) {
	ctx := context.Background()
	client := hosting.NewGitHub(token)

	login, err := client.Login(ctx)
	if err != nil {
		return nil, err
	}
	if login != owner {
		a.warn("Token belongs to %s but origin points at %s; creating under %s", login, owner, login)
	}
	return client.CreateRepo(ctx, name, "", visibility)
}

func (a *CreateRemoteRepo) createOnGitLab(token, name string, visibility hosting.Visibility) (*hosting.Repo, error) {
	client, err := hosting.NewGitLab(token)
	if err != nil {
		return nil, err
	}
	if _, err := client.Login(); err != nil {
		return nil, err
	}
	return client.CreateRepo(name, "", visibility)
}

// offerPush pushes the current branch to the newly created repo.
func (a *CreateRemoteRepo) offerPush(st *state.RepoState) {
	branch, err := git.CurrentBranch(st.Path)
	if err != nil {
		return
	}
	push, err := a.Prompt.Confirm("Push branch '"+branch+"' to origin?", true)
	if err != nil || !push {
		return
	}
	if err := git.Push(st.Path, "origin", branch); err != nil {
		a.fail("Push failed: %v", err)
		a.note("You can push manually later with: git push -u origin %s", branch)
		return
	}
	a.ok("Pushed to remote successfully")
}
