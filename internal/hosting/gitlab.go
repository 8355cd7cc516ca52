package hosting

import (
	"fmt"
	"net/http"
	"strings"

	gitlab "github.com/xanzy/go-gitlab"
)

// GitLab is a thin client over the GitLab API (gitlab.com).
type GitLab struct {
	client *gitlab.Client
}

// NewGitLab creates an authenticated GitLab client from a personal access
// token.
func NewGitLab(token string) (*GitLab, error) {
	client, err := gitlab.NewClient(token)
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client: %w", err)
	}
	return &GitLab{client: client}, nil
}

// Login verifies the token and returns the authenticated user's username.
func (g *GitLab) Login() (string, error) {
	user, _, err := g.client.Users.CurrentUser()
	if err != nil {
		return "", fmt.Errorf("authenticating with GitLab: %w", err)
	}
	return user.Username, nil
}

// CreateRepo creates a project under the authenticated user. When the
// name is already taken, the existing project is found and returned with
// Existed set.
func (g *GitLab) CreateRepo(name, description string, visibility Visibility) (*Repo, error) {
	vis := gitlab.PublicVisibility
	switch visibility {
	case VisibilityInternal:
		vis = gitlab.InternalVisibility
	case VisibilityPrivate:
		vis = gitlab.PrivateVisibility
	}

	project, _, err := g.client.Projects.CreateProject(&gitlab.CreateProjectOptions{
		Name:                 gitlab.Ptr(name),
		Description:          gitlab.Ptr(description),
		Visibility:           gitlab.Ptr(vis),
		InitializeWithReadme: gitlab.Ptr(false),
	})
	if err == nil {
		return &Repo{Name: project.Name, SSHURL: project.SSHURLToRepo, HTMLURL: project.WebURL}, nil
	}

	if !strings.Contains(err.Error(), "has already been taken") {
		return nil, fmt.Errorf("creating GitLab project: %w", err)
	}

	existing, findErr := g.findOwnedProject(name)
	if findErr != nil {
		return nil, fmt.Errorf("project %q exists but could not be found: %w", name, findErr)
	}
	return &Repo{Name: existing.Name, SSHURL: existing.SSHURLToRepo, HTMLURL: existing.WebURL, Existed: true}, nil
}

// RepoExists checks whether owner/name exists and is accessible.
func (g *GitLab) RepoExists(owner, name string) (bool, error) {
	_, resp, err := g.client.Projects.GetProject(owner+"/"+name, nil)
	if err == nil {
		return true, nil
	}
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("checking project %s/%s: %w", owner, name, err)
}

// ListSSHKeys returns the public keys registered on the user's account.
func (g *GitLab) ListSSHKeys() ([]SSHKey, error) {
	keys, _, err := g.client.Users.ListSSHKeys(&gitlab.ListSSHKeysOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing GitLab SSH keys: %w", err)
	}
	out := make([]SSHKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, SSHKey{Title: k.Title, Key: k.Key})
	}
	return out, nil
}

// findOwnedProject locates an owned project by exact name.
func (g *GitLab) findOwnedProject(name string) (*gitlab.Project, error) {
	projects, _, err := g.client.Projects.ListProjects(&gitlab.ListProjectsOptions{
		Search: gitlab.Ptr(name),
		Owned:  gitlab.Ptr(true),
	})
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no owned project named %q", name)
}
