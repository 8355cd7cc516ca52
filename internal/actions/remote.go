package actions

import (
	"context"
	"path/filepath"

	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/describe"
	"github.com/gorewood/maestro/internal/git"
	"github.com/gorewood/maestro/internal/hosting"
	"github.com/gorewood/maestro/internal/sshkeys"
	"github.com/gorewood/maestro/internal/state"
)

// SetupRemote connects the repository to GitHub or GitLab: authenticates,
// creates the remote repository, and registers it as origin.
type SetupRemote struct {
	*Deps
}

// NewSetupRemote creates the action.
func NewSetupRemote(deps *Deps) *SetupRemote {
	return &SetupRemote{Deps: deps}
}

// Meta implements action.Action.
func (a *SetupRemote) Meta() action.Meta {
	return action.Meta{
		Name:        "Setup Remote Repository",
		Description: "Create a repository on GitHub or GitLab and add it as origin",
		Category:    action.CategorySetup,
	}
}

// IsApplicable offers the action in any repo without a remote.
func (a *SetupRemote) IsApplicable(st *state.RepoState) bool {
	return st.IsGitRepo && !st.HasRemote
}

// Execute runs the provider flow, or a manual URL entry.
func (a *SetupRemote) Execute(st *state.RepoState) bool {
	a.Printer.Println("Select hosting provider:")
	idx, err := a.Prompt.Choose("Choice", []string{"GitHub", "GitLab", "Enter remote URL manually"}, 0)
	if err != nil {
		a.warn("Cancelled")
		return false
	}

	switch idx {
	case 0:
		return a.setupGitHub(st)
	case 1:
		return a.setupGitLab(st)
	default:
		return a.setupManual(st)
	}
}

func (a *SetupRemote) setupGitHub(st *state.RepoState) bool {
	ctx := context.Background()

	token, err := resolveToken(a.Deps, "github")
	if err != nil || token == "" {
		a.warn("No token provided")
		return false
	}

	client := hosting.NewGitHub(token)
	login, err := client.Login(ctx)
	if err != nil {
		a.fail("Authentication failed: %v", err)
		return false
	}
	a.ok("Authenticated as %s", login)

	checkSSHKey(a.Deps, "github.com", func() ([]hosting.SSHKey, error) {
		return client.ListSSHKeys(ctx)
	})

	name, description, visibility, err := a.repoDetails(st, []string{"public", "private"})
	if err != nil {
		a.warn("Cancelled")
		return false
	}

	repo, err := client.CreateRepo(ctx, name, description, visibility)
	if err != nil {
		a.fail("Error creating repository: %v", err)
		return false
	}
	return a.registerRemote(st, repo)
}

func (a *SetupRemote) setupGitLab(st *state.RepoState) bool {
	token, err := resolveToken(a.Deps, "gitlab")
	if err != nil || token == "" {
		a.warn("No token provided")
		return false
	}

	client, err := hosting.NewGitLab(token)
	if err != nil {
		a.fail("Error creating GitLab client: %v", err)
		return false
	}
	login, err := client.Login()
	if err != nil {
		a.fail("Authentication failed: %v", err)
		return false
	}
	a.ok("Authenticated as %s", login)

	checkSSHKey(a.Deps, "gitlab.com", client.ListSSHKeys)

	name, description, visibility, err := a.repoDetails(st, []string{"public", "internal", "private"})
	if err != nil {
		a.warn("Cancelled")
		return false
	}

	repo, err := client.CreateRepo(name, description, visibility)
	if err != nil {
		a.fail("Error creating project: %v", err)
		return false
	}
	return a.registerRemote(st, repo)
}

func (a *SetupRemote) setupManual(st *state.RepoState) bool {
	url, err := a.Prompt.Input("Remote URL", "")
	if err != nil || url == "" {
		a.warn("No URL provided")
		return false
	}
	if err := git.AddRemote(st.Path, "origin", url); err != nil {
		a.fail("Error adding remote: %v", err)
		return false
	}
	a.ok("Remote 'origin' added: %s", url)
	a.offerPush(st)
	return true
}

// repoDetails gathers name, description, and visibility for the new repo.
func (a *SetupRemote) repoDetails(st *state.RepoState, visibilities []string) (name, description string, vis hosting.Visibility, err error) {
	name, err = a.Prompt.Input("Repository name", filepath.Base(st.Path))
	if err != nil {
		return "", "", "", err
	}

	description, err = a.chooseDescription(st)
	if err != nil {
		return "", "", "", err
	}

	a.Printer.Println("Select visibility:")
	idx, err := a.Prompt.Choose("Choice", visibilities, 0)
	if err != nil {
		return "", "", "", err
	}
	return name, description, hosting.Visibility(visibilities[idx]), nil
}

// chooseDescription offers README-derived suggestions before free entry.
func (a *SetupRemote) chooseDescription(st *state.RepoState) (string, error) {
	suggestions := describe.Suggestions(st.Path)
	if len(suggestions) == 0 {
		return a.Prompt.Input("Description (Enter to skip)", "")
	}

	options := make([]string, 0, len(suggestions)+2)
	for _, s := range suggestions {
		options = append(options, s.Label+": "+s.Text)
	}
	options = append(options, "Enter manually", "No description")

	a.Printer.Println("Select a description:")
	idx, err := a.Prompt.Choose("Choice", options, 0)
	if err != nil {
		return "", err
	}
	switch {
	case idx < len(suggestions):
		return suggestions[idx].Text, nil
	case idx == len(suggestions):
		return a.Prompt.Input("Description", "")
	default:
		return "", nil
	}
}

// registerRemote adds the created repo as origin and offers a push.
func (a *SetupRemote) registerRemote(st *state.RepoState, repo *hosting.Repo) bool {
	if repo.Existed {
		a.warn("Repository '%s' already existed, reusing it", repo.Name)
	} else {
		a.ok("Repository created: %s", repo.HTMLURL)
	}

	if err := git.AddRemote(st.Path, "origin", repo.SSHURL); err != nil {
		a.fail("Error adding remote: %v", err)
		return false
	}
	a.ok("Remote 'origin' added: %s", repo.SSHURL)

	a.offerPush(st)
	return true
}

// offerPush pushes the current branch when the repo has commits.
func (a *SetupRemote) offerPush(st *state.RepoState) {
	if !st.HasCommits {
		return
	}
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

// resolveToken fetches a stored access token for provider, or prompts for
// one and offers to save it.
func resolveToken(d *Deps, provider string) (string, error) {
	if token, ok := d.Tokens.Get(provider); ok {
		use, err := d.Prompt.Confirm("Use saved "+provider+" token?", true)
		if err != nil {
			return "", err
		}
		if use {
			return token, nil
		}
	}

	token, err := d.Prompt.Secret("Personal access token (" + provider + ")")
	if err != nil || token == "" {
		return "", err
	}

	save, err := d.Prompt.Confirm("Save token for future use?", true)
	if err == nil && save {
		if saveErr := d.Tokens.Set(provider, token); saveErr != nil {
			d.warn("Could not save token: %v", saveErr)
		} else {
			d.note("Token saved to %s", d.Tokens.Path())
		}
	}
	return token, nil
}

// checkSSHKey verifies that a local SSH key for host is registered on the
// hosting account. Failures only warn; SSH is not required for HTTPS
// remotes.
func checkSSHKey(d *Deps, host string, listKeys func() ([]hosting.SSHKey, error)) {
	keyPath, ok := sshkeys.Locate(host)
	if !ok {
		d.warn("No SSH key found for %s; pushes over SSH will not work", host)
		return
	}
	publicKey, ok := sshkeys.PublicKey(keyPath)
	if !ok {
		d.warn("SSH key %s has no readable public key", keyPath)
		return
	}

	accountKeys, err := listKeys()
	if err != nil {
		d.warn("Could not list account SSH keys: %v", err)
		return
	}
	if registered, title := sshkeys.Registered(publicKey, accountKeys); registered {
		d.ok("SSH key registered on account (%s)", title)
	} else {
		d.warn("Local SSH key %s is not registered on %s", keyPath, host)
	}
}
