package actions

import (
	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/git"
	"github.com/gorewood/maestro/internal/state"
)

// InitRepo initializes a git repository in the inspected directory.
type InitRepo struct {
	*Deps
}

// NewInitRepo creates the action.
func NewInitRepo(deps *Deps) *InitRepo {
	return &InitRepo{Deps: deps}
}

// Meta implements action.Action.
func (a *InitRepo) Meta() action.Meta {
	return action.Meta{
		Name:        "Initialize Git Repository",
		Description: "Run 'git init' to create a new git repository",
		Category:    action.CategorySetup,
	}
}

// IsApplicable offers the action only when the directory is not a repo.
func (a *InitRepo) IsApplicable(st *state.RepoState) bool {
	return !st.IsGitRepo
}

// Execute initializes the repository with a user-chosen initial branch.
func (a *InitRepo) Execute(st *state.RepoState) bool {
	a.step("Initializing git repository in %s...", st.Path)

	branch, err := chooseBranchName(a.Deps)
	if err != nil {
		a.warn("Cancelled")
		return false
	}

	if err := git.Init(st.Path, branch); err != nil {
		a.fail("Error initializing repository: %v", err)
		return false
	}

	a.ok("Git repository initialized on branch '%s'", branch)
	return true
}

// branchOptions are the preset initial branch names, plus a custom slot.
var branchOptions = []string{"main", "master", "develop", "custom"}

// chooseBranchName prompts for the initial/default branch name.
func chooseBranchName(d *Deps) (string, error) {
	d.Printer.Println("Select branch name:")
	idx, err := d.Prompt.Choose("Choice", branchOptions, 0)
	if err != nil {
		return "", err
	}
	if branchOptions[idx] != "custom" {
		return branchOptions[idx], nil
	}
	name, err := d.Prompt.Input("Branch name", "main")
	if err != nil {
		return "", err
	}
	return name, nil
}
