package actions

import (
	"strings"

	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/git"
	"github.com/gorewood/maestro/internal/state"
)

// InitialCommit creates the first commit and settles the default branch.
type InitialCommit struct {
	*Deps
}

// NewInitialCommit creates the action.
func NewInitialCommit(deps *Deps) *InitialCommit {
	return &InitialCommit{Deps: deps}
}

// Meta implements action.Action.
func (a *InitialCommit) Meta() action.Meta {
	return action.Meta{
		Name:        "Create Initial Commit",
		Description: "Make the first commit and set default branch",
		Category:    action.CategorySetup,
	}
}

// IsApplicable offers the action when the repo exists but has no commits.
func (a *InitialCommit) IsApplicable(st *state.RepoState) bool {
	return st.IsGitRepo && !st.HasCommits
}

// Execute stages a chosen file set, commits, renames the branch if asked,
// and optionally pushes when a remote is configured.
func (a *InitialCommit) Execute(st *state.RepoState) bool {
	a.step("Creating initial commit...")

	untracked, err := git.UntrackedFiles(st.Path)
	if err != nil {
		untracked = nil
	}
	a.Printer.Print("Found %d untracked file(s)\n", len(untracked))
	for i, f := range untracked {
		if i == 10 {
			a.note("  ... and %d more", len(untracked)-10)
			break
		}
		a.note("  - %s", f)
	}

	toAdd, allowEmpty, err := a.chooseFiles(untracked)
	if err != nil {
		a.warn("Cancelled")
		return false
	}

	if len(toAdd) > 0 {
		if err := git.Add(st.Path, toAdd...); err != nil {
			a.fail("Error staging files: %v", err)
			return false
		}
		a.ok("Staged %d file(s)", len(toAdd))
	}

	message, err := a.Prompt.Input("Commit message", "Initial commit")
	if err != nil {
		a.warn("Cancelled")
		return false
	}

	a.Printer.Println("Select default branch name:")
	branch, err := chooseBranchName(a.Deps)
	if err != nil {
		a.warn("Cancelled")
		return false
	}

	if err := git.Commit(st.Path, message, allowEmpty); err != nil {
		a.fail("Error creating commit: %v", err)
		return false
	}
	a.ok("Commit created: %s", message)

	if current, branchErr := git.CurrentBranch(st.Path); branchErr == nil && current != branch {
		if err := git.RenameBranch(st.Path, branch); err != nil {
			a.warn("Could not rename branch: %v", err)
		} else {
			a.ok("Branch renamed to '%s'", branch)
		}
	}

	if st.HasRemote {
		a.offerPush(st, branch)
	}

	return true
}

// chooseFiles asks what the initial commit should include.
func (a *InitialCommit) chooseFiles(untracked []string) (files []string, allowEmpty bool, err error) {
	options := []string{
		"All existing files",
		"Only README and .gitignore (if they exist)",
		"Create an empty commit",
	}
	a.Printer.Println("What should be included in the initial commit?")
	idx, err := a.Prompt.Choose("Choice", options, 0)
	if err != nil {
		return nil, false, err
	}

	switch idx {
	case 1:
		for _, f := range untracked {
			lower := strings.ToLower(f)
			if strings.HasPrefix(lower, "readme") || f == ".gitignore" {
				files = append(files, f)
			}
		}
		return files, len(files) == 0, nil
	case 2:
		return nil, true, nil
	default:
		return untracked, len(untracked) == 0, nil
	}
}

// offerPush asks whether to push the fresh branch to the remote.
func (a *InitialCommit) offerPush(st *state.RepoState, branch string) {
	push, err := a.Prompt.Confirm("Push to remote ("+st.RemoteURL+")?", true)
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
