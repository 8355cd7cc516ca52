// Package git provides Git operations via exec for the maestro CLI.
//
// All operations take the repository directory explicitly because maestro
// inspects a user-supplied path that need not be the working directory.
// Commands shell out to the git executable, capturing stdout/stderr and
// translating failures to *output.ExitError values.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/gorewood/maestro/internal/output"
)

// lsRemoteTimeout bounds the network probe in RemoteRepoReachable.
// ls-remote against a missing repo can hang on credential prompts.
const lsRemoteTimeout = 5 * time.Second

// Run executes a git command in dir with the given arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure.
func Run(dir string, args ...string) (string, error) {
	return RunContext(context.Background(), dir, args...)
}

// RunContext executes a git command in dir with the given context and arguments.
func RunContext(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo checks if dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := Run(dir, "rev-parse", "--git-dir")
	return err == nil
}

// HasCommits checks if the repository in dir has at least one commit.
// Returns false for an empty repository (unborn HEAD).
func HasCommits(dir string) bool {
	_, err := Run(dir, "rev-parse", "--verify", "HEAD")
	return err == nil
}

// CurrentBranch returns the name of the current branch in dir.
// Returns an error if not in a git repository or HEAD is detached.
func CurrentBranch(dir string) (string, error) {
	branch, err := Run(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	return branch, nil
}

// Init initializes a new repository in dir with the given initial branch name.
func Init(dir, branch string) error {
	_, err := Run(dir, "init", "--initial-branch", branch)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to initialize repository", err)
	}
	return nil
}

// Add stages the given paths. An empty list is a no-op.
func Add(dir string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := Run(dir, args...)
	return err
}

// Commit creates a commit with the given message.
// If allowEmpty is true, the commit is created even with nothing staged.
func Commit(dir, message string, allowEmpty bool) error {
	args := []string{"commit", "-m", message}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}
	_, err := Run(dir, args...)
	return err
}

// RenameBranch renames the current branch to name (force, like `git branch -M`).
func RenameBranch(dir, name string) error {
	_, err := Run(dir, "branch", "-M", name)
	return err
}

// UntrackedFiles lists files not tracked by git, respecting ignore rules.
// Paths are relative to the repository root, in git's listing order.
func UntrackedFiles(dir string) ([]string, error) {
	out, err := Run(dir, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// ModifiedFiles lists tracked files with unstaged modifications.
func ModifiedFiles(dir string) ([]string, error) {
	out, err := Run(dir, "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// IsClean reports whether the working tree has no staged or unstaged changes
// and no untracked files.
func IsClean(dir string) (bool, error) {
	out, err := Run(dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// AddRemote registers a new remote with the given name and URL.
func AddRemote(dir, name, url string) error {
	_, err := Run(dir, "remote", "add", name, url)
	return err
}

// RemoteURL returns the fetch URL of the first configured remote.
// Returns ("", false) when no remote is configured.
func RemoteURL(dir string) (string, bool) {
	out, err := Run(dir, "remote")
	if err != nil || out == "" {
		return "", false
	}
	name := splitLines(out)[0]
	url, err := Run(dir, "remote", "get-url", name)
	if err != nil || url == "" {
		return "", false
	}
	return url, true
}

// Push pushes branch to remote with upstream tracking (-u).
func Push(dir, remote, branch string) error {
	_, err := Run(dir, "push", "-u", remote, branch+":"+branch)
	return err
}

// RemoteRepoReachable probes whether the configured remote repository
// exists and is accessible, via `git ls-remote --heads`. The probe is
// bounded by a short timeout and credential prompts are disabled so it
// never blocks the menu loop.
func RemoteRepoReachable(dir, remote string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), lsRemoteTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-remote", "--heads", remote)
	cmd.Dir = dir
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0")
	return cmd.Run() == nil
}

// splitLines splits trimmed command output into lines, dropping empties.
// Returns an empty (non-nil) slice for empty output.
func splitLines(out string) []string {
	lines := []string{}
	for line := range strings.SplitSeq(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
