// Package state captures a point-in-time snapshot of a git repository's
// setup state, plus a keyed fact cache for results of expensive external
// lookups.
//
// The two halves have deliberately different lifecycles: structural fields
// are cheap local probes recomputed wholesale on every Refresh, while facts
// survive refreshes and are only written or invalidated explicitly by the
// action that owns their namespace.
package state

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/maestro/internal/git"
)

// RemoteType classifies the hosting provider behind a remote URL.
type RemoteType string

const (
	RemoteGitHub  RemoteType = "github"
	RemoteGitLab  RemoteType = "gitlab"
	RemoteUnknown RemoteType = "unknown"
	RemoteNone    RemoteType = "none"
)

// readmeNames are the filenames that count as a README, in probe order.
var readmeNames = []string{"README.md", "README.rst", "README.txt", "README"}

// RepoState is a snapshot of repository metadata for the path under
// inspection. Structural fields are re-derived by Refresh; the facts map
// is never touched by Refresh.
type RepoState struct {
	// Path is the absolute location under inspection. Immutable after New.
	Path string

	IsGitRepo    bool
	HasCommits   bool
	BranchName   string // "" when no commits or detached detection failed
	HasReadme    bool
	HasGitignore bool
	HasRemote    bool
	RemoteURL    string

	// Working-tree status. Only meaningful when HasCommits is true;
	// defaults to clean/empty otherwise.
	IsClean        bool
	UntrackedFiles []string
	ModifiedFiles  []string

	facts map[string]FactValue
}

// New creates a RepoState for path and performs the initial Refresh.
// A relative path is resolved against the working directory. New never
// fails: a missing or non-repository path is a valid, fully-populated state.
func New(path string) *RepoState {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	st := &RepoState{
		Path:  abs,
		facts: make(map[string]FactValue),
	}
	st.Refresh()
	return st
}

// Refresh re-derives every structural field from the filesystem and
// repository contents. It never fails: any probe that cannot produce a
// value degrades that one field to its safe default. Facts are preserved.
func (st *RepoState) Refresh() {
	st.IsGitRepo = git.IsRepo(st.Path)
	st.HasCommits = false
	st.BranchName = ""
	st.HasReadme = false
	st.HasGitignore = false
	st.HasRemote = false
	st.RemoteURL = ""
	st.IsClean = true
	st.UntrackedFiles = []string{}
	st.ModifiedFiles = []string{}

	if !st.IsGitRepo {
		return
	}

	st.HasCommits = git.HasCommits(st.Path)
	if branch, ok := probeBranch(st.Path, st.HasCommits); ok {
		st.BranchName = branch
	}

	st.HasReadme = probeReadme(st.Path)
	st.HasGitignore = fileExists(filepath.Join(st.Path, ".gitignore"))

	if url, ok := git.RemoteURL(st.Path); ok {
		st.HasRemote = true
		st.RemoteURL = url
	}

	// Status is only evaluated against a commit history; with an unborn
	// HEAD the clean/empty defaults stand.
	if st.HasCommits {
		st.refreshWorktreeStatus()
	}
}

// refreshWorktreeStatus populates the working-tree fields, degrading each
// independently on probe failure.
func (st *RepoState) refreshWorktreeStatus() {
	if clean, err := git.IsClean(st.Path); err == nil {
		st.IsClean = clean
	}
	if untracked, err := git.UntrackedFiles(st.Path); err == nil {
		st.UntrackedFiles = untracked
	}
	if modified, err := git.ModifiedFiles(st.Path); err == nil {
		st.ModifiedFiles = modified
	}
}

// probeBranch resolves the active branch name. Reports ok=false when the
// history is empty or HEAD cannot be resolved.
func probeBranch(dir string, hasCommits bool) (string, bool) {
	if !hasCommits {
		return "", false
	}
	branch, err := git.CurrentBranch(dir)
	if err != nil || branch == "" || branch == "HEAD" {
		return "", false
	}
	return branch, true
}

// probeReadme checks for any conventional README filename.
func probeReadme(dir string) bool {
	for _, name := range readmeNames {
		if fileExists(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetRemoteType classifies the remote URL by case-insensitive substring
// match: "github.com" means github, any "gitlab" means gitlab, a present
// but unmatched URL is unknown, and no remote is none.
func (st *RepoState) GetRemoteType() RemoteType {
	if !st.HasRemote || st.RemoteURL == "" {
		return RemoteNone
	}
	url := strings.ToLower(st.RemoteURL)
	switch {
	case strings.Contains(url, "github.com"):
		return RemoteGitHub
	case strings.Contains(url, "gitlab"):
		return RemoteGitLab
	default:
		return RemoteUnknown
	}
}

// HasFact reports whether a fact has been gathered under key.
func (st *RepoState) HasFact(key string) bool {
	_, ok := st.facts[key]
	return ok
}

// Fact returns the raw fact value and whether it exists.
func (st *RepoState) Fact(key string) (FactValue, bool) {
	v, ok := st.facts[key]
	return v, ok
}

// BoolFact returns the bool fact under key, or def when absent.
func (st *RepoState) BoolFact(key string, def bool) bool {
	if v, ok := st.facts[key]; ok {
		return v.Bool()
	}
	return def
}

// IntFact returns the int fact under key, or def when absent.
func (st *RepoState) IntFact(key string, def int64) int64 {
	if v, ok := st.facts[key]; ok {
		return v.Int()
	}
	return def
}

// StringFact returns the string fact under key, or def when absent.
func (st *RepoState) StringFact(key string, def string) string {
	if v, ok := st.facts[key]; ok {
		return v.String()
	}
	return def
}

// JobsFact returns the job-list fact under key, or nil when absent.
func (st *RepoState) JobsFact(key string) []JobRef {
	if v, ok := st.facts[key]; ok {
		return v.Jobs()
	}
	return nil
}

// SetFacts merges the given facts into the cache, overwriting existing keys.
func (st *RepoState) SetFacts(facts map[string]FactValue) {
	if st.facts == nil {
		st.facts = make(map[string]FactValue, len(facts))
	}
	for k, v := range facts {
		st.facts[k] = v
	}
}

// ClearFact removes a single fact. Removing an absent key is a no-op.
func (st *RepoState) ClearFact(key string) {
	delete(st.facts, key)
}

// ClearFactsMatching removes exactly the facts whose key starts with
// prefix, nothing else. This is the namespace invalidation primitive:
// refresh-style actions clear their whole namespace, then repopulate it
// from scratch, so a stale fact never coexists with a refreshed one.
func (st *RepoState) ClearFactsMatching(prefix string) {
	for k := range st.facts {
		if strings.HasPrefix(k, prefix) {
			delete(st.facts, k)
		}
	}
}

// FactCount returns the number of cached facts.
func (st *RepoState) FactCount() int {
	return len(st.facts)
}
