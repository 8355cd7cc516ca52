package actions

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/git"
	"github.com/gorewood/maestro/internal/output"
	"github.com/gorewood/maestro/internal/prompt"
	"github.com/gorewood/maestro/internal/state"
	"github.com/gorewood/maestro/internal/tokens"
)

// testDeps builds Deps with scripted prompt input and captured output.
func testDeps(t *testing.T, input string) (*Deps, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	deps := &Deps{
		Printer: output.NewPrinter(&out, false, false),
		Prompt:  prompt.NewFrom(strings.NewReader(input), &out),
		Tokens:  tokens.NewStoreAt(t.TempDir()),
	}
	return deps, &out
}

// initRepo creates a repo with commit identity configured.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := git.Init(dir, "main"); err != nil {
		t.Fatalf("git init: %v", err)
	}
	if _, err := git.Run(dir, "config", "user.email", "test@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := git.Run(dir, "config", "user.name", "Test"); err != nil {
		t.Fatal(err)
	}
	return dir
}

func names(applicable []action.Action) []string {
	out := make([]string, 0, len(applicable))
	for _, a := range applicable {
		out = append(out, a.Meta().Name)
	}
	return out
}

func TestRegistry_AllActionsRegistered(t *testing.T) {
	deps, _ := testDeps(t, "")
	r := NewRegistry(deps)
	if r.Len() != 11 {
		t.Errorf("registry has %d actions, want 11", r.Len())
	}
}

func TestApplicable_PlainDirectory(t *testing.T) {
	deps, _ := testDeps(t, "")
	r := NewRegistry(deps)

	st := state.New(t.TempDir())
	got := names(r.Applicable(st))

	want := []string{"Initialize Git Repository"}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("applicable = %v, want %v", got, want)
	}
}

func TestApplicable_EmptyRepo(t *testing.T) {
	deps, _ := testDeps(t, "")
	r := NewRegistry(deps)

	st := state.New(initRepo(t))
	got := names(r.Applicable(st))

	want := []string{
		"Create Initial Commit",
		"Add README.md",
		"Add .gitignore",
		"Setup Remote Repository",
	}
	if len(got) != len(want) {
		t.Fatalf("applicable = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("applicable[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApplicable_CIActions(t *testing.T) {
	deps, _ := testDeps(t, "")

	st := &state.RepoState{
		IsGitRepo:  true,
		HasCommits: true,
		HasRemote:  true,
		RemoteURL:  "git@github.com:alice/widgets.git",
	}

	fetch := NewFetchActionsStatus(deps)
	refresh := NewRefreshActionsStatus(deps)
	failedJobs := NewViewFailedJobs(deps)
	traces := NewDownloadJobTraces(deps)
	history := NewRunHistory(deps)

	// Before the first check: fetch only.
	if !fetch.IsApplicable(st) {
		t.Error("fetch not applicable before the first check")
	}
	if refresh.IsApplicable(st) || failedJobs.IsApplicable(st) || traces.IsApplicable(st) || history.IsApplicable(st) {
		t.Error("post-check actions applicable before the first check")
	}

	// After a successful check with failures: fetch flips to refresh,
	// failure actions appear.
	st.SetFacts(map[string]state.FactValue{
		state.FactActionsChecked:     state.BoolValue(true),
		state.FactActionsHasRuns:     state.BoolValue(true),
		state.FactActionsRunID:       state.IntValue(100),
		state.FactActionsFailedCount: state.IntValue(2),
	})

	if fetch.IsApplicable(st) {
		t.Error("fetch still applicable after the check")
	}
	if !refresh.IsApplicable(st) {
		t.Error("refresh not applicable after the check")
	}
	if !failedJobs.IsApplicable(st) || !traces.IsApplicable(st) {
		t.Error("failure actions not applicable with failed jobs")
	}
	if !history.IsApplicable(st) {
		t.Error("history not applicable with runs present")
	}

	// Clearing the namespace reverts to the unchecked menu.
	st.ClearFactsMatching(state.FactActionsPrefix)
	if !fetch.IsApplicable(st) || refresh.IsApplicable(st) {
		t.Error("clearing the fact namespace did not revert applicability")
	}
}

func TestApplicable_CINotOfferedForGitLab(t *testing.T) {
	deps, _ := testDeps(t, "")
	st := &state.RepoState{
		IsGitRepo: true,
		HasRemote: true,
		RemoteURL: "git@gitlab.com:team/app.git",
	}

	if NewFetchActionsStatus(deps).IsApplicable(st) {
		t.Error("GitHub Actions check offered for a GitLab remote")
	}
}

func TestCreateRemoteRepo_NotApplicableWithoutParseableRemote(t *testing.T) {
	deps, _ := testDeps(t, "")
	a := NewCreateRemoteRepo(deps)

	if a.IsApplicable(&state.RepoState{IsGitRepo: true}) {
		t.Error("applicable without a remote")
	}
	st := &state.RepoState{
		IsGitRepo: true,
		HasRemote: true,
		RemoteURL: "https://codeberg.org/alice/widgets.git",
	}
	if a.IsApplicable(st) {
		t.Error("applicable for a non-GitHub/GitLab remote")
	}
}

func TestInitRepo_Execute(t *testing.T) {
	deps, _ := testDeps(t, "1\n")
	dir := t.TempDir()
	st := state.New(dir)

	if !NewInitRepo(deps).Execute(st) {
		t.Fatal("Execute reported failure")
	}

	st.Refresh()
	if !st.IsGitRepo {
		t.Error("directory is not a repo after init")
	}
}

func TestAddReadme_Execute(t *testing.T) {
	deps, _ := testDeps(t, "A small test project\n")
	dir := initRepo(t)
	st := state.New(dir)

	a := NewAddReadme(deps)
	if !a.IsApplicable(st) {
		t.Fatal("not applicable in a repo without README")
	}
	if !a.Execute(st) {
		t.Fatal("Execute reported failure")
	}

	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "# "+filepath.Base(dir)) {
		t.Errorf("README missing title: %q", content)
	}
	if !strings.Contains(content, "A small test project") {
		t.Errorf("README missing description: %q", content)
	}

	st.Refresh()
	if !st.HasReadme {
		t.Error("HasReadme = false after creating README")
	}
	if a.IsApplicable(st) {
		t.Error("still applicable after creating README")
	}
}

func TestAddGitignore_Execute(t *testing.T) {
	deps, _ := testDeps(t, "1\n") // "Go" template
	dir := initRepo(t)
	st := state.New(dir)

	a := NewAddGitignore(deps)
	if !a.Execute(st) {
		t.Fatal("Execute reported failure")
	}

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "go.work") {
		t.Errorf(".gitignore does not look like the Go template: %q", string(data))
	}

	st.Refresh()
	if !st.HasGitignore {
		t.Error("HasGitignore = false after creating .gitignore")
	}
}

func TestGitignoreCatalog_HasAllTemplates(t *testing.T) {
	catalog, err := loadGitignoreCatalog()
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range templateOrder {
		tmpl, ok := catalog.Templates[key]
		if !ok {
			t.Errorf("template %q missing from catalog", key)
			continue
		}
		if tmpl.Label == "" || len(tmpl.Patterns) == 0 {
			t.Errorf("template %q is incomplete", key)
		}
	}
}

func TestInitialCommit_Execute(t *testing.T) {
	// Choice 1: all files; empty commit message line takes the default;
	// choice 1 again: branch main.
	deps, _ := testDeps(t, "1\n\n1\n")
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	st := state.New(dir)

	a := NewInitialCommit(deps)
	if !a.IsApplicable(st) {
		t.Fatal("not applicable in a repo without commits")
	}
	if !a.Execute(st) {
		t.Fatal("Execute reported failure")
	}

	st.Refresh()
	if !st.HasCommits {
		t.Error("HasCommits = false after the initial commit")
	}
	if st.BranchName != "main" {
		t.Errorf("BranchName = %q, want main", st.BranchName)
	}
	if a.IsApplicable(st) {
		t.Error("still applicable after the initial commit")
	}
}

func TestInitialCommit_EmptyCommit(t *testing.T) {
	// Choice 3: empty commit.
	deps, _ := testDeps(t, "3\n\n1\n")
	dir := initRepo(t)
	st := state.New(dir)

	if !NewInitialCommit(deps).Execute(st) {
		t.Fatal("Execute reported failure")
	}

	st.Refresh()
	if !st.HasCommits {
		t.Error("HasCommits = false after an empty commit")
	}
}

func TestSetupRemote_ManualURL(t *testing.T) {
	// Choice 3: manual entry, then the URL.
	deps, _ := testDeps(t, "3\ngit@github.com:alice/widgets.git\n")
	dir := initRepo(t)
	st := state.New(dir)

	a := NewSetupRemote(deps)
	if !a.IsApplicable(st) {
		t.Fatal("not applicable in a repo without a remote")
	}
	if !a.Execute(st) {
		t.Fatal("Execute reported failure")
	}

	st.Refresh()
	if !st.HasRemote || st.RemoteURL != "git@github.com:alice/widgets.git" {
		t.Errorf("remote = %v %q", st.HasRemote, st.RemoteURL)
	}
	if a.IsApplicable(st) {
		t.Error("still applicable after adding a remote")
	}
}

func TestViewFailedJobs_Execute(t *testing.T) {
	deps, out := testDeps(t, "")
	st := &state.RepoState{}
	st.SetFacts(map[string]state.FactValue{
		state.FactActionsChecked:     state.BoolValue(true),
		state.FactActionsFailedCount: state.IntValue(1),
		state.FactActionsURL:         state.StringValue("https://github.com/alice/widgets/actions/runs/1"),
		state.FactActionsFailedJobs: state.JobsValue([]state.JobRef{
			{ID: 7, Name: "build", URL: "https://github.com/alice/widgets/actions/runs/1/job/7"},
		}),
	})

	if !NewViewFailedJobs(deps).Execute(st) {
		t.Fatal("Execute reported failure")
	}
	rendered := out.String()
	if !strings.Contains(rendered, "build") {
		t.Errorf("output missing job name: %q", rendered)
	}
	if !strings.Contains(rendered, "runs/1/job/7") {
		t.Errorf("output missing job URL: %q", rendered)
	}
}
