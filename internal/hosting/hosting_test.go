package hosting

import (
	"strings"
	"testing"
	"time"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		provider string
		owner    string
		repo     string
		ok       bool
	}{
		{"github ssh", "git@github.com:alice/widgets.git", "github", "alice", "widgets", true},
		{"github https", "https://github.com/alice/widgets", "github", "alice", "widgets", true},
		{"github https .git", "https://github.com/alice/widgets.git", "github", "alice", "widgets", true},
		{"github trailing slash", "https://github.com/alice/widgets/", "github", "alice", "widgets", true},
		{"gitlab ssh", "git@gitlab.com:team/app.git", "gitlab", "team", "app", true},
		{"gitlab https", "https://gitlab.com/team/app", "gitlab", "team", "app", true},
		{"mixed case host", "https://GitHub.com/alice/widgets.git", "github", "alice", "widgets", true},
		{"dotted repo name", "git@github.com:alice/my.project.git", "github", "alice", "my.project", true},
		{"other host", "https://codeberg.org/alice/widgets.git", "", "", "", false},
		{"local path", "/srv/git/widgets.git", "", "", "", false},
		{"empty", "", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, owner, repo, ok := ParseRemoteURL(tt.url)
			if ok != tt.ok {
				t.Fatalf("ParseRemoteURL(%q) ok = %v, want %v", tt.url, ok, tt.ok)
			}
			if !ok {
				return
			}
			if provider != tt.provider || owner != tt.owner || repo != tt.repo {
				t.Errorf("ParseRemoteURL(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.url, provider, owner, repo, tt.provider, tt.owner, tt.repo)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m 0s"},
		{3*time.Minute + 12*time.Second, "3m 12s"},
		{59*time.Minute + 59*time.Second, "59m 59s"},
		{65 * time.Minute, "1h 5m"},
		{2*time.Hour + 30*time.Minute, "2h 30m"},
	}
	for _, tt := range tests {
		if got := Duration(tt.d); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestJobLogFile(t *testing.T) {
	tests := []struct {
		id   int64
		name string
		want string
	}{
		{7, "build", "job-7-build.log"},
		{12, "test (ubuntu-latest)", "job-12-test--ubuntu-latest.log"},
		{3, "lint / vet", "job-3-lint---vet.log"},
		{9, "v1.2", "job-9-v1.2.log"},
	}
	for _, tt := range tests {
		if got := JobLogFile(tt.id, tt.name); got != tt.want {
			t.Errorf("JobLogFile(%d, %q) = %q, want %q", tt.id, tt.name, got, tt.want)
		}
	}
}

func TestTraceSummary(t *testing.T) {
	jobs := []TraceJob{
		{ID: 7, Name: "build", URL: "https://github.com/alice/widgets/actions/runs/1/job/7"},
		{ID: 8, Name: "test", URL: "https://github.com/alice/widgets/actions/runs/1/job/8"},
	}

	full := TraceSummary(1, "main", "https://github.com/alice/widgets/actions/runs/1", jobs)
	for _, want := range []string{
		"# CI traces for run 1",
		"Branch: main",
		"Run: https://github.com/alice/widgets/actions/runs/1",
		"- build (job 7): https://github.com/alice/widgets/actions/runs/1/job/7",
		"- test (job 8): https://github.com/alice/widgets/actions/runs/1/job/8",
	} {
		if !strings.Contains(full, want) {
			t.Errorf("summary missing %q:\n%s", want, full)
		}
	}

	bare := TraceSummary(1, "", "", jobs)
	if strings.Contains(bare, "Branch:") || strings.Contains(bare, "Run:") {
		t.Errorf("summary without branch/URL still has their lines:\n%s", bare)
	}
}
