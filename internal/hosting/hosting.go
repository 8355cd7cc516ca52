// Package hosting wraps the GitHub and GitLab APIs behind the narrow
// surface maestro needs: authenticate, create a repository, list workflow
// runs and jobs, fetch job logs, and list the user's SSH keys.
package hosting

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Visibility of a created repository.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityInternal Visibility = "internal" // GitLab only
	VisibilityPrivate  Visibility = "private"
)

// Repo describes a repository created or found on a hosting provider.
type Repo struct {
	Name    string
	SSHURL  string
	HTMLURL string
	Existed bool // true when the repo already existed and was reused
}

// WorkflowRun is a single CI workflow run.
type WorkflowRun struct {
	ID         int64
	Name       string
	Status     string // queued | in_progress | completed
	Conclusion string // success | failure | cancelled | ... ("" until completed)
	HeadBranch string
	HeadSHA    string
	HTMLURL    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Job is a single job within a workflow run.
type Job struct {
	ID          int64
	Name        string
	Status      string
	Conclusion  string
	HTMLURL     string
	StartedAt   time.Time
	CompletedAt time.Time
	Steps       []Step
}

// Step is a single step within a job.
type Step struct {
	Name       string
	Status     string
	Conclusion string
}

// SSHKey is a public key registered on a hosting account.
type SSHKey struct {
	Title string
	Key   string
}

// remoteURLPattern matches both SSH and HTTPS remote forms:
//
//	git@github.com:owner/repo.git
//	https://gitlab.com/owner/repo
var remoteURLPattern = regexp.MustCompile(
	`(?i)(?:git@|https?://)(github|gitlab)\.com[:/]([^/]+)/(.+?)(?:\.git)?/?$`)

// ParseRemoteURL extracts provider, owner, and repository name from a
// github.com or gitlab.com remote URL. The provider is normalized to
// lowercase. Reports ok=false for anything else.
func ParseRemoteURL(url string) (provider, owner, name string, ok bool) {
	m := remoteURLPattern.FindStringSubmatch(url)
	if m == nil {
		return "", "", "", false
	}
	return strings.ToLower(m[1]), m[2], m[3], true
}

// Duration formats run/job durations the way the status tables expect:
// "42s", "3m 12s", "1h 5m".
func Duration(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%dm %ds", mins, secs%60)
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}
