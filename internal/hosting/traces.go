package hosting

import (
	"fmt"
	"strings"
	"time"
)

// TraceJob identifies a failed job listed in a trace summary.
type TraceJob struct {
	ID   int64
	Name string
	URL  string
}

// JobLogFile returns the file name a job's downloaded log is stored under
// inside a trace directory.
func JobLogFile(jobID int64, jobName string) string {
	return fmt.Sprintf("job-%d-%s.log", jobID, slugify(jobName))
}

// TraceSummary renders the README dropped next to downloaded logs so a
// trace directory is self-describing when found later. Branch and runURL
// lines are omitted when unknown.
func TraceSummary(runID int64, branch, runURL string, jobs []TraceJob) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# CI traces for run %d\n\nDownloaded: %s\n", runID, time.Now().Format(time.RFC3339))
	if branch != "" {
		fmt.Fprintf(&b, "Branch: %s\n", branch)
	}
	if runURL != "" {
		fmt.Fprintf(&b, "Run: %s\n", runURL)
	}
	b.WriteString("\nFailed jobs:\n\n")
	for _, j := range jobs {
		fmt.Fprintf(&b, "- %s (job %d): %s\n", j.Name, j.ID, j.URL)
	}
	return b.String()
}

// slugify flattens a job name into a filesystem-safe fragment.
func slugify(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, name)
	return strings.Trim(mapped, "-")
}
