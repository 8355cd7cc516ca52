package state

// Fact keys are flat strings grouped into namespaces by shared prefix.
// A namespace is invalidated as a whole via ClearFactsMatching; actions
// that own a namespace must never clear individual keys during a refresh.
//
// GitHub Actions facts live under the "github_actions_" prefix.
const (
	FactActionsChecked     = "github_actions_checked"
	FactActionsHasRuns     = "github_actions_has_runs"
	FactActionsRunID       = "github_actions_latest_run_id"
	FactActionsStatus      = "github_actions_latest_status"
	FactActionsConclusion  = "github_actions_latest_conclusion"
	FactActionsURL         = "github_actions_latest_url"
	FactActionsJobCount    = "github_actions_latest_job_count"
	FactActionsFailedCount = "github_actions_latest_failed_count"
	FactActionsFailedJobs  = "github_actions_latest_failed_jobs"
	FactTracesDownloaded   = "github_actions_traces_downloaded"
	FactTracesPath         = "github_actions_traces_path"
	FactTracesRunID        = "github_actions_traces_run_id"

	// FactActionsPrefix owns every key above except the traces group,
	// which shares the namespace deliberately: a status refresh also
	// invalidates stale trace locations.
	FactActionsPrefix = "github_actions_"
)

// factKind discriminates the value stored in a FactValue.
type factKind int

const (
	kindBool factKind = iota
	kindInt
	kindString
	kindJobs
)

// JobRef identifies a CI job referenced by a fact.
type JobRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FactValue is a tagged union over the value kinds the fact cache holds:
// bool, int64, string, or a list of job references. The zero value is a
// false bool fact.
type FactValue struct {
	kind factKind
	b    bool
	i    int64
	s    string
	jobs []JobRef
}

// BoolValue wraps a bool as a FactValue.
func BoolValue(b bool) FactValue { return FactValue{kind: kindBool, b: b} }

// IntValue wraps an int64 as a FactValue.
func IntValue(i int64) FactValue { return FactValue{kind: kindInt, i: i} }

// StringValue wraps a string as a FactValue.
func StringValue(s string) FactValue { return FactValue{kind: kindString, s: s} }

// JobsValue wraps a job list as a FactValue.
func JobsValue(jobs []JobRef) FactValue { return FactValue{kind: kindJobs, jobs: jobs} }

// Bool returns the bool payload, or false if the value is another kind.
func (v FactValue) Bool() bool {
	if v.kind != kindBool {
		return false
	}
	return v.b
}

// Int returns the int64 payload, or 0 if the value is another kind.
func (v FactValue) Int() int64 {
	if v.kind != kindInt {
		return 0
	}
	return v.i
}

// String returns the string payload, or "" if the value is another kind.
func (v FactValue) String() string {
	if v.kind != kindString {
		return ""
	}
	return v.s
}

// Jobs returns the job list payload, or nil if the value is another kind.
func (v FactValue) Jobs() []JobRef {
	if v.kind != kindJobs {
		return nil
	}
	return v.jobs
}
