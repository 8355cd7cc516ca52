// Package action defines the capability contract for maestro actions and
// the registry that decides which actions are currently offerable.
//
// An action is applicable or not purely as a function of the current
// RepoState; the registry re-evaluates applicability on every menu cycle
// and presents setup actions before info actions, preserving registration
// order inside each group.
package action

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/maestro/internal/state"
)

// Category groups actions for menu presentation. Setup actions mutate the
// repository; info actions gather or display facts.
type Category string

const (
	CategorySetup Category = "setup"
	CategoryInfo  Category = "info"
)

// Meta is the static description of an action: display name, one-line
// description, presentation category, and an optional storage subdirectory
// under <repo>/.maestro/ for actions that persist files.
type Meta struct {
	Name        string
	Description string
	Category    Category
	StorageDir  string
}

// Action is implemented by every concrete setup/info action.
//
// IsApplicable should be a cheap predicate over state fields and facts:
// it runs for every registered action on every menu refresh. An action
// that must probe externally keeps the probe strictly bounded so the
// menu never hangs. Execute performs the effect and reports
// success; it must not panic for external failures (network, auth, git),
// and must report those to the user itself before returning false.
type Action interface {
	Meta() Meta
	IsApplicable(st *state.RepoState) bool
	Execute(st *state.RepoState) bool
}

// Registry holds the ordered list of all known actions.
type Registry struct {
	actions []Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an action. Meta problems are programming errors and are
// rejected here, at construction time, never during the run loop.
func (r *Registry) Register(a Action) error {
	meta := a.Meta()
	if meta.Name == "" {
		return fmt.Errorf("action %T has no name", a)
	}
	if meta.Category != CategorySetup && meta.Category != CategoryInfo {
		return fmt.Errorf("action %q has invalid category %q", meta.Name, meta.Category)
	}
	r.actions = append(r.actions, a)
	return nil
}

// MustRegister registers all actions and panics on the first invalid one.
// Intended for the fixed startup list, where an invalid action is a bug.
func (r *Registry) MustRegister(actions ...Action) {
	for _, a := range actions {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}

// Applicable returns the actions whose predicate holds for st, partitioned
// setup-before-info. The partition is stable: both buckets keep the
// relative registration order.
func (r *Registry) Applicable(st *state.RepoState) []Action {
	var setup, info []Action
	for _, a := range r.actions {
		if !a.IsApplicable(st) {
			continue
		}
		if a.Meta().Category == CategorySetup {
			setup = append(setup, a)
		} else {
			info = append(info, a)
		}
	}
	return append(setup, info...)
}

// StoragePath resolves and creates the storage directory for an action
// that declares one. Returns ("", nil) when the action has no StorageDir.
func StoragePath(st *state.RepoState, a Action) (string, error) {
	sub := a.Meta().StorageDir
	if sub == "" {
		return "", nil
	}
	dir := filepath.Join(st.Path, ".maestro", sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating storage dir %s: %w", dir, err)
	}
	return dir, nil
}
