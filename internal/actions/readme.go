package actions

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/state"
)

// AddReadme creates a README.md skeleton.
type AddReadme struct {
	*Deps
}

// NewAddReadme creates the action.
func NewAddReadme(deps *Deps) *AddReadme {
	return &AddReadme{Deps: deps}
}

// Meta implements action.Action.
func (a *AddReadme) Meta() action.Meta {
	return action.Meta{
		Name:        "Add README.md",
		Description: "Create a README.md file with basic project information",
		Category:    action.CategorySetup,
	}
}

// IsApplicable offers the action in any repo without a README.
func (a *AddReadme) IsApplicable(st *state.RepoState) bool {
	return st.IsGitRepo && !st.HasReadme
}

// Execute writes the README with an optional one-line description.
func (a *AddReadme) Execute(st *state.RepoState) bool {
	a.step("Creating README.md...")

	description, err := a.Prompt.Input("Description (Enter to skip)", "")
	if err != nil {
		a.warn("Cancelled")
		return false
	}

	content := fmt.Sprintf("# %s\n\n", filepath.Base(st.Path))
	if description != "" {
		content += description + "\n\n"
	}
	content += "## Installation\n\nTODO: Add installation instructions\n\n" +
		"## Usage\n\nTODO: Add usage instructions\n\n" +
		"## License\n\nTODO: Add license information\n"

	if err := os.WriteFile(filepath.Join(st.Path, "README.md"), []byte(content), 0o644); err != nil {
		a.fail("Error creating README.md: %v", err)
		return false
	}

	a.ok("README.md created successfully")
	return true
}
