package actions

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/state"
)

//go:embed gitignore_templates.yaml
var gitignoreTemplatesYAML []byte

type gitignoreTemplate struct {
	Label    string   `yaml:"label"`
	Patterns []string `yaml:"patterns"`
}

type gitignoreCatalog struct {
	Templates map[string]gitignoreTemplate `yaml:"templates"`
}

// templateOrder fixes the menu order; map iteration is not stable.
var templateOrder = []string{"go", "python", "node", "generic"}

func loadGitignoreCatalog() (*gitignoreCatalog, error) {
	var catalog gitignoreCatalog
	if err := yaml.Unmarshal(gitignoreTemplatesYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parsing gitignore templates: %w", err)
	}
	return &catalog, nil
}

// AddGitignore creates a .gitignore from a language template.
type AddGitignore struct {
	*Deps
}

// NewAddGitignore creates the action.
func NewAddGitignore(deps *Deps) *AddGitignore {
	return &AddGitignore{Deps: deps}
}

// Meta implements action.Action.
func (a *AddGitignore) Meta() action.Meta {
	return action.Meta{
		Name:        "Add .gitignore",
		Description: "Create a .gitignore file from a language template",
		Category:    action.CategorySetup,
	}
}

// IsApplicable offers the action in any repo without a .gitignore.
func (a *AddGitignore) IsApplicable(st *state.RepoState) bool {
	return st.IsGitRepo && !st.HasGitignore
}

// Execute prompts for a template and writes the .gitignore.
func (a *AddGitignore) Execute(st *state.RepoState) bool {
	catalog, err := loadGitignoreCatalog()
	if err != nil {
		a.fail("Error loading templates: %v", err)
		return false
	}

	keys := make([]string, 0, len(templateOrder))
	options := make([]string, 0, len(templateOrder))
	for _, key := range templateOrder {
		tmpl, ok := catalog.Templates[key]
		if !ok {
			continue
		}
		keys = append(keys, key)
		options = append(options, tmpl.Label)
	}

	a.Printer.Println("Select a template:")
	idx, err := a.Prompt.Choose("Choice", options, len(options)-1)
	if err != nil {
		a.warn("Cancelled")
		return false
	}
	selected := catalog.Templates[keys[idx]]

	content := strings.Join(selected.Patterns, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(st.Path, ".gitignore"), []byte(content), 0o644); err != nil {
		a.fail("Error creating .gitignore: %v", err)
		return false
	}

	a.ok(".gitignore created successfully (%s template)", selected.Label)
	return true
}
