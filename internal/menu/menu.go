// Package menu drives the interactive session: render repository state,
// list applicable actions, run the chosen one, refresh, repeat.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gorewood/maestro/internal/action"
	"github.com/gorewood/maestro/internal/output"
	"github.com/gorewood/maestro/internal/prompt"
	"github.com/gorewood/maestro/internal/state"
)

// Menu is the interactive driver.
type Menu struct {
	registry *action.Registry
	printer  *output.Printer
	prompt   *prompt.Prompter
}

// New creates a Menu.
func New(registry *action.Registry, printer *output.Printer, prompter *prompt.Prompter) *Menu {
	return &Menu{registry: registry, printer: printer, prompt: prompter}
}

// Run loops until the user exits, nothing is applicable anymore, input
// ends, or ctx is cancelled (Ctrl+C). All of those unwind to a clean
// goodbye. The state is refreshed after each successful action; a failed
// action leaves both repository state and menu unchanged.
func (m *Menu) Run(ctx context.Context, st *state.RepoState) error {
	st.Refresh()

	for {
		StatePanel(m.printer, st)

		applicable := m.registry.Applicable(st)
		if len(applicable) == 0 {
			m.printer.Println()
			m.printer.Print("%s\n", m.printer.Styles().Success.Render("Everything looks good. Nothing left to set up."))
			return nil
		}

		m.renderMenu(applicable)

		choice, err := m.readChoice(ctx, len(applicable))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				m.printer.Println()
				m.printer.Println("Goodbye!")
				return nil
			}
			return err
		}
		if choice == 0 {
			m.printer.Println("Goodbye!")
			return nil
		}

		selected := applicable[choice-1]
		m.printer.Section(selected.Meta().Name)
		if selected.Execute(st) {
			st.Refresh()
		}
		m.printer.Println()
	}
}

// renderMenu prints applicable actions numbered continuously, grouped by
// category, with 0 reserved for exit.
func (m *Menu) renderMenu(applicable []action.Action) {
	styles := m.printer.Styles()
	m.printer.Println()
	m.printer.Print("%s\n", styles.Title.Render("What would you like to do?"))

	var lastCategory action.Category
	for i, a := range applicable {
		meta := a.Meta()
		if meta.Category != lastCategory {
			label := "Setup"
			if meta.Category == action.CategoryInfo {
				label = "Info"
			}
			m.printer.Print("%s\n", styles.Muted.Render("  ── "+label+" ──"))
			lastCategory = meta.Category
		}
		m.printer.Print("  %d. %s\n     %s\n", i+1, styles.Bold.Render(meta.Name), styles.Dim.Render(meta.Description))
	}
	m.printer.Print("  0. %s\n", styles.Bold.Render("Exit"))
}

// readChoice reads a menu number in [0, max]. Anything unparsable asks
// again; EOF and cancellation surface to the caller. The read happens on
// a goroutine so a pending Ctrl+C is observed while stdin blocks; the
// abandoned reader is fine because cancellation ends the session.
func (m *Menu) readChoice(ctx context.Context, max int) (int, error) {
	type input struct {
		line string
		err  error
	}
	for {
		ch := make(chan input, 1)
		go func() {
			line, err := m.prompt.Input("Choice", "")
			ch <- input{line: line, err: err}
		}()

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case in := <-ch:
			if in.err != nil {
				return 0, in.err
			}
			n, convErr := strconv.Atoi(strings.TrimSpace(in.line))
			if convErr == nil && n >= 0 && n <= max {
				return n, nil
			}
			m.printer.Print("Please enter a number between 0 and %d\n", max)
		}
	}
}

// StatePanel renders the repository state summary box. Shared with the
// one-shot status command.
func StatePanel(p *output.Printer, st *state.RepoState) {
	var b strings.Builder

	write := func(key string, value string) {
		fmt.Fprintf(&b, "%s %s\n", p.Styles().Key.Render(key+":"), value)
	}
	yn := func(v bool) string {
		if v {
			return p.Styles().Success.Render("yes")
		}
		return p.Styles().Warning.Render("no")
	}

	write("Path", st.Path)
	write("Git repository", yn(st.IsGitRepo))
	if st.IsGitRepo {
		write("Commits", yn(st.HasCommits))
		if st.BranchName != "" {
			write("Branch", st.BranchName)
		}
		write("README", yn(st.HasReadme))
		write(".gitignore", yn(st.HasGitignore))
		if st.HasRemote {
			write("Remote", st.RemoteURL)
		} else {
			write("Remote", yn(false))
		}
		if st.HasCommits {
			clean := "clean"
			if !st.IsClean {
				clean = fmt.Sprintf("%d modified, %d untracked", len(st.ModifiedFiles), len(st.UntrackedFiles))
			}
			write("Working tree", clean)
		}
	}
	if ci := ciSummary(p, st); ci != "" {
		write("CI", ci)
	}

	p.Box("Repository Status", strings.TrimRight(b.String(), "\n"))
}

// ciSummary condenses the cached CI facts into one line, or "" before the
// first check.
func ciSummary(p *output.Printer, st *state.RepoState) string {
	if !st.BoolFact(state.FactActionsChecked, false) {
		return ""
	}
	if !st.BoolFact(state.FactActionsHasRuns, false) {
		return "no workflow runs"
	}
	conclusion := st.StringFact(state.FactActionsConclusion, "")
	if conclusion == "" {
		return st.StringFact(state.FactActionsStatus, "unknown")
	}
	failed := st.IntFact(state.FactActionsFailedCount, 0)
	if failed > 0 {
		return p.Styles().Error.Render(fmt.Sprintf("%s (%d failed job(s))", conclusion, failed))
	}
	if conclusion == "success" {
		return p.Styles().Success.Render(conclusion)
	}
	return conclusion
}
