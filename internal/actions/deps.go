// Package actions implements the concrete setup and info actions maestro
// offers: repository initialization, initial commit, README/.gitignore
// creation, remote setup against GitHub/GitLab, and CI status gathering.
//
// Every action is stateless across invocations; all mutation goes through
// the RepoState it is handed, or through the repository itself.
package actions

import (
	"fmt"

	"github.com/gorewood/maestro/internal/output"
	"github.com/gorewood/maestro/internal/prompt"
	"github.com/gorewood/maestro/internal/tokens"
)

// Deps carries the collaborators shared by all actions. The driver
// constructs one Deps at startup and threads it through the registry;
// no action holds process-wide singletons.
type Deps struct {
	Printer *output.Printer
	Prompt  *prompt.Prompter
	Tokens  *tokens.Store
}

// ok prints a styled success line.
func (d *Deps) ok(format string, args ...any) {
	st := d.Printer.Styles()
	d.Printer.Print("%s\n", st.Success.Render(fmt.Sprintf(format, args...)))
}

// fail prints a styled failure line. Actions call this instead of
// returning errors: external failures are reported here and surfaced to
// the driver only as a false result.
func (d *Deps) fail(format string, args ...any) {
	st := d.Printer.Styles()
	d.Printer.Print("%s\n", st.Error.Render(fmt.Sprintf(format, args...)))
}

// warn prints a styled warning line.
func (d *Deps) warn(format string, args ...any) {
	st := d.Printer.Styles()
	d.Printer.Print("%s\n", st.Warning.Render(fmt.Sprintf(format, args...)))
}

// note prints a dimmed informational line.
func (d *Deps) note(format string, args ...any) {
	st := d.Printer.Styles()
	d.Printer.Print("%s\n", st.Dim.Render(fmt.Sprintf(format, args...)))
}

// step prints a bold progress line.
func (d *Deps) step(format string, args ...any) {
	st := d.Printer.Styles()
	d.Printer.Print("%s\n", st.Bold.Render(fmt.Sprintf(format, args...)))
}
