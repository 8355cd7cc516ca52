// Package main provides the entry point for the maestro CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/maestro/internal/actions"
	"github.com/gorewood/maestro/internal/config"
	"github.com/gorewood/maestro/internal/envfile"
	"github.com/gorewood/maestro/internal/menu"
	"github.com/gorewood/maestro/internal/output"
	"github.com/gorewood/maestro/internal/prompt"
	"github.com/gorewood/maestro/internal/state"
	"github.com/gorewood/maestro/internal/tokens"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the --color flag against actual TTY detection.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(buildVersion()),
		fang.WithNotifySignal(os.Interrupt),
	)
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the maestro CLI. Running it
// with no subcommand starts the interactive assistant.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maestro [path]",
		Short: "An interactive git repository setup assistant",
		Long: `Maestro inspects a git working directory and walks you through whatever
setup is still missing: initializing the repository, making the first
commit, adding a README and .gitignore, connecting a GitHub or GitLab
remote, and checking CI status.

Only the steps that apply to the repository's current state are offered;
the menu shrinks as the setup completes.

Run with no arguments to work on the current directory, or pass a path.`,
		Version:       buildVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runAssistant,
	}

	// Load .env.local (then .env) for tokens that can't be exported to env.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	lipgloss.SetHasDarkBackground(true)

	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// runAssistant starts the interactive menu loop.
func runAssistant(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	if isJSONMode(cmd) {
		printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
		err := output.NewUserError("the interactive assistant has no JSON mode; use 'maestro status --json'")
		printer.Error(err)
		return err
	}

	printer := output.NewPrinter(cmd.OutOrStdout(), false, useColor(cmd)).WithStderr(cmd.ErrOrStderr())
	deps := &actions.Deps{
		Printer: printer,
		Prompt:  prompt.New(),
		Tokens:  tokens.NewStore(),
	}

	st := state.New(path)
	return menu.New(actions.NewRegistry(deps), printer, deps.Prompt).Run(cmd.Context(), st)
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/maestro/env (global fallback)
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}
