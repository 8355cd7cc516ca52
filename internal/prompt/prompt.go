// Package prompt provides line-based user input for the maestro menu:
// free text with defaults, yes/no confirmation, numbered choices, and
// no-echo secret entry.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter reads user input from a reader and echoes prompts to a writer.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the input file descriptor for no-echo reads, -1 when the
	// input is not a terminal.
	fd int
}

// New creates a Prompter over stdin/stdout.
func New() *Prompter {
	return &Prompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  int(os.Stdin.Fd()),
	}
}

// NewFrom creates a Prompter over explicit streams. Used in tests; secret
// entry falls back to a plain line read.
func NewFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// Input prompts for a line of text. Returns def when the user enters
// nothing. io errors (including EOF on interrupt) surface to the caller
// so the menu can unwind cleanly.
func (p *Prompter) Input(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm prompts for a yes/no answer. Empty input returns def.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Choose presents numbered options and returns the selected index.
// Accepts either the number or the option text (case-insensitive); empty
// input selects def.
func (p *Prompter) Choose(label string, options []string, def int) (int, error) {
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, opt)
	}
	line, err := p.Input(label, strconv.Itoa(def+1))
	if err != nil {
		return 0, err
	}

	if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(options) {
		return n - 1, nil
	}
	for i, opt := range options {
		if strings.EqualFold(line, opt) {
			return i, nil
		}
	}
	return def, nil
}

// Secret prompts for a value without echoing it, when the input is a
// terminal. Non-terminal input falls back to a plain line read.
func (p *Prompter) Secret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if p.fd >= 0 && term.IsTerminal(p.fd) {
		raw, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
