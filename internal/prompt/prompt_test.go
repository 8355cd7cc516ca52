package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestInput_UsesDefault(t *testing.T) {
	p := NewFrom(strings.NewReader("\n"), &bytes.Buffer{})
	got, err := p.Input("Name", "fallback")
	if err != nil {
		t.Fatal(err)
	}
	if got != "fallback" {
		t.Errorf("Input = %q, want fallback", got)
	}
}

func TestInput_TrimsValue(t *testing.T) {
	p := NewFrom(strings.NewReader("  hello  \n"), &bytes.Buffer{})
	got, err := p.Input("Name", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("Input = %q, want hello", got)
	}
}

func TestInput_EOFSurfaces(t *testing.T) {
	p := NewFrom(strings.NewReader(""), &bytes.Buffer{})
	if _, err := p.Input("Name", ""); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"\n", true, true},
		{"\n", false, false},
		{"y\n", false, true},
		{"Yes\n", false, true},
		{"n\n", true, false},
		{"anything\n", true, false},
	}
	for _, tt := range tests {
		p := NewFrom(strings.NewReader(tt.input), &bytes.Buffer{})
		got, err := p.Confirm("Sure?", tt.def)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q, def=%v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestChoose_ByNumber(t *testing.T) {
	p := NewFrom(strings.NewReader("2\n"), &bytes.Buffer{})
	got, err := p.Choose("Pick", []string{"a", "b", "c"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Choose = %d, want 1", got)
	}
}

func TestChoose_ByText(t *testing.T) {
	p := NewFrom(strings.NewReader("C\n"), &bytes.Buffer{})
	got, err := p.Choose("Pick", []string{"a", "b", "c"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("Choose = %d, want 2", got)
	}
}

func TestChoose_InvalidFallsBackToDefault(t *testing.T) {
	p := NewFrom(strings.NewReader("99\n"), &bytes.Buffer{})
	got, err := p.Choose("Pick", []string{"a", "b", "c"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Choose = %d, want default 1", got)
	}
}

func TestChoose_EmptySelectsDefault(t *testing.T) {
	p := NewFrom(strings.NewReader("\n"), &bytes.Buffer{})
	got, err := p.Choose("Pick", []string{"a", "b"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Choose = %d, want 1", got)
	}
}

func TestChoose_ListsOptions(t *testing.T) {
	var out bytes.Buffer
	p := NewFrom(strings.NewReader("1\n"), &out)
	if _, err := p.Choose("Pick", []string{"alpha", "beta"}, 0); err != nil {
		t.Fatal(err)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "1. alpha") || !strings.Contains(rendered, "2. beta") {
		t.Errorf("options not rendered: %q", rendered)
	}
}

func TestSecret_NonTerminalFallback(t *testing.T) {
	p := NewFrom(strings.NewReader("s3cret\n"), &bytes.Buffer{})
	got, err := p.Secret("Token")
	if err != nil {
		t.Fatal(err)
	}
	if got != "s3cret" {
		t.Errorf("Secret = %q, want s3cret", got)
	}
}
