package describe

import (
	"os"
	"path/filepath"
	"testing"
)

func writeReadme(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSuggestions_NoReadme(t *testing.T) {
	if got := Suggestions(t.TempDir()); got != nil {
		t.Errorf("Suggestions = %v for a dir without README, want nil", got)
	}
}

func TestSuggestions_ParagraphAndSentence(t *testing.T) {
	dir := t.TempDir()
	writeReadme(t, dir, "README.md",
		"# widgets\n\nA toolkit for building widgets. It supports plugins and themes.\n\nMore text later.\n")

	got := Suggestions(dir)
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2: %v", len(got), got)
	}
	if got[0].Text != "A toolkit for building widgets. It supports plugins and themes." {
		t.Errorf("paragraph = %q", got[0].Text)
	}
	if got[1].Text != "A toolkit for building widgets." {
		t.Errorf("sentence = %q", got[1].Text)
	}
}

func TestSuggestions_StripsMarkup(t *testing.T) {
	dir := t.TempDir()
	writeReadme(t, dir, "README.md",
		"# widgets\n\nA *fast* [toolkit](https://example.com) for `building` widgets.\n")

	got := Suggestions(dir)
	if len(got) == 0 {
		t.Fatal("no suggestions")
	}
	want := "A fast toolkit for building widgets."
	if got[0].Text != want {
		t.Errorf("Text = %q, want %q", got[0].Text, want)
	}
}

func TestSuggestions_SkipsHeadings(t *testing.T) {
	dir := t.TempDir()
	writeReadme(t, dir, "README.md",
		"# widgets\n\n## About\nThe widgets project renders things nicely.\n\n## Install\n")

	got := Suggestions(dir)
	if len(got) == 0 {
		t.Fatal("no suggestions")
	}
	if got[0].Text != "The widgets project renders things nicely." {
		t.Errorf("Text = %q", got[0].Text)
	}
}

func TestSuggestions_TooShort(t *testing.T) {
	dir := t.TempDir()
	writeReadme(t, dir, "README.md", "# widgets\n\nTiny.\n")

	if got := Suggestions(dir); got != nil {
		t.Errorf("Suggestions = %v for a too-short paragraph, want nil", got)
	}
}

func TestSuggestions_FallbackReadmeNames(t *testing.T) {
	dir := t.TempDir()
	writeReadme(t, dir, "README", "widgets\n\nA plain-text readme with enough words to be usable.\n")

	got := Suggestions(dir)
	if len(got) == 0 {
		t.Fatal("no suggestions from plain README")
	}
}
