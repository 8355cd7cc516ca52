// Package describe suggests repository descriptions by mining the README.
package describe

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Suggestion is a candidate repository description with a display label.
type Suggestion struct {
	Label string
	Text  string
}

var (
	readmeNames   = []string{"README.md", "README.rst", "README.txt", "README"}
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	markupPattern = regexp.MustCompile("[*_`]")
	sentenceEnd   = regexp.MustCompile(`^([^.!?]+[.!?])`)
)

// Suggestions extracts up to two description candidates from the README
// in dir: the first paragraph after the title, and its first sentence.
// Returns nil when no README yields a usable description.
func Suggestions(dir string) []Suggestion {
	for _, name := range readmeNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if suggestions := parse(string(data)); len(suggestions) > 0 {
			return suggestions
		}
	}
	return nil
}

// parse pulls candidates out of README content.
func parse(content string) []Suggestion {
	lines := strings.Split(content, "\n")

	// Drop leading blanks, then the title line.
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 {
		lines = lines[1:]
	}

	// First paragraph after the title, skipping headings and code fences.
	var paragraph []string
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			if len(paragraph) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(stripped, "#") || strings.HasPrefix(stripped, "```") {
			continue
		}
		paragraph = append(paragraph, stripped)
	}
	if len(paragraph) == 0 {
		return nil
	}

	var out []Suggestion
	full := clean(strings.Join(paragraph, " "))
	if usable(full, 300) {
		out = append(out, Suggestion{Label: "From README (first paragraph)", Text: full})
	}

	if m := sentenceEnd.FindStringSubmatch(paragraph[0]); m != nil {
		sentence := clean(strings.TrimSpace(m[1]))
		if usable(sentence, 200) && (len(out) == 0 || sentence != out[0].Text) {
			out = append(out, Suggestion{Label: "From README (first sentence)", Text: sentence})
		}
	}

	return out
}

// clean strips markdown links and emphasis markers.
func clean(s string) string {
	s = linkPattern.ReplaceAllString(s, "$1")
	return markupPattern.ReplaceAllString(s, "")
}

// usable filters out fragments and over-long blobs.
func usable(s string, maxLen int) bool {
	return len(s) > 10 && len(s) <= maxLen
}
