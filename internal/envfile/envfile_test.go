package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if err := Load("/nonexistent/.env"); err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env.local")
	content := "TEST_MAESTRO_A=hello\nTEST_MAESTRO_B=world\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_MAESTRO_A", "")
	t.Setenv("TEST_MAESTRO_B", "")
	_ = os.Unsetenv("TEST_MAESTRO_A") //nolint:errcheck
	_ = os.Unsetenv("TEST_MAESTRO_B") //nolint:errcheck

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("TEST_MAESTRO_A"); got != "hello" {
		t.Errorf("TEST_MAESTRO_A = %q, want %q", got, "hello")
	}
	if got := os.Getenv("TEST_MAESTRO_B"); got != "world" {
		t.Errorf("TEST_MAESTRO_B = %q, want %q", got, "world")
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TEST_MAESTRO_C=from_file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_MAESTRO_C", "from_env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("TEST_MAESTRO_C"); got != "from_env" {
		t.Errorf("TEST_MAESTRO_C = %q, want %q (env should take precedence)", got, "from_env")
	}
}

func TestLoad_SkipsCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\n\nTEST_MAESTRO_D=yes\n  # indented comment\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_MAESTRO_D", "")
	_ = os.Unsetenv("TEST_MAESTRO_D") //nolint:errcheck

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("TEST_MAESTRO_D"); got != "yes" {
		t.Errorf("TEST_MAESTRO_D = %q, want %q", got, "yes")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		key   string
		value string
		ok    bool
	}{
		{"plain", "KEY=value", "KEY", "value", true},
		{"export prefix", "export KEY=value", "KEY", "value", true},
		{"double quotes", `KEY="quoted value"`, "KEY", "quoted value", true},
		{"single quotes", "KEY='quoted value'", "KEY", "quoted value", true},
		{"equals in value", "KEY=a=b=c", "KEY", "a=b=c", true},
		{"spaces around", "  KEY = value ", "KEY", "value", true},
		{"no equals", "KEY", "", "", false},
		{"empty key", "=value", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := ParseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && (key != tt.key || value != tt.value) {
				t.Errorf("ParseLine(%q) = (%q, %q), want (%q, %q)", tt.line, key, value, tt.key, tt.value)
			}
		})
	}
}
