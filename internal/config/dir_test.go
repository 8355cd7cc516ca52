package config

import (
	"path/filepath"
	"testing"
)

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("MAESTRO_CONFIG_HOME", "/tmp/maestro-test")
	if got := Dir(); got != "/tmp/maestro-test" {
		t.Errorf("Dir() = %q, want /tmp/maestro-test", got)
	}
}

func TestDir_XDG(t *testing.T) {
	t.Setenv("MAESTRO_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", "maestro")
	if got := Dir(); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestDir_OverrideBeatsXDG(t *testing.T) {
	t.Setenv("MAESTRO_CONFIG_HOME", "/tmp/explicit")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := Dir(); got != "/tmp/explicit" {
		t.Errorf("Dir() = %q, want /tmp/explicit", got)
	}
}
