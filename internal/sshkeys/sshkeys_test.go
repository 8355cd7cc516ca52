package sshkeys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gorewood/maestro/internal/hosting"
)

func TestPublicKey(t *testing.T) {
	dir := t.TempDir()
	private := filepath.Join(dir, "id_ed25519")
	if err := os.WriteFile(private+".pub", []byte("ssh-ed25519 AAAAbody user@host\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	key, ok := PublicKey(private)
	if !ok {
		t.Fatal("PublicKey reported not found")
	}
	if key != "ssh-ed25519 AAAAbody user@host" {
		t.Errorf("PublicKey = %q", key)
	}

	if _, ok := PublicKey(filepath.Join(dir, "missing")); ok {
		t.Error("PublicKey reported ok for a missing .pub")
	}
}

func TestRegistered(t *testing.T) {
	account := []hosting.SSHKey{
		{Title: "laptop", Key: "ssh-ed25519 AAAAC3NzaC1lZDI1laptop"},
		{Title: "desktop", Key: "ssh-rsa AAAAB3NzaC1yc2Edesktop"},
	}

	tests := []struct {
		name      string
		publicKey string
		want      bool
		title     string
	}{
		{"match ignoring comment", "ssh-ed25519 AAAAC3NzaC1lZDI1laptop me@home", true, "laptop"},
		{"match second key", "ssh-rsa AAAAB3NzaC1yc2Edesktop work@pc", true, "desktop"},
		{"no match", "ssh-ed25519 AAAAotherkey me@home", false, ""},
		{"malformed key", "not-a-key", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, title := Registered(tt.publicKey, account)
			if got != tt.want || title != tt.title {
				t.Errorf("Registered = (%v, %q), want (%v, %q)", got, title, tt.want, tt.title)
			}
		})
	}
}

func TestRegistered_EmptyAccountList(t *testing.T) {
	if ok, _ := Registered("ssh-ed25519 AAAAbody", nil); ok {
		t.Error("Registered = true against an empty account list")
	}
}
