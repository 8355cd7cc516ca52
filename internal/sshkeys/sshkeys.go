// Package sshkeys locates the SSH key a hosting provider would use and
// checks whether it is registered on the user's account.
//
// Detection asks `ssh -G <host>` for the effective identity file, which
// honors ~/.ssh/config includes and match blocks, then falls back to the
// conventional default key names. PuTTY-style keys are not supported.
package sshkeys

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorewood/maestro/internal/hosting"
)

// sshProbeTimeout bounds the `ssh -G` subprocess.
const sshProbeTimeout = 5 * time.Second

// defaultKeyNames are tried in order when ssh -G yields nothing usable.
var defaultKeyNames = []string{"id_rsa", "id_ed25519", "id_ecdsa"}

// Locate returns the private key path ssh would offer to host (e.g.
// "github.com"). Reports ok=false when no existing key can be found.
func Locate(host string) (string, bool) {
	if path, ok := identityFromSSH(host); ok {
		return path, true
	}
	return defaultKey()
}

// identityFromSSH runs `ssh -G host` and picks the first identityfile
// that exists on disk.
func identityFromSSH(host string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), sshProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "ssh", "-G", host).Output()
	if err != nil {
		return "", false
	}

	home, _ := os.UserHomeDir()
	for line := range strings.SplitSeq(string(out), "\n") {
		if !strings.HasPrefix(line, "identityfile ") {
			continue
		}
		path := strings.TrimSpace(strings.TrimPrefix(line, "identityfile "))
		if strings.HasPrefix(path, "~") && home != "" {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// defaultKey returns the first conventional key found under ~/.ssh.
func defaultKey() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	for _, name := range defaultKeyNames {
		path := filepath.Join(home, ".ssh", name)
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// PublicKey reads the .pub companion of a private key path.
func PublicKey(privateKeyPath string) (string, bool) {
	data, err := os.ReadFile(privateKeyPath + ".pub")
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// Registered reports whether the local public key's material appears in
// the account's key list. Comparison uses only the base64 key body (the
// second field), ignoring algorithm prefix and comment.
func Registered(publicKey string, accountKeys []hosting.SSHKey) (bool, string) {
	material, ok := keyMaterial(publicKey)
	if !ok {
		return false, ""
	}
	for _, k := range accountKeys {
		if strings.Contains(k.Key, material) {
			return true, k.Title
		}
	}
	return false, ""
}

// keyMaterial extracts the base64 body from an authorized-keys line.
func keyMaterial(publicKey string) (string, bool) {
	fields := strings.Fields(publicKey)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
