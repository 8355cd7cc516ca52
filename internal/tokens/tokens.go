// Package tokens persists hosting-provider access tokens in a plain
// key=value file under the maestro config directory.
//
// The file and its directory are restricted to the owner (0600/0700);
// permissions are re-applied on every write in case the paths pre-existed.
package tokens

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorewood/maestro/internal/config"
	"github.com/gorewood/maestro/internal/envfile"
)

const fileName = "tokens.conf"

// Store reads and writes provider tokens rooted at a config directory.
type Store struct {
	dir string
}

// NewStore creates a store under the default maestro config directory.
func NewStore() *Store {
	return &Store{dir: config.Dir()}
}

// NewStoreAt creates a store under an explicit directory. Used in tests.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the token file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Get returns the stored token for provider, or ("", false) when absent
// or unreadable. A missing token is an expected state, not an error.
func (s *Store) Get(provider string) (string, bool) {
	tokens, err := s.readAll()
	if err != nil {
		return "", false
	}
	token, ok := tokens[provider]
	return token, ok && token != ""
}

// Set stores the token for provider, merging with existing entries.
func (s *Store) Set(provider, token string) error {
	if s.dir == "" {
		return fmt.Errorf("no config directory available")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	// Tighten perms even if the directory pre-existed with a wider mode.
	if err := os.Chmod(s.dir, 0o700); err != nil {
		return fmt.Errorf("restricting config dir: %w", err)
	}

	tokens, err := s.readAll()
	if err != nil {
		tokens = map[string]string{}
	}
	tokens[provider] = token

	return s.writeAll(tokens)
}

// readAll parses the token file into a map. Missing file yields an empty map.
func (s *Store) readAll() (map[string]string, error) {
	tokens := map[string]string{}

	file, err := os.Open(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return tokens, nil
		}
		return nil, err
	}
	defer file.Close() //nolint:errcheck // read-only file

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, ok := envfile.ParseLine(line); ok {
			tokens[key] = value
		}
	}
	return tokens, scanner.Err()
}

// writeAll rewrites the token file with owner-only permissions.
func (s *Store) writeAll(tokens map[string]string) error {
	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(tokens[k])
		sb.WriteString("\n")
	}

	if err := os.WriteFile(s.Path(), []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	// WriteFile mode is ignored for an existing file.
	return os.Chmod(s.Path(), 0o600)
}
