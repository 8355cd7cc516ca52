// Package config provides the global configuration directory for maestro.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the maestro configuration directory.
//
// Resolution:
//   - $MAESTRO_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/maestro if set (respects XDG on any platform)
//   - %AppData%/maestro on Windows
//   - ~/.config/maestro on macOS and Linux
func Dir() string {
	if dir := os.Getenv("MAESTRO_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "maestro")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "maestro")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "maestro")
}
