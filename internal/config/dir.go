// Package config provides the global configuration for meso.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the meso configuration directory.
//
// Resolution:
//   - $MESO_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/meso if set (respects XDG on any platform)
//   - %AppData%/meso on Windows
//   - ~/.config/meso on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("MESO_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "meso")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "meso")
		}
	}

	// macOS and Linux: ~/.config/meso
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "meso")
}
