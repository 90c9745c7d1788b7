// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// DefaultFolder is the home-relative folder holding settings and sessions.
const DefaultFolder = ".tomato"

// HomeFunc resolves the user's home directory.
type HomeFunc func() (string, error)

// UserHome is the HomeFunc backed by the operating system.
func UserHome() (string, error) {
	return os.UserHomeDir()
}

// StaticHome returns a HomeFunc that always resolves to dir.
func StaticHome(dir string) HomeFunc {
	return func() (string, error) {
		return dir, nil
	}
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "tomato", "config.toml")
}

// DataDir joins the resolved home directory with folder.
func DataDir(home HomeFunc, folder string) (string, error) {
	dir, err := home()
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, folder), nil
}
