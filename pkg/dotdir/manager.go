// Package dotdir manages the .mnemo/ and ~/.mnemo directories.
//
// The dotdir holds the config.toml file and, unless overridden, the vault
// root itself (as a vault/ subdirectory). Resolution prefers an explicit
// override, then a project-local .mnemo/, then the home directory.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the mnemo directory.
	dirName = ".mnemo"

	// vaultDirName is the default vault root inside the dotdir.
	vaultDirName = "vault"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .mnemo/ directory.
// Order of precedence is as follows:
//  1. Provided override
//  2. Local ./.mnemo/ dir
//  3. Home ~/.mnemo/ dir (created if missing)
func (m *Manager) Target(overrideDir string) (string, error) {
	var dir string

	switch {
	case overrideDir != "":
		dir = overrideDir

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, dirName)

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating mnemo directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// VaultRoot returns the default vault root inside the resolved dotdir.
// The directory itself is created lazily by the store, not here.
func (m *Manager) VaultRoot(overrideDir string) (string, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, vaultDirName), nil
}

// localDirExists checks whether a .mnemo/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
