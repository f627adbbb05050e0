package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultProjectConfig is the file name `jsxmigrate init` writes.
const DefaultProjectConfig = ".jsxmigrate.yml"

// appName names the per-user and system config directories.
const appName = "jsxmigrate"

// ConfigPaths represents discovered configuration file paths.
// Missing files are empty strings.
type ConfigPaths struct {
	// System is the system-wide config (e.g. /etc/jsxmigrate/config.yaml).
	System string

	// User is the per-user config (e.g. ~/.config/jsxmigrate/config.yaml).
	User string

	// Project is the nearest .jsxmigrate.yml at or above the working dir.
	Project string

	// Explicit is a config path provided via --config.
	Explicit string
}

// projectConfigNames are searched in each directory, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigNames = []string{
	DefaultProjectConfig,
	".jsxmigrate.yaml",
	"jsxmigrate.yml",
	"jsxmigrate.yaml",
}

// vcsRootMarkers end the upward search for a project config.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in the standard locations:
// the system directory, $XDG_CONFIG_HOME/jsxmigrate and the nearest
// project config at or above workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  findConfigInDir(systemConfigDir(os.Getenv)),
		User:    findConfigInDir(UserConfigDir(os.Getenv)),
		Project: project,
	}, nil
}

// UserConfigDir returns the per-user config directory, honouring
// XDG_CONFIG_HOME. It returns "" when no home directory is known.
func UserConfigDir(getenv func(string) string) string {
	if home := getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

func systemConfigDir(getenv func(string) string) string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	programData := getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, appName)
}

// findConfigInDir returns the first config.{yaml,yml} in dir, or "".
func findConfigInDir(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// The search stops at the first VCS root, the home directory or the
// filesystem root, whichever comes first.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range projectConfigNames {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(dir) || (homeDir != "" && dir == homeDir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
