// Package fsutil provides the filesystem helpers shared by the plugbay
// managers: user directory resolution and plain file operations.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the name of the application used in paths
	AppName = "plugbay"
)

// getAppDataDir returns the platform-specific base data directory
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func getAppDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			return "", errors.New("LOCALAPPDATA environment variable not set")
		}
		return localAppData, nil

	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil

	default: // Linux, BSD, etc.
		// Use XDG_DATA_HOME with fallback to ~/.local/share
		if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
			return xdgDataHome, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// GetDataDir returns the platform-specific data directory for the application
// On Linux: ~/.local/share/plugbay/
// On macOS: ~/Library/Application Support/plugbay/
// On Windows: %LOCALAPPDATA%\plugbay\
func GetDataDir() (string, error) {
	baseDir, err := getAppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, AppName), nil
}

// GetDefaultStatePath returns the default location of the persisted state file.
// Format: <data_dir>/state.json
func GetDefaultStatePath() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "state.json"), nil
}
