// Package paths resolves the on-disk locations of persisted state.
// The application keeps exactly two files: the session record and the
// shell settings, both under one per-user data directory.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// appDirName is the directory created under the user config root.
const appDirName = "sisgate"

// File names inside the data directory.
const (
	SessionFileName  = "session.json"
	SettingsFileName = "settings.json"
)

// DataDir returns the data directory, honoring an override when set.
// The directory itself is created lazily by the stores.
func DataDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// SessionFile returns the session record path inside dir.
func SessionFile(dir string) string {
	return filepath.Join(dir, SessionFileName)
}

// SettingsFile returns the settings path inside dir.
func SettingsFile(dir string) string {
	return filepath.Join(dir, SettingsFileName)
}
