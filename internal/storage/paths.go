package storage

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const (
	appDirName     = "stash"
	backupsDirName = "backups"
)

// platformDir holds platform lookups that tests can override.
var platformDir = struct {
	homeDir func() (string, error)
}{
	homeDir: homedir.Dir,
}

// BookmarksFileName returns the primary JSON file name.
// Debug builds use a separate file so they never touch real data.
func BookmarksFileName() string {
	if debugBuild {
		return "bookmarks_debug.json"
	}
	return "bookmarks.json"
}

// DatabaseFileName returns the SQLite database file name.
func DatabaseFileName() string {
	if debugBuild {
		return "bookmarks_debug.db"
	}
	return "bookmarks.db"
}

// DocumentsDir returns $XDG_DOCUMENTS_DIR if set, otherwise ~/Documents.
func DocumentsDir() (string, error) {
	if xdg := os.Getenv("XDG_DOCUMENTS_DIR"); xdg != "" {
		return ExpandPath(xdg)
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Documents"), nil
}

// DefaultDataDir returns the stash directory: <Documents>/stash.
func DefaultDataDir() (string, error) {
	docs, err := DocumentsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(docs, appDirName), nil
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/stash, falling back to ~/.config/stash.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDirName), nil
}

// BackupsDir returns the backups directory inside dataDir.
func BackupsDir(dataDir string) string {
	return filepath.Join(dataDir, backupsDirName)
}

// ExpandPath expands environment variables and a leading ~ in p.
func ExpandPath(p string) (string, error) {
	return homedir.Expand(os.ExpandEnv(p))
}
