package storage

import (
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func withHome(t *testing.T, home string) {
	t.Helper()
	orig := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return home, nil }
	t.Cleanup(func() { platformDir.homeDir = orig })
}

func TestDocumentsDir(t *testing.T) {
	t.Run("uses XDG_DOCUMENTS_DIR when set", func(t *testing.T) {
		t.Setenv("XDG_DOCUMENTS_DIR", "/tmp/xdg-docs")
		got, err := DocumentsDir()
		assert.NilError(t, err)
		assert.Equal(t, got, "/tmp/xdg-docs")
	})

	t.Run("falls back to ~/Documents", func(t *testing.T) {
		t.Setenv("XDG_DOCUMENTS_DIR", "")
		withHome(t, "/home/tester")
		got, err := DocumentsDir()
		assert.NilError(t, err)
		assert.Equal(t, got, filepath.Join("/home/tester", "Documents"))
	})
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DOCUMENTS_DIR", "")
	withHome(t, "/home/tester")

	got, err := DefaultDataDir()
	assert.NilError(t, err)
	assert.Equal(t, got, filepath.Join("/home/tester", "Documents", "stash"))
	assert.Equal(t, BackupsDir(got), filepath.Join("/home/tester", "Documents", "stash", "backups"))
}

func TestDefaultConfigDir(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		assert.NilError(t, err)
		assert.Equal(t, got, filepath.Join("/tmp/xdg-config", "stash"))
	})

	t.Run("falls back to ~/.config", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		withHome(t, "/home/tester")
		got, err := DefaultConfigDir()
		assert.NilError(t, err)
		assert.Equal(t, got, filepath.Join("/home/tester", ".config", "stash"))
	})
}

func TestFileNames(t *testing.T) {
	if debugBuild {
		assert.Equal(t, BookmarksFileName(), "bookmarks_debug.json")
		assert.Equal(t, DatabaseFileName(), "bookmarks_debug.db")
		return
	}
	assert.Equal(t, BookmarksFileName(), "bookmarks.json")
	assert.Equal(t, DatabaseFileName(), "bookmarks.db")
}
