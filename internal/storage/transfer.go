package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/stash/internal/model"
)

// backupTimeLayout matches %Y-%m-%d_%H-%M-%S.
const backupTimeLayout = "2006-01-02_15-04-05"

// Export writes the store to path in the given format, replacing any
// existing file.
func Export(store *model.Store, path string, format Format) error {
	data, err := Encode(store, format)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("exporting to %s: %w", path, err)
	}
	return nil
}

// checkpointer is implemented by backends that buffer writes outside the
// primary file and can flush them on request.
type checkpointer interface {
	Checkpoint() error
}

// BackupPath returns the backup file path for primary taken at now.
func BackupPath(primary string, now time.Time) string {
	name := fmt.Sprintf("bookmarks_%s%s", now.Format(backupTimeLayout), filepath.Ext(primary))
	return filepath.Join(BackupsDir(filepath.Dir(primary)), name)
}

// Backup copies the primary file of s into the backups directory next to it.
// Returns an empty path and no error if there is no primary file yet.
func Backup(s Storage, now time.Time) (string, error) {
	if c, ok := s.(checkpointer); ok {
		if err := c.Checkpoint(); err != nil {
			return "", fmt.Errorf("checkpoint before backup: %w", err)
		}
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", s.Path(), err)
	}

	dest, err := unusedPath(BackupPath(s.Path(), now))
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(dest, data, 0644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return dest, nil
}

// unusedPath returns path, or path with a "_N" suffix before the extension
// when path is already taken, so backups made within the same second are
// all kept.
func unusedPath(path string) (string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	candidate := path
	for n := 1; ; n++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
}

// WriteFile atomically replaces path with data. It is used for exports that
// are not produced by Encode, such as Netscape HTML.
func WriteFile(path string, data []byte) error {
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
