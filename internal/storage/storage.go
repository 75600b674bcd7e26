package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/stash/internal/model"
)

// Storage defines the interface for persisting bookmarks.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
	Path() string
	Close() error
}

// JSONStorage implements Storage using a single JSON file.
type JSONStorage struct {
	path   string
	format Format
}

// NewJSONStorage creates a new JSONStorage with the given file path.
// The format only affects writes; reads accept either encoding.
func NewJSONStorage(path string, format Format) *JSONStorage {
	if format == "" {
		format = FormatOrdered
	}
	return &JSONStorage{path: path, format: format}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Format returns the encoding used for writes.
func (s *JSONStorage) Format() Format {
	return s.format
}

// Load reads the store from the JSON file.
// Returns an empty store if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Store, error) {
	store, err := LoadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.NewStore(), nil
	}
	return store, err
}

// Save overwrites the JSON file with the full store.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(store *model.Store) error {
	data, err := Encode(store, s.format)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("saving %s: %w", s.path, err)
	}
	return nil
}

// Close implements Storage. JSON storage holds no open resources.
func (s *JSONStorage) Close() error {
	return nil
}

// LoadFile decodes the bookmarks document at path.
// A missing file is reported as an error wrapping os.ErrNotExist.
func LoadFile(path string) (*model.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	store, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return store, nil
}

// OpenStorage opens the backend selected in the config.
func OpenStorage(cfg *Config) (Storage, error) {
	switch cfg.Backend {
	case BackendSQLite:
		return NewSQLiteStorage(filepath.Join(cfg.DataDir, DatabaseFileName()))
	case BackendJSON, "":
		format, err := ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		return NewJSONStorage(filepath.Join(cfg.DataDir, BookmarksFileName()), format), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
