package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/stash/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Checkpoint folds the write-ahead log into the main database file so a
// byte copy of Path is complete.
func (s *SQLiteStorage) Checkpoint() error {
	_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS topics (
			position INTEGER PRIMARY KEY NOT NULL,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS links (
			topic_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			preview TEXT,
			PRIMARY KEY (topic_position, position),
			FOREIGN KEY (topic_position) REFERENCES topics(position) ON DELETE CASCADE
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds a url index for duplicate and health-check lookups.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		CREATE INDEX IF NOT EXISTS idx_links_url ON links(url);
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the store from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	rows, err := s.db.Query(`SELECT position, name FROM topics ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	store := model.NewStore()
	names := make(map[int]string)
	for rows.Next() {
		var position int
		var name string
		if err := rows.Scan(&position, &name); err != nil {
			return nil, err
		}
		names[position] = name
		store.AddTopic(model.NewTopic(name))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT topic_position, title, url, preview
		FROM links
		ORDER BY topic_position, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var topicPosition int
		var link model.Link
		var preview sql.NullString

		if err := rows.Scan(&topicPosition, &link.Title, &link.URL, &preview); err != nil {
			return nil, err
		}
		if preview.Valid {
			link.Preview = &preview.String
		}

		store.AddLink(model.NewTopic(names[topicPosition]), link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// Save replaces the database contents with the store.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(store *model.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM links"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM topics"); err != nil {
		return err
	}

	topicStmt, err := tx.Prepare(`INSERT INTO topics (position, name) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer topicStmt.Close()

	linkStmt, err := tx.Prepare(`
		INSERT INTO links (topic_position, position, title, url, preview)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer linkStmt.Close()

	for i, topic := range store.Topics() {
		if _, err := topicStmt.Exec(i, topic.Name); err != nil {
			return err
		}
		for j, link := range store.LinksFor(topic.Name) {
			if _, err := linkStmt.Exec(i, j, link.Title, link.URL, link.Preview); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
