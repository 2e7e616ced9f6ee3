package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DB wraps sql.DB for the run-history store.
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// New opens (or creates) the SQLite database at path.
func New(path string, logger *zap.Logger) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{DB: sqlDB, logger: logger}
	if err := db.initSchema(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Info("Run-history database opened", zap.String("path", path))
	return db, nil
}

// initSchema creates the run-history tables when missing.
func (db *DB) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source_dir  TEXT NOT NULL,
	output_dir  TEXT NOT NULL,
	files       INTEGER NOT NULL,
	records     INTEGER NOT NULL,
	generated   INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
