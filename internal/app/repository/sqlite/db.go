package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"speech2text/internal/app/repository"
	"speech2text/internal/app/util/files"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         TEXT    NOT NULL,
	file_name      TEXT    NOT NULL,
	source_path    TEXT    NOT NULL,
	audio_path     TEXT    NOT NULL DEFAULT '',
	model          TEXT    NOT NULL,
	language       TEXT    NOT NULL DEFAULT '',
	audio_duration REAL    NOT NULL DEFAULT 0,
	window_count   INTEGER NOT NULL DEFAULT 0,
	full_text      TEXT    NOT NULL DEFAULT '',
	has_error      INTEGER NOT NULL DEFAULT 0,
	error_message  TEXT    NOT NULL DEFAULT '',
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_file_name ON runs (file_name);
CREATE TABLE IF NOT EXISTS segments (
	run_id        INTEGER NOT NULL REFERENCES runs (id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	start_seconds REAL    NOT NULL,
	end_seconds   REAL    NOT NULL,
	speaker       TEXT    NOT NULL DEFAULT '',
	text          TEXT    NOT NULL,
	PRIMARY KEY (run_id, position)
);`

// SQLiteDB is the default run-history store.
type SQLiteDB struct {
	*repository.CommonDB
}

// NewSQLiteDB opens (creating if needed) the database at dbFilePath and
// applies the schema. ":memory:" gives a private in-memory database.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	if dbFilePath != ":memory:" {
		if err := files.EnsureDir(filepath.Dir(dbFilePath)); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps writes serialised and an in-memory database alive.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteDB{CommonDB: repository.NewCommonDB(db, "sqlite3")}, nil
}
