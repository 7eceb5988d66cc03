package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"speech2text/internal/app/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             BIGSERIAL PRIMARY KEY,
	run_id         TEXT             NOT NULL,
	file_name      TEXT             NOT NULL,
	source_path    TEXT             NOT NULL,
	audio_path     TEXT             NOT NULL DEFAULT '',
	model          TEXT             NOT NULL,
	language       TEXT             NOT NULL DEFAULT '',
	audio_duration DOUBLE PRECISION NOT NULL DEFAULT 0,
	window_count   INTEGER          NOT NULL DEFAULT 0,
	full_text      TEXT             NOT NULL DEFAULT '',
	has_error      BOOLEAN          NOT NULL DEFAULT FALSE,
	error_message  TEXT             NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ      NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_file_name ON runs (file_name);
CREATE TABLE IF NOT EXISTS segments (
	run_id        BIGINT           NOT NULL REFERENCES runs (id) ON DELETE CASCADE,
	position      INTEGER          NOT NULL,
	start_seconds DOUBLE PRECISION NOT NULL,
	end_seconds   DOUBLE PRECISION NOT NULL,
	speaker       TEXT             NOT NULL DEFAULT '',
	text          TEXT             NOT NULL,
	PRIMARY KEY (run_id, position)
);`

// PostgresDB stores run history in PostgreSQL.
type PostgresDB struct {
	*repository.CommonDB
}

// NewPostgresDB opens a connection pool. No connection is made until first use.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	return newPostgresDB(db), nil
}

func newPostgresDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{CommonDB: repository.NewCommonDB(db, "postgres")}
}

// EnsureSchema creates the tables when they do not exist.
func (pdb *PostgresDB) EnsureSchema() error {
	if _, err := pdb.DB().Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}
