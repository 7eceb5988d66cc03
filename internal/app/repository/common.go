package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

// CommonDB provides shared database functionality
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case "postgres":
		placeholders = func(n int) string { return "$" + strconv.Itoa(n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
	}
}

// DB returns the underlying connection pool
func (c *CommonDB) DB() *sql.DB {
	return c.db
}

// Close closes the database
func (c *CommonDB) Close() error {
	return c.db.Close()
}

// bind replaces each ? in query with the dialect's placeholder
func (c *CommonDB) bind(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(c.placeholders(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CheckIfFileProcessed checks if a file has been transcribed successfully
func (c *CommonDB) CheckIfFileProcessed(fileName string) (int64, error) {
	query := c.bind(`SELECT id FROM runs WHERE file_name = ? AND has_error = ? ORDER BY id DESC LIMIT 1`)

	var id int64
	err := c.db.QueryRow(query, fileName, false).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("check processed file: %w", err)
	}
	return id, nil
}

// RecordToDB inserts a run and its segments in one transaction
func (c *CommonDB) RecordToDB(run *model.TranscriptionRun) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := c.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertRun := c.bind(`INSERT INTO runs (run_id, file_name, source_path, audio_path, model, language,
		audio_duration, window_count, full_text, has_error, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	var id int64
	err = tx.QueryRow(insertRun,
		run.RunID, run.FileName(), run.SourcePath, run.AudioPath, run.Model, run.Language,
		run.AudioDuration, run.WindowCount, run.FullText, run.HasError, run.ErrorMessage, run.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	insertSegment := c.bind(`INSERT INTO segments (run_id, position, start_seconds, end_seconds, speaker, text)
		VALUES (?, ?, ?, ?, ?, ?)`)
	for i, s := range run.Segments {
		if _, err := tx.Exec(insertSegment, id, i, s.StartSeconds, s.EndSeconds, s.Speaker, s.Text); err != nil {
			return 0, fmt.Errorf("insert segment %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	run.ID = id
	return id, nil
}

const runColumns = `id, run_id, source_path, audio_path, model, language, audio_duration,
	window_count, full_text, has_error, error_message, created_at`

func scanRun(scanner interface{ Scan(dest ...any) error }) (model.TranscriptionRun, error) {
	var r model.TranscriptionRun
	err := scanner.Scan(&r.ID, &r.RunID, &r.SourcePath, &r.AudioPath, &r.Model, &r.Language, &r.AudioDuration,
		&r.WindowCount, &r.FullText, &r.HasError, &r.ErrorMessage, &r.CreatedAt)
	return r, err
}

// ListRuns returns the most recent runs, newest first
func (c *CommonDB) ListRuns(limit int) ([]model.TranscriptionRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := c.bind(`SELECT ` + runColumns + ` FROM runs ORDER BY id DESC LIMIT ?`)

	rows, err := c.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	runs := make([]model.TranscriptionRun, 0)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return runs, nil
}

// GetRun returns one run with its segments
func (c *CommonDB) GetRun(id int64) (*model.TranscriptionRun, error) {
	query := c.bind(`SELECT ` + runColumns + ` FROM runs WHERE id = ?`)

	r, err := scanRun(c.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("run", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, fmt.Errorf("db scan failed: %w", err)
	}

	segQuery := c.bind(`SELECT start_seconds, end_seconds, speaker, text FROM segments WHERE run_id = ? ORDER BY position`)
	rows, err := c.db.Query(segQuery, id)
	if err != nil {
		return nil, fmt.Errorf("query segments failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s model.Segment
		if err := rows.Scan(&s.StartSeconds, &s.EndSeconds, &s.Speaker, &s.Text); err != nil {
			return nil, fmt.Errorf("segment scan failed: %w", err)
		}
		r.Segments = append(r.Segments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return &r, nil
}
