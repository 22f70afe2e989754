// Package sqlite implements the delivery journal on a local SQLite
// database. The journal is an audit log of attempts and outcomes; it is
// never used to replay failed deliveries.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"cliprelay/internal/domain"
	"cliprelay/internal/ports"
)

// Journal implements ports.Journal.
type Journal struct {
	db   *sql.DB
	path string
}

var _ ports.Journal = (*Journal)(nil)

// OpenJournal opens the journal database at path, creating the file and
// schema as needed.
func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// Pragmas + schema in a single batch.
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS deliveries (
			id         TEXT PRIMARY KEY,
			tag        TEXT NOT NULL,
			section    TEXT NOT NULL,
			text       TEXT NOT NULL,
			who        TEXT NOT NULL,
			status     TEXT NOT NULL,
			detail     TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_deliveries_created ON deliveries(created_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup journal schema: %w", err)
	}

	return &Journal{db: db, path: path}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record appends one delivery attempt.
func (j *Journal) Record(entry domain.ClassifiedEntry, who string, outcome domain.Outcome) error {
	_, err := j.db.Exec(`
		INSERT INTO deliveries (id, tag, section, text, who, status, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.NewString(),
		entry.Tag,
		entry.Section,
		entry.Text,
		who,
		outcome.Status.String(),
		outcome.Detail,
		time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *Journal) Recent(limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(`
		SELECT id, tag, section, text, who, status, detail, created_at
		FROM deliveries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			rec       domain.Record
			status    string
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Tag, &rec.Section, &rec.Text, &rec.Who, &status, &rec.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		if rec.Status, err = domain.ParseOutcomeStatus(status); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
