package repository

import (
	"database/sql"
	"fmt"

	"github.com/lemslab/benchpipe/model"
)

// CreateSamplesTables creates the samples and runs tables if needed. The
// samples table enforces no uniqueness; at-most-once delivery is the
// watcher's job, not the schema's.
func CreateSamplesTables(db *sql.DB) error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS samples_id_seq`,
		`CREATE TABLE IF NOT EXISTS samples (
			id BIGINT DEFAULT nextval('samples_id_seq'),
			timestamp VARCHAR NOT NULL,
			source VARCHAR NOT NULL,
			channel VARCHAR NOT NULL,
			value DOUBLE,
			extra VARCHAR
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_timestamp ON samples(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_source ON samples(source)`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id VARCHAR PRIMARY KEY,
			started TIMESTAMP,
			watch_dir VARCHAR,
			backfill BOOLEAN
		)`,
	}
	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create benchpipe tables: %w", err)
		}
	}
	return nil
}

// InsertRun records one process start in the runs table.
func InsertRun(db *sql.DB, run model.RunInfo) error {
	_, err := db.Exec(
		`INSERT INTO runs (run_id, started, watch_dir, backfill) VALUES (?, ?, ?, ?)`,
		run.RunID, run.Started, run.WatchDir, run.Backfill,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run row: %w", err)
	}
	return nil
}

// InsertSamples appends a batch of measurements inside one transaction.
func InsertSamples(db *sql.DB, measurements []*model.Measurement) error {
	if len(measurements) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin samples transaction: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO samples (timestamp, source, channel, value, extra) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare samples insert: %w", err)
	}
	defer stmt.Close()
	for _, m := range measurements {
		if _, err := stmt.Exec(m.Timestamp, m.Source, m.Channel, m.Value, m.Extra); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert sample: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit samples: %w", err)
	}
	return nil
}

// CountSamples returns the number of rows in the samples table.
func CountSamples(db *sql.DB) (int64, error) {
	var n int64
	if err := db.QueryRow(`SELECT count(*) FROM samples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count samples: %w", err)
	}
	return n, nil
}
