package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lemslab/benchpipe/model"
	"github.com/lemslab/benchpipe/service/db"
)

func TestCreateAndInsert(t *testing.T) {
	dbConn, err := db.ConnectDuckDB("")
	if err != nil {
		t.Fatalf("failed to open in-memory DuckDB: %v", err)
	}
	defer dbConn.Close()

	if err := CreateSamplesTables(dbConn); err != nil {
		t.Fatal(err)
	}
	// idempotent
	if err := CreateSamplesTables(dbConn); err != nil {
		t.Fatal(err)
	}

	run := model.RunInfo{
		RunID:    uuid.New().String(),
		Started:  time.Now().UTC(),
		WatchDir: "/logs",
		Backfill: true,
	}
	if err := InsertRun(dbConn, run); err != nil {
		t.Fatal(err)
	}

	err = InsertSamples(dbConn, []*model.Measurement{
		{Timestamp: "12:00:00", Source: "iso", Channel: "Ch A", Value: 3.5, Extra: "f.csv"},
		{Timestamp: "12:00:01", Source: "40", Channel: "Ch B", Value: 4.25, Extra: "g.csv"},
		// duplicates are legal: no uniqueness constraint on samples
		{Timestamp: "12:00:00", Source: "iso", Channel: "Ch A", Value: 3.5, Extra: "f.csv"},
	})
	if err != nil {
		t.Fatal(err)
	}

	count, err := CountSamples(dbConn)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("expected 3 samples, got %d", count)
	}

	var value float64
	err = dbConn.QueryRow(
		`SELECT value FROM samples WHERE source = ? AND channel = ?`, "40", "Ch B").Scan(&value)
	if err != nil {
		t.Fatal(err)
	}
	if value != 4.25 {
		t.Fatalf("expected 4.25, got %v", value)
	}
}

func TestInsertSamplesEmptyBatch(t *testing.T) {
	dbConn, err := db.ConnectDuckDB("")
	if err != nil {
		t.Fatalf("failed to open in-memory DuckDB: %v", err)
	}
	defer dbConn.Close()
	if err := CreateSamplesTables(dbConn); err != nil {
		t.Fatal(err)
	}
	if err := InsertSamples(dbConn, nil); err != nil {
		t.Fatal(err)
	}
}
