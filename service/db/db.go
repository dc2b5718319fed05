package db

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb/v2" // load duckdb driver
)

// ConnectDuckDB opens and returns a connection to DuckDB. An empty path
// yields an in-memory database.
func ConnectDuckDB(filePath string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// DuckDB allows a single writer per database file
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to DuckDB: %w", err)
	}

	return db, nil
}
