package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lemslab/benchpipe/model"
	"github.com/lemslab/benchpipe/repository"
	"github.com/lemslab/benchpipe/service"
	"github.com/lemslab/benchpipe/service/db"
	"github.com/lemslab/benchpipe/watcher"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	dbConn, err := db.ConnectDuckDB("")
	if err != nil {
		t.Fatalf("failed to open in-memory DuckDB: %v", err)
	}
	t.Cleanup(func() { dbConn.Close() })
	if err := repository.CreateSamplesTables(dbConn); err != nil {
		t.Fatal(err)
	}
	return &Handler{
		Run: model.RunInfo{
			RunID:    "test-run",
			Started:  time.Now().UTC(),
			WatchDir: "/logs",
		},
		Watcher: watcher.NewWatcher("/logs", false, time.Second, nil),
		Ingest:  service.NewIngestService(dbConn, 100, time.Hour),
	}
}

func TestStatus(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()

	if err := h.Status(rec, httptest.NewRequest("GET", "/status", nil)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Run.RunID != "test-run" {
		t.Fatalf("unexpected run id %q", resp.Run.RunID)
	}
	if resp.Inserted != 0 {
		t.Fatalf("expected zero inserted, got %d", resp.Inserted)
	}
}

func TestFlush(t *testing.T) {
	h := newTestHandler(t)
	h.Ingest.Store(&model.Measurement{
		Timestamp: "12:00:00", Source: "iso", Channel: "Ch A", Value: 3.5, Extra: "f.csv",
	})

	rec := httptest.NewRecorder()
	if err := h.Flush(rec, httptest.NewRequest("POST", "/flush", nil)); err != nil {
		t.Fatal(err)
	}
	var resp map[string]int32
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["flushed"] != 1 {
		t.Fatalf("expected 1 flushed row, got %d", resp["flushed"])
	}
}

func TestPing(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	if err := h.Ping(rec, httptest.NewRequest("GET", "/ping", nil)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
