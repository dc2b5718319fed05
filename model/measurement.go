package model

import "time"

// Measurement is one normalized value decoded from a BenchVue data row.
// Duplicates carry no identity: two measurements with equal fields are
// indistinguishable, which is why the tracker must never re-read a byte range.
type Measurement struct {
	Timestamp string  `json:"timestamp"`
	Source    string  `json:"source"`
	Channel   string  `json:"channel"`
	Value     float64 `json:"value"`
	// Extra is the basename of the file the value came from.
	Extra string `json:"extra"`
}

// RunInfo identifies one benchpipe process run in the runs table.
type RunInfo struct {
	RunID    string    `json:"run_id"`
	Started  time.Time `json:"started"`
	WatchDir string    `json:"watch_dir"`
	Backfill bool      `json:"backfill"`
}
