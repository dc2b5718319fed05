package watcher

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/lemslab/benchpipe/config"
	"github.com/lemslab/benchpipe/model"
)

// FileStatus is a point-in-time snapshot of one tracked file, served by the
// status API.
type FileStatus struct {
	Path     string `json:"path"`
	Source   string `json:"source"`
	State    string `json:"state"`
	Offset   int64  `json:"offset"`
	Channels int    `json:"channels"`
}

// Watcher polls a BenchVue export directory and streams every measurement
// appended to the files in it. One goroutine owns the tracked-file table;
// only the immutable status snapshot crosses goroutines.
type Watcher struct {
	fs       afero.Fs
	dir      string
	backfill bool
	interval time.Duration
	aliases  config.AliasMap

	tracked map[string]*trackedFile

	mtx    sync.RWMutex
	status []FileStatus
}

func NewWatcher(dir string, backfill bool, interval time.Duration, aliases config.AliasMap) *Watcher {
	if interval <= 0 {
		// a zero or negative configured interval would panic time.NewTicker
		interval = time.Second
	}
	return &Watcher{
		fs:       afero.NewOsFs(),
		dir:      dir,
		backfill: backfill,
		interval: interval,
		aliases:  aliases,
		tracked:  make(map[string]*trackedFile),
	}
}

// Watch polls the directory until ctx is cancelled and returns the stream
// of decoded measurements. Records already decoded when cancellation hits
// are still delivered before the channel closes, so the caller must drain
// the channel until it closes.
func (w *Watcher) Watch(ctx context.Context) <-chan *model.Measurement {
	out := make(chan *model.Measurement)
	go func() {
		defer close(out)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			w.cycle(ctx, out)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return out
}

// cycle runs one scan-and-read pass: discover new files, drop vanished
// ones, then poll every tracked file in path order. A failure on one file
// never affects the others.
func (w *Watcher) cycle(ctx context.Context, out chan<- *model.Measurement) {
	candidates, err := Scan(w.fs, w.dir)
	if err != nil {
		log.Printf("benchpipe: scanning %s: %v", w.dir, err)
		return
	}

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		seen[c.Path] = true
		if _, ok := w.tracked[c.Path]; ok {
			continue
		}
		w.tracked[c.Path] = newTrackedFile(w.fs, c.Path, c.Source, w.backfill)
		log.Printf("benchpipe: tracking %s (source %q)", c.Path, c.Source)
	}
	for path := range w.tracked {
		if seen[path] {
			continue
		}
		if exists, _ := afero.Exists(w.fs, path); !exists {
			log.Printf("benchpipe: dropping vanished file %s", path)
			delete(w.tracked, path)
		}
	}

	paths := make([]string, 0, len(w.tracked))
	for path := range w.tracked {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		select {
		case <-ctx.Done():
			w.publishStatus()
			return
		default:
		}
		t := w.tracked[path]
		measurements, err := t.poll(w.fs, w.aliases)
		if err != nil {
			log.Printf("benchpipe: polling %s: %v", path, err)
			continue
		}
		for _, m := range measurements {
			out <- m
		}
	}
	w.publishStatus()
}

func (w *Watcher) publishStatus() {
	status := make([]FileStatus, 0, len(w.tracked))
	for _, t := range w.tracked {
		status = append(status, FileStatus{
			Path:     t.path,
			Source:   t.source,
			State:    t.state.String(),
			Offset:   t.offset,
			Channels: len(t.channels),
		})
	}
	sort.Slice(status, func(i, j int) bool { return status[i].Path < status[j].Path })
	w.mtx.Lock()
	w.status = status
	w.mtx.Unlock()
}

// Snapshot returns the tracked-file table as of the last completed cycle.
func (w *Watcher) Snapshot() []FileStatus {
	w.mtx.RLock()
	defer w.mtx.RUnlock()
	return w.status
}
