package service

import (
	"database/sql"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lemslab/benchpipe/model"
	"github.com/lemslab/benchpipe/repository"
	"github.com/lemslab/benchpipe/utils/promise"
)

// IngestService is the durable sink: it buffers measurements coming off
// the watcher stream and commits them in batches, either when the buffer
// reaches flushRows or when the flush ticker fires.
type IngestService struct {
	db           *sql.DB
	flushRows    int
	flushTimeout time.Duration

	mtx      sync.Mutex
	buffer   []*model.Measurement
	promises []*promise.Promise[int32]

	// flushMtx keeps whole flushes serialized so batches commit in the
	// order they were cut, preserving per-file line order in the table.
	flushMtx sync.Mutex

	ticker   *time.Ticker
	working  uint32
	stopped  chan struct{}
	inserted int64
}

func NewIngestService(db *sql.DB, flushRows int, flushTimeout time.Duration) *IngestService {
	return &IngestService{
		db:           db,
		flushRows:    flushRows,
		flushTimeout: flushTimeout,
	}
}

// Store buffers one measurement. It flushes inline when the buffer is full
// so that the caller's delivery order is preserved within the batch.
func (s *IngestService) Store(m *model.Measurement) {
	s.mtx.Lock()
	s.buffer = append(s.buffer, m)
	full := len(s.buffer) >= s.flushRows
	s.mtx.Unlock()
	if full {
		s.flush()
	}
}

// Flush forces a commit of everything buffered so far and returns a
// promise resolved with the number of rows written.
func (s *IngestService) Flush() *promise.Promise[int32] {
	p := promise.New[int32]()
	s.mtx.Lock()
	s.promises = append(s.promises, p)
	s.mtx.Unlock()
	s.flush()
	return p
}

func (s *IngestService) flush() {
	s.flushMtx.Lock()
	defer s.flushMtx.Unlock()
	s.mtx.Lock()
	batch := s.buffer
	promises := s.promises
	s.buffer = nil
	s.promises = nil
	s.mtx.Unlock()

	err := repository.InsertSamples(s.db, batch)
	if err != nil {
		log.Printf("benchpipe: flushing %d samples: %v", len(batch), err)
	} else {
		atomic.AddInt64(&s.inserted, int64(len(batch)))
	}
	for _, p := range promises {
		p.Done(int32(len(batch)), err)
	}
}

// Run starts the periodic flusher. Calling Run on a running service is a
// no-op; a stopped service can be started again.
func (s *IngestService) Run() {
	if !atomic.CompareAndSwapUint32(&s.working, 0, 1) {
		return
	}
	s.ticker = time.NewTicker(s.flushTimeout)
	s.stopped = make(chan struct{})
	go func(ticker *time.Ticker, stopped chan struct{}) {
		for {
			select {
			case <-stopped:
				return
			case <-ticker.C:
				s.flush()
			}
		}
	}(s.ticker, s.stopped)
}

// Stop halts the flusher and commits whatever is still buffered, so that
// records decoded before a shutdown request are not lost.
func (s *IngestService) Stop() {
	if !atomic.CompareAndSwapUint32(&s.working, 1, 0) {
		return
	}
	s.ticker.Stop()
	close(s.stopped)
	s.flush()
}

// Inserted returns the number of rows committed so far.
func (s *IngestService) Inserted() int64 {
	return atomic.LoadInt64(&s.inserted)
}
