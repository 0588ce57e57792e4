package recorder

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"arbiter-hq/arbiter/pkg/audit"
)

// Config contains configuration for the decision recorder.
type Config struct {
	// BufferSize is the async write channel capacity. Default: 1000.
	BufferSize int

	// WriteTimeout bounds a single storage write. Default: 5 seconds.
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		BufferSize:   1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder delivers decision records to a storage sink asynchronously.
// Emit never blocks the decision path: when the buffer is full the
// record is dropped and counted, because a slow audit backend must not
// slow or alter authorization outcomes.
type Recorder struct {
	storage audit.Sink
	config  *Config
	records chan *audit.DecisionRecord
	done    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64
	logger  *slog.Logger
}

// New creates a recorder over the given sink and starts its background
// writer.
func New(storage audit.Sink, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}

	r := &Recorder{
		storage: storage,
		config:  config,
		records: make(chan *audit.DecisionRecord, config.BufferSize),
		done:    make(chan struct{}),
		logger:  slog.Default().With("component", "audit.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("decision recorder started",
		"buffer_size", config.BufferSize,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// Emit enqueues a record for async writing. It never blocks.
func (r *Recorder) Emit(record *audit.DecisionRecord) {
	select {
	case r.records <- record:
	default:
		dropped := r.dropped.Add(1)
		r.logger.Error("audit buffer full, dropping decision record",
			"record_id", record.ID,
			"request_id", record.RequestID,
			"dropped_total", dropped,
		)
	}
}

// Dropped returns the number of records dropped because the buffer was
// full.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close drains pending records and shuts the recorder down.
func (r *Recorder) Close() error {
	close(r.done)
	r.wg.Wait()
	return r.storage.Close()
}

// worker drains the record channel and writes to storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.records:
			r.write(record)

		case <-r.done:
			// Drain whatever is buffered before exit.
			for {
				select {
				case record := <-r.records:
					r.write(record)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(record *audit.DecisionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to store decision record",
			"record_id", record.ID,
			"request_id", record.RequestID,
			"error", err,
		)
		return
	}

	r.logger.Debug("decision recorded",
		"record_id", record.ID,
		"request_id", record.RequestID,
		"decision", record.Decision,
	)
}
