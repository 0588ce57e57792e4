package recorder

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"arbiter-hq/arbiter/pkg/audit"
	"arbiter-hq/arbiter/pkg/audit/storage"
)

func testRecord(id string) *audit.DecisionRecord {
	return &audit.DecisionRecord{
		ID:        id,
		RequestID: "req-" + id,
		Timestamp: time.Now(),
		SubjectID: "alice",
		Action:    "read",
		Decision:  "permit",
	}
}

func TestRecorder_EmitAndDrain(t *testing.T) {
	store := storage.NewMemoryStore()
	rec := New(store, nil)

	for i := 0; i < 10; i++ {
		rec.Emit(testRecord(fmt.Sprintf("r%d", i)))
	}

	// Close drains the buffer before shutting the sink.
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	count, err := store.Count(context.Background(), nil)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 10 {
		t.Errorf("stored %d records, want 10", count)
	}
	if rec.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", rec.Dropped())
	}
}

// blockingSink stalls writes until released, so tests can fill the
// buffer deterministically.
type blockingSink struct {
	release chan struct{}
	mu      sync.Mutex
	stored  int
}

func (s *blockingSink) Store(ctx context.Context, _ *audit.DecisionRecord) error {
	select {
	case <-s.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.mu.Lock()
	s.stored++
	s.mu.Unlock()
	return nil
}

func (s *blockingSink) Close() error { return nil }

func TestRecorder_DropsWhenBufferFull(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	rec := New(sink, &Config{BufferSize: 1, WriteTimeout: time.Second})

	// With the worker stalled, at most one record can be in flight and
	// one buffered; the rest must be dropped, not block the caller.
	for i := 0; i < 5; i++ {
		rec.Emit(testRecord(fmt.Sprintf("r%d", i)))
	}

	if rec.Dropped() < 3 {
		t.Errorf("Dropped() = %d, want at least 3", rec.Dropped())
	}

	close(sink.release)
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

func TestRecorder_SinkFailureDoesNotPropagate(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Close() // subsequent writes fail

	rec := New(store, &Config{BufferSize: 4, WriteTimeout: time.Second})
	rec.Emit(testRecord("r1"))

	// Emit never surfaces sink errors; Close reports only sink close.
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}
