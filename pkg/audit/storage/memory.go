package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"arbiter-hq/arbiter/pkg/audit"
)

var errClosed = errors.New("store is closed")

// MemoryStore keeps decision records in memory. It is intended for
// tests and ephemeral deployments; records are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*audit.DecisionRecord
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Store appends a copy of the record.
func (m *MemoryStore) Store(_ context.Context, record *audit.DecisionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return audit.NewStorageError("memory", "store", errClosed)
	}

	clone := *record
	m.records = append(m.records, &clone)
	return nil
}

// Query retrieves matching records, newest first.
func (m *MemoryStore) Query(_ context.Context, q *Query) ([]*audit.DecisionRecord, error) {
	if q == nil {
		q = &Query{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*audit.DecisionRecord, 0)
	for _, r := range m.records {
		if matches(r, q) {
			clone := *r
			matched = append(matched, &clone)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []*audit.DecisionRecord{}, nil
		}
		matched = matched[q.Offset:]
	}

	limit := 100
	if q.Limit > 0 {
		limit = q.Limit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

// Count returns the number of matching records.
func (m *MemoryStore) Count(_ context.Context, q *Query) (int64, error) {
	if q == nil {
		q = &Query{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, r := range m.records {
		if matches(r, q) {
			count++
		}
	}
	return count, nil
}

// DeleteBefore removes records with a timestamp strictly before cutoff.
func (m *MemoryStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	var deleted int64
	for _, r := range m.records {
		if r.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

// DeleteOldest removes the n oldest records.
func (m *MemoryStore) DeleteOldest(_ context.Context, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.records, func(i, j int) bool {
		return m.records[i].Timestamp.Before(m.records[j].Timestamp)
	})

	if n > int64(len(m.records)) {
		n = int64(len(m.records))
	}
	m.records = m.records[n:]
	return n, nil
}

// Close marks the store closed; subsequent writes fail.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func matches(r *audit.DecisionRecord, q *Query) bool {
	if q.StartTime != nil && r.Timestamp.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && r.Timestamp.After(*q.EndTime) {
		return false
	}
	if q.SubjectID != "" && r.SubjectID != q.SubjectID {
		return false
	}
	if q.Action != "" && r.Action != q.Action {
		return false
	}
	if q.Decision != "" && r.Decision != q.Decision {
		return false
	}
	if q.MatchedPolicyID != "" && r.MatchedPolicyID != q.MatchedPolicyID {
		return false
	}
	return true
}
