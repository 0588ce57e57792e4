package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"arbiter-hq/arbiter/pkg/audit"
)

func seedRecords(t *testing.T, store Store, n int, base time.Time) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		r := &audit.DecisionRecord{
			ID:              fmt.Sprintf("rec-%03d", i),
			RequestID:       fmt.Sprintf("req-%03d", i),
			Timestamp:       base.Add(time.Duration(i) * time.Minute),
			SubjectID:       "alice",
			ObjectID:        "doc-1",
			Action:          "read",
			Decision:        "permit",
			MatchedPolicyID: "p1",
			Reason:          "readers may read",
			EvaluationTime:  25 * time.Microsecond,
		}
		if i%2 == 1 {
			r.SubjectID = "bob"
			r.Decision = "deny"
			r.MatchedPolicyID = ""
		}
		if err := store.Store(ctx, r); err != nil {
			t.Fatalf("Store() error: %v", err)
		}
	}
}

func TestMemoryStore_QueryFilters(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	seedRecords(t, store, 10, base)

	ctx := context.Background()

	tests := []struct {
		name  string
		query *Query
		want  int
	}{
		{name: "no filters", query: nil, want: 10},
		{name: "by subject", query: &Query{SubjectID: "alice"}, want: 5},
		{name: "by decision", query: &Query{Decision: "deny"}, want: 5},
		{name: "by policy", query: &Query{MatchedPolicyID: "p1"}, want: 5},
		{name: "by action", query: &Query{Action: "read"}, want: 10},
		{name: "no matches", query: &Query{Action: "delete"}, want: 0},
		{name: "limit", query: &Query{Limit: 3}, want: 3},
		{name: "offset past end", query: &Query{Offset: 50}, want: 0},
		{
			name: "time window",
			query: &Query{
				StartTime: timePtr(base.Add(2 * time.Minute)),
				EndTime:   timePtr(base.Add(4 * time.Minute)),
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := store.Query(ctx, tt.query)
			if err != nil {
				t.Fatalf("Query() error: %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("Query() returned %d records, want %d", len(records), tt.want)
			}
		})
	}
}

func TestMemoryStore_QueryNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	seedRecords(t, store, 5, base)

	records, err := store.Query(context.Background(), nil)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Timestamp.After(records[i-1].Timestamp) {
			t.Fatalf("records not sorted newest first at index %d", i)
		}
	}
}

func TestMemoryStore_DeleteBefore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	seedRecords(t, store, 10, base)

	ctx := context.Background()
	deleted, err := store.DeleteBefore(ctx, base.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("DeleteBefore() error: %v", err)
	}
	if deleted != 5 {
		t.Errorf("DeleteBefore() = %d, want 5", deleted)
	}

	count, _ := store.Count(ctx, nil)
	if count != 5 {
		t.Errorf("Count() = %d, want 5", count)
	}
}

func TestMemoryStore_DeleteOldest(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	seedRecords(t, store, 10, base)

	ctx := context.Background()
	deleted, err := store.DeleteOldest(ctx, 3)
	if err != nil {
		t.Fatalf("DeleteOldest() error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("DeleteOldest() = %d, want 3", deleted)
	}

	// The oldest three are gone; rec-003 is now the oldest survivor.
	records, _ := store.Query(ctx, nil)
	oldest := records[len(records)-1]
	if oldest.ID != "rec-003" {
		t.Errorf("oldest survivor = %s, want rec-003", oldest.ID)
	}

	// Deleting more than remain removes everything without error.
	deleted, err = store.DeleteOldest(ctx, 100)
	if err != nil {
		t.Fatalf("DeleteOldest() error: %v", err)
	}
	if deleted != 7 {
		t.Errorf("DeleteOldest() = %d, want 7", deleted)
	}
}

func TestMemoryStore_StoreAfterClose(t *testing.T) {
	store := NewMemoryStore()
	store.Close()

	err := store.Store(context.Background(), &audit.DecisionRecord{ID: "r1"})
	if err == nil {
		t.Error("Store() after Close() succeeded, want error")
	}
}

func timePtr(t time.Time) *time.Time { return &t }
