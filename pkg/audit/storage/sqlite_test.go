package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"arbiter-hq/arbiter/pkg/audit"
)

// createTempDB creates a temporary SQLite store for testing.
func createTempDB(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(&SQLiteConfig{
		Path:         dbPath,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}
	return store, dbPath
}

func TestSQLiteStore_Initialize(t *testing.T) {
	store, dbPath := createTempDB(t)
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSQLiteStore_StoreAndQuery(t *testing.T) {
	store, _ := createTempDB(t)
	defer store.Close()
	ctx := context.Background()

	record := &audit.DecisionRecord{
		ID:              "rec-1",
		RequestID:       "req-1",
		Timestamp:       time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		SubjectID:       "alice",
		ObjectID:        "doc-1",
		Action:          "edit",
		Decision:        "permit",
		MatchedPolicyID: "owner-edit",
		Reason:          "owners may edit",
		EvaluationTime:  120 * time.Microsecond,
	}
	if err := store.Store(ctx, record); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	records, err := store.Query(ctx, nil)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Query() returned %d records, want 1", len(records))
	}

	got := records[0]
	if got.ID != record.ID || got.RequestID != record.RequestID {
		t.Errorf("ids = %s/%s, want %s/%s", got.ID, got.RequestID, record.ID, record.RequestID)
	}
	if got.SubjectID != "alice" || got.ObjectID != "doc-1" || got.Action != "edit" {
		t.Errorf("identity fields = %+v", got)
	}
	if got.Decision != "permit" || got.MatchedPolicyID != "owner-edit" {
		t.Errorf("decision fields = %+v", got)
	}
	if got.Error != "" {
		t.Errorf("Error = %q, want empty", got.Error)
	}
	if got.EvaluationTime != 120*time.Microsecond {
		t.Errorf("EvaluationTime = %v, want 120µs", got.EvaluationTime)
	}
	if !got.Timestamp.Equal(record.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, record.Timestamp)
	}
}

func TestSQLiteStore_ErrorRoundTrip(t *testing.T) {
	store, _ := createTempDB(t)
	defer store.Close()
	ctx := context.Background()

	record := &audit.DecisionRecord{
		ID:        "rec-err",
		RequestID: "req-err",
		Timestamp: time.Now().UTC(),
		Action:    "edit",
		Decision:  "deny",
		Reason:    "evaluation failed",
		Error:     `policy "broken": unknown operator "startsWith"`,
	}
	if err := store.Store(ctx, record); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	records, err := store.Query(ctx, &Query{Decision: "deny"})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(records) != 1 || records[0].Error != record.Error {
		t.Errorf("round-tripped error = %+v", records)
	}
}

func TestSQLiteStore_QueryFilters(t *testing.T) {
	store, _ := createTempDB(t)
	defer store.Close()
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	seedRecords(t, store, 10, base)

	ctx := context.Background()

	tests := []struct {
		name  string
		query *Query
		want  int
	}{
		{name: "all", query: nil, want: 10},
		{name: "by subject", query: &Query{SubjectID: "bob"}, want: 5},
		{name: "by decision", query: &Query{Decision: "permit"}, want: 5},
		{name: "by policy", query: &Query{MatchedPolicyID: "p1"}, want: 5},
		{name: "limit and offset", query: &Query{Limit: 4, Offset: 8}, want: 2},
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

func TestSQLiteStore_Retention(t *testing.T) {
	store, _ := createTempDB(t)
	defer store.Close()
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	seedRecords(t, store, 10, base)

	ctx := context.Background()

	deleted, err := store.DeleteBefore(ctx, base.Add(3*time.Minute))
	if err != nil {
		t.Fatalf("DeleteBefore() error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("DeleteBefore() = %d, want 3", deleted)
	}

	deleted, err = store.DeleteOldest(ctx, 2)
	if err != nil {
		t.Fatalf("DeleteOldest() error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteOldest() = %d, want 2", deleted)
	}

	count, err := store.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 5 {
		t.Errorf("Count() = %d, want 5", count)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	store, dbPath := createTempDB(t)
	seedRecords(t, store, 3, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// Reopening an existing database keeps data and schema version.
	reopened, err := NewSQLiteStore(&SQLiteConfig{Path: dbPath, MaxOpenConns: 2, MaxIdleConns: 1, WALMode: true, BusyTimeout: time.Second})
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(context.Background(), nil)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 3 {
		t.Errorf("Count() after reopen = %d, want 3", count)
	}
}
