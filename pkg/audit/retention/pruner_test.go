package retention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"arbiter-hq/arbiter/pkg/audit"
	"arbiter-hq/arbiter/pkg/audit/storage"
)

func seedStore(t *testing.T, store storage.Store, n int, base time.Time) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		r := &audit.DecisionRecord{
			ID:        fmt.Sprintf("rec-%03d", i),
			RequestID: fmt.Sprintf("req-%03d", i),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Action:    "read",
			Decision:  "permit",
		}
		if err := store.Store(ctx, r); err != nil {
			t.Fatalf("Store() error: %v", err)
		}
	}
}

func TestPruner_PruneByAge(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	// Five ancient records, five from the last hours.
	seedStore(t, store, 5, time.Now().AddDate(0, 0, -120))
	seedStore2 := func() {
		for i := 0; i < 5; i++ {
			r := &audit.DecisionRecord{
				ID:        fmt.Sprintf("new-%03d", i),
				Timestamp: time.Now().Add(-time.Duration(i) * time.Hour),
				Action:    "read",
				Decision:  "permit",
			}
			if err := store.Store(ctx, r); err != nil {
				t.Fatalf("Store() error: %v", err)
			}
		}
	}
	seedStore2()

	pruner := NewPruner(store, &Config{RetentionDays: 90})
	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if deleted != 5 {
		t.Errorf("Prune() = %d, want 5", deleted)
	}

	count, _ := store.Count(ctx, nil)
	if count != 5 {
		t.Errorf("Count() = %d, want 5", count)
	}
}

func TestPruner_PruneByCount(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	seedStore(t, store, 10, time.Now().Add(-10*time.Hour))

	// Age limit disabled; only the count cap applies.
	pruner := NewPruner(store, &Config{RetentionDays: 0, MaxRecords: 4})
	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if deleted != 6 {
		t.Errorf("Prune() = %d, want 6", deleted)
	}

	records, _ := store.Query(context.Background(), nil)
	if len(records) != 4 {
		t.Fatalf("kept %d records, want 4", len(records))
	}
	// The newest records survive.
	for _, r := range records {
		if r.ID < "rec-006" {
			t.Errorf("old record %s survived count pruning", r.ID)
		}
	}
}

func TestPruner_NothingToPrune(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	seedStore(t, store, 3, time.Now().Add(-time.Hour))

	pruner := NewPruner(store, &Config{RetentionDays: 90, MaxRecords: 100})
	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() = %d, want 0", deleted)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	pruner := NewPruner(store, &Config{RetentionDays: 1, PruneSchedule: "0 3 * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !pruner.scheduler.IsRunning() {
		t.Error("scheduler not running after Start()")
	}
	if pruner.NextPruning() == nil {
		t.Error("NextPruning() = nil, want scheduled time")
	}

	pruner.Stop()
	if pruner.scheduler.IsRunning() {
		t.Error("scheduler still running after Stop()")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	pruner := NewPruner(store, &Config{PruneSchedule: "every five minutes"})
	if err := pruner.Start(context.Background()); err == nil {
		t.Error("Start() with invalid cron expression succeeded, want error")
	}
}

func TestScheduler_EmptyScheduleDisabled(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	pruner := NewPruner(store, &Config{PruneSchedule: ""})
	if err := pruner.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if pruner.scheduler.IsRunning() {
		t.Error("scheduler running with empty schedule")
	}
}
