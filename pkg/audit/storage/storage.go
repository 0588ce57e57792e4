package storage

import (
	"context"
	"time"

	"arbiter-hq/arbiter/pkg/audit"
)

// Query contains filters for retrieving decision records. Zero-valued
// fields are ignored.
type Query struct {
	// StartTime filters records at or after this time.
	StartTime *time.Time

	// EndTime filters records at or before this time.
	EndTime *time.Time

	// SubjectID filters by subject.
	SubjectID string

	// Action filters by requested action.
	Action string

	// Decision filters by effect ("permit" or "deny").
	Decision string

	// MatchedPolicyID filters by the deciding policy.
	MatchedPolicyID string

	// Limit caps the number of records returned. Default: 100.
	Limit int

	// Offset skips this many records.
	Offset int
}

// Store is the full storage surface: the engine-facing Sink plus the
// query and retention operations the pruner needs.
type Store interface {
	audit.Sink

	// Query retrieves records matching the filters, newest first.
	Query(ctx context.Context, q *Query) ([]*audit.DecisionRecord, error)

	// Count returns the number of records matching the filters.
	Count(ctx context.Context, q *Query) (int64, error)

	// DeleteBefore removes records with a timestamp strictly before
	// cutoff and returns the number removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes the n oldest records and returns the number
	// removed.
	DeleteOldest(ctx context.Context, n int64) (int64, error)
}
