package store

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"arbiter-hq/arbiter/pkg/abac/policy"
)

// entry pairs a policy with its registration sequence number, the
// stable tie-break when priorities are equal.
type entry struct {
	policy *policy.Policy
	seq    uint64
}

// Store is the thread-safe holder of the registered policy set.
type Store struct {
	mu      sync.Mutex // serializes writers
	entries []entry
	nextSeq uint64
	snap    atomic.Pointer[Snapshot]
}

// Snapshot is an immutable, point-in-time view of the policy set,
// sorted descending by priority with registration order breaking ties.
type Snapshot struct {
	policies []*policy.Policy
}

// Policies returns the sorted policy slice. The snapshot is immutable;
// callers must not modify the returned slice or the policies in it.
func (s *Snapshot) Policies() []*policy.Policy { return s.policies }

// Len returns the number of policies in the snapshot.
func (s *Snapshot) Len() int { return len(s.policies) }

// New creates an empty store.
func New() *Store {
	s := &Store{}
	s.snap.Store(&Snapshot{})
	return s
}

// Register validates and adds a single policy. On validation failure
// the store is unchanged and a *ValidationError describes every
// problem found.
func (s *Store) Register(p *policy.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate(p, s.entries); err != nil {
		return err
	}

	s.entries = append(s.entries, entry{policy: p, seq: s.nextSeq})
	s.nextSeq++
	s.publish()
	return nil
}

// Remove deletes the policy with the given id. Removing an unknown id
// is a validation failure.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.policy.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.publish()
			return nil
		}
	}
	return &ValidationError{PolicyID: id, Errors: []string{"policy not found"}}
}

// Replace atomically swaps the entire policy set, used for hot reload.
// Validation is all-or-nothing: if any policy is invalid, the current
// set stays published.
func (s *Store) Replace(policies []*policy.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]entry, 0, len(policies))
	for _, p := range policies {
		if err := s.validate(p, entries); err != nil {
			return err
		}
		entries = append(entries, entry{policy: p, seq: s.nextSeq})
		s.nextSeq++
	}

	s.entries = entries
	s.publish()
	return nil
}

// Snapshot returns the currently published view. Safe for arbitrarily
// many concurrent callers; never blocks on writers.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Len returns the number of registered policies.
func (s *Store) Len() int {
	return s.Snapshot().Len()
}

// IDs returns the ids of all registered policies in snapshot order.
func (s *Store) IDs() []string {
	snap := s.Snapshot()
	ids := make([]string, 0, snap.Len())
	for _, p := range snap.policies {
		ids = append(ids, p.ID)
	}
	return ids
}

// validate checks one candidate against the store invariants, treating
// pending as already-accepted peers (used by Replace for intra-batch
// duplicate detection).
func (s *Store) validate(p *policy.Policy, pending []entry) error {
	if p == nil {
		return &ValidationError{Errors: []string{"policy cannot be nil"}}
	}

	var problems []string
	if p.ID == "" {
		problems = append(problems, "policy id cannot be empty")
	}
	if !p.Effect.Valid() {
		problems = append(problems, fmt.Sprintf("unknown effect %q", p.Effect))
	}
	if p.ID != "" {
		for _, e := range pending {
			if e.policy.ID == p.ID {
				problems = append(problems, fmt.Sprintf("duplicate policy id %q", p.ID))
				break
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{PolicyID: p.ID, Errors: problems}
	}
	return nil
}

// publish rebuilds the sorted snapshot and swaps it in. Callers must
// hold s.mu.
func (s *Store) publish() {
	sorted := make([]entry, len(s.entries))
	copy(sorted, s.entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].policy.Priority != sorted[j].policy.Priority {
			return sorted[i].policy.Priority > sorted[j].policy.Priority
		}
		return sorted[i].seq < sorted[j].seq
	})

	policies := make([]*policy.Policy, len(sorted))
	for i, e := range sorted {
		policies[i] = e.policy
	}
	s.snap.Store(&Snapshot{policies: policies})
}
