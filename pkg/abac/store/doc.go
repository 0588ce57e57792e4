// Package store holds the registered policy set and publishes it to
// readers as immutable, priority-sorted snapshots.
//
// Writers (Register, Remove, Replace) serialize on a mutex, build a new
// sorted snapshot, and publish it with an atomic pointer swap. Readers
// take the current snapshot without locking and never observe a
// collection mid-mutation. One evaluation uses exactly one snapshot.
package store
