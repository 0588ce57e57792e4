// Package retention enforces retention limits on the decision audit
// trail.
//
// The Pruner deletes records in two phases: age-based (older than the
// retention period) and count-based (oldest records beyond the maximum
// count). The Scheduler runs pruning cycles on a cron schedule.
package retention
