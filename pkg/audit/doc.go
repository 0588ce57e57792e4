// Package audit defines the decision audit trail: the DecisionRecord
// emitted after every evaluation, the Sink interface persisting
// records, and the Emitter interface the engine hands records to.
//
// Delivery is fire-and-forget from the engine's perspective. A sink
// failure never blocks, retries, or alters an authorization outcome;
// retry and backoff policy belong to the sink implementation.
package audit
