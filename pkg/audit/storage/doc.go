// Package storage provides persistence backends for decision records.
//
// Two backends are included: a SQLite backend for durable audit trails
// and an in-memory backend for tests and ephemeral deployments. Both
// implement the Store interface, which extends the engine-facing
// audit.Sink with query and retention operations.
package storage
