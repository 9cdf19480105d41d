// Package postgres provides PostgreSQL-backed implementations of the
// persistence interfaces defined in the internal/store package. Increment
// operations are expressed as single upsert or conditional UPDATE
// statements, so the database's own atomicity carries the concurrency
// guarantees the ledger requires.
package postgres
