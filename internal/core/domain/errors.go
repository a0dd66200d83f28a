package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the database file cannot be opened.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMigrationFailed indicates a schema migration step errored.
	// The pre-migration backup file is retained.
	ErrMigrationFailed = errors.New("migration failed")

	// ErrFutureSchema indicates the store was written by a newer release.
	// The store is served read-only.
	ErrFutureSchema = errors.New("schema version is newer than this build")

	// ErrReadOnly indicates a write was attempted on a read-only store.
	ErrReadOnly = errors.New("store is read-only")

	// ErrEmbeddingUnavailable indicates no embedding provider is configured.
	// Semantic search is disabled without one.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
