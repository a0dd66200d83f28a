package driven

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// VectorStore reads and maintains the embedded-chunk store.
type VectorStore interface {
	// LoadVectors loads every stored chunk vector for in-memory ranking.
	LoadVectors(ctx context.Context) ([]domain.StoredVector, error)

	// InsertChunks stores chunks and their vectors in one transaction.
	// items and vectors are parallel slices.
	InsertChunks(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error

	// DeleteChunks removes chunks by id; embeddings cascade.
	DeleteChunks(ctx context.Context, ids []int64) error

	// SetModelMetadata records the embedding model, its dimension and
	// maximum input length.
	SetModelMetadata(ctx context.Context, modelName string, dim, maxLength int) error

	// ModelName returns the recorded embedding model, "" when unset.
	ModelName(ctx context.Context) (string, error)

	// CheckModelConsistency reports whether the stored model matches
	// currentModel. On mismatch all chunks and embeddings are wiped and
	// false is returned.
	CheckModelConsistency(ctx context.Context, currentModel string) (bool, error)
}

// InfoStore computes store-wide statistics.
type InfoStore interface {
	// Info aggregates entity counts, embedding stats and file details.
	Info(ctx context.Context) (*domain.DBInfo, error)
}
