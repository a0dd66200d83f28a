package driven

import "context"

// Embedder turns text into a vector using an external embedding service.
// Only search queries are embedded here; the index's chunk vectors are
// produced by the sync collaborator.
type Embedder interface {
	// Embed returns the embedding vector for text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model returns the model identifier, used for consistency checks
	// against the store's recorded model.
	Model() string
}
