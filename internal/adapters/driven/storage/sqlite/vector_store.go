package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
	"github.com/grans-labs/grans-cli/internal/logger"
)

// Embedding metadata keys.
const (
	metaModelName    = "model_name"
	metaEmbeddingDim = "embedding_dim"
	metaMaxLength    = "max_length"
)

// vectorStore implements driven.VectorStore.
type vectorStore struct {
	store *Store
}

var _ driven.VectorStore = (*vectorStore)(nil)

// LoadVectors loads every stored chunk vector for in-memory ranking.
func (s *vectorStore) LoadVectors(ctx context.Context) ([]domain.StoredVector, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.source_type, c.text, e.vector, c.metadata_json
		FROM chunks c
		JOIN embeddings e ON e.chunk_id = c.id
		ORDER BY c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var vectors []domain.StoredVector //nolint:prealloc // size unknown from query
	for rows.Next() {
		var v domain.StoredVector
		var blob []byte
		var metadata sql.NullString
		if err := rows.Scan(&v.ChunkID, &v.DocumentID, &v.SourceType, &v.Text, &blob, &metadata); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}
		v.Vector = bytesToFloat32Slice(blob)
		if metadata.Valid {
			v.MetadataJSON = &metadata.String
		}
		vectors = append(vectors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vectors: %w", err)
	}
	return vectors, nil
}

// InsertChunks stores chunks and their vectors in one transaction.
func (s *vectorStore) InsertChunks(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if err := s.store.checkWritable(); err != nil {
		return err
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks but %d vectors", domain.ErrInvalidInput, len(chunks), len(vectors))
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// OR REPLACE keys on the content-hash unique index: re-indexing an
	// unchanged chunk replaces the old row (and its embedding, via the
	// cascade) instead of accumulating duplicates.
	chunkStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (source_type, source_id, document_id, content_hash, text, metadata_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer chunkStmt.Close()

	vectorStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO embeddings (chunk_id, vector) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing vector insert: %w", err)
	}
	defer vectorStmt.Close()

	for i, chunk := range chunks {
		var metadataJSON any
		if chunk.Metadata != nil {
			data, err := json.Marshal(chunk.Metadata)
			if err != nil {
				return fmt.Errorf("marshalling chunk metadata: %w", err)
			}
			metadataJSON = string(data)
		}

		res, err := chunkStmt.ExecContext(ctx, chunk.SourceType, chunk.SourceID,
			chunk.DocumentID, chunk.ContentHash, chunk.Text, metadataJSON,
			nullableString(chunk.CreatedAt))
		if err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}

		chunkID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading chunk id: %w", err)
		}

		if _, err := vectorStmt.ExecContext(ctx, chunkID, float32SliceToBytes(vectors[i])); err != nil {
			return fmt.Errorf("inserting vector: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

// DeleteChunks removes chunks by id; embeddings cascade.
func (s *vectorStore) DeleteChunks(ctx context.Context, ids []int64) error {
	if err := s.store.checkWritable(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// SetModelMetadata records the embedding model, its dimension and maximum
// input length.
func (s *vectorStore) SetModelMetadata(ctx context.Context, modelName string, dim, maxLength int) error {
	if err := s.store.checkWritable(); err != nil {
		return err
	}

	entries := map[string]string{
		metaModelName:    modelName,
		metaEmbeddingDim: strconv.Itoa(dim),
		metaMaxLength:    strconv.Itoa(maxLength),
	}
	for key, value := range entries {
		_, err := s.store.db.ExecContext(ctx, `
			INSERT INTO embedding_metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("recording %s: %w", key, err)
		}
	}
	return nil
}

// ModelName returns the recorded embedding model, "" when unset.
func (s *vectorStore) ModelName(ctx context.Context) (string, error) {
	var model string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT value FROM embedding_metadata WHERE key = ?", metaModelName).Scan(&model)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading model name: %w", err)
	}
	return model, nil
}

// CheckModelConsistency wipes the chunk store when the recorded model does
// not match currentModel. Vectors from different models are not comparable.
func (s *vectorStore) CheckModelConsistency(ctx context.Context, currentModel string) (bool, error) {
	stored, err := s.ModelName(ctx)
	if err != nil {
		return false, err
	}
	if stored == "" || stored == currentModel {
		return true, nil
	}

	if err := s.store.checkWritable(); err != nil {
		return false, err
	}

	logger.Warn("embedding model changed from %s to %s; clearing index", stored, currentModel)

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM embeddings"); err != nil {
		return false, fmt.Errorf("clearing embeddings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return false, fmt.Errorf("clearing chunks: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing wipe: %w", err)
	}
	return false, nil
}
