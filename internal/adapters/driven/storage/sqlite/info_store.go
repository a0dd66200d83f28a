package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
)

// infoStore implements driven.InfoStore.
type infoStore struct {
	store *Store
}

var _ driven.InfoStore = (*infoStore)(nil)

// Info aggregates entity counts, embedding stats and file details.
func (s *infoStore) Info(ctx context.Context) (*domain.DBInfo, error) {
	info := &domain.DBInfo{DBPath: s.store.path}

	counts := []struct {
		dest  *int64
		query string
	}{
		{&info.TotalDocuments, "SELECT COUNT(*) FROM documents WHERE deleted_at IS NULL"},
		{&info.DocumentsWithTranscripts, `SELECT COUNT(DISTINCT d.id) FROM documents d
			JOIN transcript_utterances u ON u.document_id = d.id
			WHERE d.deleted_at IS NULL`},
		{&info.TotalPeople, "SELECT COUNT(*) FROM people"},
		{&info.TotalCalendars, "SELECT COUNT(*) FROM calendars"},
		{&info.TotalEvents, "SELECT COUNT(*) FROM events"},
		{&info.TotalTemplates, "SELECT COUNT(*) FROM templates WHERE deleted_at IS NULL"},
		{&info.TotalRecipes, "SELECT COUNT(*) FROM recipes WHERE deleted_at IS NULL"},
		{&info.TotalPanels, "SELECT COUNT(*) FROM panels WHERE deleted_at IS NULL"},
		{&info.TotalUtterances, "SELECT COUNT(*) FROM transcript_utterances"},
		{&info.TotalChunks, "SELECT COUNT(*) FROM chunks"},
		{&info.TotalEmbeddings, "SELECT COUNT(*) FROM embeddings"},
	}
	for _, c := range counts {
		if err := s.store.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting: %w", err)
		}
	}
	info.DocumentsWithoutTranscripts = info.TotalDocuments - info.DocumentsWithTranscripts

	var earliest, latest sql.NullString
	err := s.store.db.QueryRowContext(ctx,
		"SELECT MIN(created_at), MAX(created_at) FROM documents WHERE deleted_at IS NULL").
		Scan(&earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("reading document date bounds: %w", err)
	}
	if earliest.Valid {
		info.EarliestDocument = &earliest.String
	}
	if latest.Valid {
		info.LatestDocument = &latest.String
	}

	var model sql.NullString
	err = s.store.db.QueryRowContext(ctx,
		"SELECT value FROM embedding_metadata WHERE key = ?", metaModelName).Scan(&model)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("reading embedding model: %w", err)
	}
	if model.Valid {
		info.EmbeddingModel = &model.String
	}

	if info.TotalChunks > 0 {
		var stats domain.ChunkSizeStats
		err = s.store.db.QueryRowContext(ctx,
			"SELECT MIN(LENGTH(text)), MAX(LENGTH(text)), AVG(LENGTH(text)) FROM chunks").
			Scan(&stats.Min, &stats.Max, &stats.Avg)
		if err != nil {
			return nil, fmt.Errorf("reading chunk size stats: %w", err)
		}
		info.ChunkSizeStats = &stats
	}

	if fi, err := os.Stat(s.store.path); err == nil {
		info.DBSizeBytes = fi.Size()
	}

	version, err := s.store.SchemaVersion()
	if err != nil {
		return nil, err
	}
	info.SchemaVersion = version

	return info, nil
}
