package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
)

// panelStore implements driven.PanelStore.
type panelStore struct {
	store *Store
}

var _ driven.PanelStore = (*panelStore)(nil)

// ListPanels returns a document's non-deleted panels, oldest first.
func (s *panelStore) ListPanels(ctx context.Context, documentID string) ([]domain.Panel, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT id, document_id, title, content_markdown, template_slug, chat_url, created_at, deleted_at
		 FROM panels
		 WHERE document_id = ? AND deleted_at IS NULL
		 ORDER BY created_at, id`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying panels: %w", err)
	}
	defer rows.Close()

	var panels []domain.Panel //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.Panel
		var title, content, slug, chatURL, createdAt, deletedAt sql.NullString
		if err := rows.Scan(&p.ID, &p.DocumentID, &title, &content, &slug,
			&chatURL, &createdAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("scanning panel: %w", err)
		}
		p.Title = title.String
		p.ContentMarkdown = content.String
		p.TemplateSlug = slug.String
		if chatURL.Valid {
			p.ChatURL = &chatURL.String
		}
		p.CreatedAt = createdAt.String
		if deletedAt.Valid {
			p.DeletedAt = &deletedAt.String
		}
		panels = append(panels, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating panels: %w", err)
	}
	return panels, nil
}

// MatchingPanelDocuments returns documents owning a panel whose content
// matches the FTS query, newest first.
func (s *panelStore) MatchingPanelDocuments(ctx context.Context, query, meetingFilter string, rng *domain.DateRange) ([]domain.Document, error) {
	sqlQuery := `SELECT DISTINCT ` + documentColumns + ` FROM documents d
		JOIN panels p ON p.document_id = d.id
		JOIN panels_fts f ON f.rowid = p.rowid
		WHERE panels_fts MATCH ? AND d.deleted_at IS NULL AND p.deleted_at IS NULL`
	args := []any{sanitizeFTSQuery(query)}

	if meetingFilter != "" {
		sqlQuery += ` AND (d.id = ? OR d.id LIKE ? OR d.title LIKE ? COLLATE NOCASE)`
		args = append(args, meetingFilter, meetingFilter+"%", "%"+meetingFilter+"%")
	}
	sqlQuery, args = appendRangeFilter(sqlQuery, args, "d.created_at", rng)
	sqlQuery += ` ORDER BY d.created_at DESC, d.id`

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("searching panels: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// UpsertPanels replaces a document's panels in one transaction and
// rebuilds the panels FTS index.
func (s *panelStore) UpsertPanels(ctx context.Context, documentID string, panels []domain.Panel) error {
	if err := s.store.checkWritable(); err != nil {
		return err
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM panels WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("clearing panels: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO panels (id, document_id, title, content_markdown, template_slug, chat_url, created_at, deleted_at, api_snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range panels {
		snapshot, err := redactedPanelSnapshot(p)
		if err != nil {
			return fmt.Errorf("building snapshot: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, p.ID, documentID, p.Title,
			nullableString(p.ContentMarkdown), nullableString(p.TemplateSlug),
			nullablePtr(p.ChatURL), nullableString(p.CreatedAt),
			nullablePtr(p.DeletedAt), snapshot); err != nil {
			return fmt.Errorf("inserting panel: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO panels_fts(panels_fts) VALUES('rebuild')"); err != nil {
		return fmt.Errorf("rebuilding panels index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing panels: %w", err)
	}
	return nil
}

// UpsertSyncStatus records a panel fetch attempt.
func (s *panelStore) UpsertSyncStatus(ctx context.Context, documentID, status, attemptedAt string) error {
	if err := s.store.checkWritable(); err != nil {
		return err
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO panel_sync_log (document_id, status, last_attempted_at, attempts)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(document_id) DO UPDATE SET
			status = excluded.status,
			last_attempted_at = excluded.last_attempted_at,
			attempts = attempts + 1
	`, documentID, status, attemptedAt)
	if err != nil {
		return fmt.Errorf("recording panel sync status: %w", err)
	}
	return nil
}

// redactedPanelSnapshot marshals a panel with its content replaced.
func redactedPanelSnapshot(p domain.Panel) (string, error) {
	if p.ContentMarkdown != "" {
		p.ContentMarkdown = redactedText
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
