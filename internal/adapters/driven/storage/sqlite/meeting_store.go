package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
)

// documentColumns is the scan list shared by every document query.
const documentColumns = `d.id, d.title, d.created_at, d.updated_at, d.deleted_at,
	d.doc_type, d.notes_plain, d.notes_markdown, d.summary, d.people_json`

// meetingStore implements driven.MeetingStore.
type meetingStore struct {
	store *Store
}

var _ driven.MeetingStore = (*meetingStore)(nil)

// ListMeetings returns documents ordered newest first.
func (s *meetingStore) ListMeetings(ctx context.Context, rng *domain.DateRange, includeDeleted bool) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents d WHERE 1=1`
	var args []any

	if !includeDeleted {
		query += ` AND d.deleted_at IS NULL`
	}
	query, args = appendRangeFilter(query, args, "d.created_at", rng)
	query += ` ORDER BY d.created_at DESC, d.id`

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// FindMeeting resolves a document: exact id, then id prefix, then
// case-insensitive title substring. Ambiguous matches resolve to the
// earliest-created candidate.
func (s *meetingStore) FindMeeting(ctx context.Context, query string) (*domain.Document, error) {
	clauses := []struct {
		where string
		arg   string
	}{
		{"d.id = ?", query},
		{"d.id LIKE ?", query + "%"},
		{"d.title LIKE ? COLLATE NOCASE", "%" + query + "%"},
	}

	for _, clause := range clauses {
		row := s.store.db.QueryRowContext(ctx,
			`SELECT `+documentColumns+` FROM documents d WHERE `+clause.where+
				` ORDER BY d.created_at, d.id LIMIT 1`, clause.arg)
		doc, err := scanDocumentRow(row)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return doc, nil
	}

	return nil, domain.ErrNotFound
}

// SearchMeetings fans a keyword out over the enabled targets and merges the
// matching documents, deduplicated, newest first.
func (s *meetingStore) SearchMeetings(ctx context.Context, query string, targets []domain.SearchTarget, limit int) ([]domain.Document, error) {
	if len(targets) == 0 {
		targets = []domain.SearchTarget{
			domain.TargetTitles, domain.TargetTranscripts,
			domain.TargetNotes, domain.TargetPanels,
		}
	}

	seen := map[string]domain.Document{}

	collect := func(rows *sql.Rows, err error, label string) error {
		if err != nil {
			return fmt.Errorf("searching %s: %w", label, err)
		}
		defer rows.Close()
		docs, err := scanDocuments(rows)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if _, ok := seen[doc.ID]; !ok {
				seen[doc.ID] = doc
			}
		}
		return nil
	}

	if domain.HasTarget(targets, domain.TargetTitles) {
		rows, err := s.store.db.QueryContext(ctx,
			`SELECT `+documentColumns+` FROM documents d
			 WHERE d.deleted_at IS NULL AND d.title LIKE ? COLLATE NOCASE`,
			"%"+query+"%")
		if err := collect(rows, err, "titles"); err != nil {
			return nil, err
		}
	}

	fts := sanitizeFTSQuery(query)

	if domain.HasTarget(targets, domain.TargetTranscripts) {
		rows, err := s.store.db.QueryContext(ctx,
			`SELECT DISTINCT `+documentColumns+` FROM documents d
			 JOIN transcript_utterances u ON u.document_id = d.id
			 JOIN transcript_fts f ON f.rowid = u.rowid
			 WHERE d.deleted_at IS NULL AND transcript_fts MATCH ?`, fts)
		if err := collect(rows, err, "transcripts"); err != nil {
			return nil, err
		}
	}

	if domain.HasTarget(targets, domain.TargetNotes) {
		rows, err := s.store.db.QueryContext(ctx,
			`SELECT `+documentColumns+` FROM documents d
			 JOIN notes_fts f ON f.rowid = d.rowid
			 WHERE d.deleted_at IS NULL AND notes_fts MATCH ?`, fts)
		if err := collect(rows, err, "notes"); err != nil {
			return nil, err
		}
	}

	if domain.HasTarget(targets, domain.TargetPanels) {
		rows, err := s.store.db.QueryContext(ctx,
			`SELECT DISTINCT `+documentColumns+` FROM documents d
			 JOIN panels p ON p.document_id = d.id
			 JOIN panels_fts f ON f.rowid = p.rowid
			 WHERE d.deleted_at IS NULL AND p.deleted_at IS NULL AND panels_fts MATCH ?`, fts)
		if err := collect(rows, err, "panels"); err != nil {
			return nil, err
		}
	}

	docs := make([]domain.Document, 0, len(seen))
	for _, doc := range seen {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt != docs[j].CreatedAt {
			return docs[i].CreatedAt > docs[j].CreatedAt
		}
		return docs[i].ID < docs[j].ID
	})

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// MatchingNoteDocuments returns documents whose own notes match the query.
func (s *meetingStore) MatchingNoteDocuments(ctx context.Context, query, meetingFilter string, rng *domain.DateRange, includeDeleted bool) ([]domain.Document, error) {
	sqlQuery := `SELECT ` + documentColumns + ` FROM documents d
		JOIN notes_fts f ON f.rowid = d.rowid
		WHERE notes_fts MATCH ?`
	args := []any{sanitizeFTSQuery(query)}

	if !includeDeleted {
		sqlQuery += ` AND d.deleted_at IS NULL`
	}
	if meetingFilter != "" {
		sqlQuery += ` AND (d.id = ? OR d.id LIKE ? OR d.title LIKE ? COLLATE NOCASE)`
		args = append(args, meetingFilter, meetingFilter+"%", "%"+meetingFilter+"%")
	}
	sqlQuery, args = appendRangeFilter(sqlQuery, args, "d.created_at", rng)
	sqlQuery += ` ORDER BY d.created_at DESC, d.id`

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("searching notes: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// DocumentsWithoutTranscripts returns non-deleted documents with no
// attributed utterances at all.
func (s *meetingStore) DocumentsWithoutTranscripts(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents d
		 WHERE d.deleted_at IS NULL AND NOT EXISTS (
			SELECT 1 FROM transcript_utterances u
			WHERE u.document_id = d.id AND u.source IS NOT NULL AND u.source != ''
		 )
		 ORDER BY d.created_at DESC, d.id`)
	if err != nil {
		return nil, fmt.Errorf("querying documents without transcripts: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// appendRangeFilter adds created-at bounds to a query. Range bounds are
// UTC instants compared against the stored ISO-8601 strings.
func appendRangeFilter(query string, args []any, column string, rng *domain.DateRange) (string, []any) {
	if rng == nil {
		return query, args
	}
	if rng.Start != nil {
		query += ` AND ` + column + ` >= ?`
		args = append(args, rng.Start.UTC().Format(time.RFC3339))
	}
	if rng.End != nil {
		query += ` AND ` + column + ` < ?`
		args = append(args, rng.End.UTC().Format(time.RFC3339))
	}
	return query, args
}

// scanDocumentFields maps the shared document column list into a Document.
func scanDocumentFields(scan func(dest ...any) error) (*domain.Document, error) {
	var doc domain.Document
	var createdAt, updatedAt, deletedAt, docType sql.NullString
	var notesPlain, notesMarkdown, summary, peopleJSON sql.NullString

	if err := scan(&doc.ID, &doc.Title, &createdAt, &updatedAt, &deletedAt,
		&docType, &notesPlain, &notesMarkdown, &summary, &peopleJSON); err != nil {
		return nil, err
	}

	doc.CreatedAt = createdAt.String
	doc.UpdatedAt = updatedAt.String
	if deletedAt.Valid {
		doc.DeletedAt = &deletedAt.String
	}
	doc.DocType = docType.String
	doc.NotesPlain = notesPlain.String
	doc.NotesMarkdown = notesMarkdown.String
	doc.Summary = summary.String

	if peopleJSON.Valid && peopleJSON.String != "" {
		var people domain.DocumentPeople
		if err := json.Unmarshal([]byte(peopleJSON.String), &people); err == nil {
			doc.People = &people
		}
	}

	return &doc, nil
}

// scanDocumentRow scans one document from *sql.Row.
func scanDocumentRow(row *sql.Row) (*domain.Document, error) {
	doc, err := scanDocumentFields(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// scanDocuments scans all documents from *sql.Rows.
func scanDocuments(rows *sql.Rows) ([]domain.Document, error) {
	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentFields(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}
