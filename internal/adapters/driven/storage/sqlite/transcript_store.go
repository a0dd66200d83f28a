package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
)

// redactedText replaces utterance text in stored API snapshots so the
// snapshot records shape, not content.
const redactedText = "[stored]"

// transcriptStore implements driven.TranscriptStore.
type transcriptStore struct {
	store *Store
}

var _ driven.TranscriptStore = (*transcriptStore)(nil)

// MatchingUtterances returns utterances matching the FTS query in store
// order: document, then position within the transcript.
func (s *transcriptStore) MatchingUtterances(ctx context.Context, query, documentID, speaker string, rng *domain.DateRange) ([]domain.Utterance, error) {
	sqlQuery := `SELECT u.id, u.document_id, u.text, u.source, u.is_final
		FROM transcript_utterances u
		JOIN transcript_fts f ON f.rowid = u.rowid
		JOIN documents d ON d.id = u.document_id
		WHERE transcript_fts MATCH ?`
	args := []any{sanitizeFTSQuery(query)}

	if documentID != "" {
		sqlQuery += ` AND u.document_id = ?`
		args = append(args, documentID)
	}
	if speaker != "" {
		sqlQuery += ` AND u.source = ?`
		args = append(args, speaker)
	}
	sqlQuery, args = appendRangeFilter(sqlQuery, args, "d.created_at", rng)
	sqlQuery += ` ORDER BY u.document_id, u.rowid`

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("searching transcripts: %w", err)
	}
	defer rows.Close()

	return scanUtterances(rows)
}

// DocumentUtterances returns a document's full transcript in order.
func (s *transcriptStore) DocumentUtterances(ctx context.Context, documentID string) ([]domain.Utterance, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT id, document_id, text, source, is_final
		 FROM transcript_utterances WHERE document_id = ?
		 ORDER BY rowid`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying transcript: %w", err)
	}
	defer rows.Close()

	return scanUtterances(rows)
}

// InsertTranscript replaces a document's transcript in one transaction.
// The FTS index is maintained by triggers.
func (s *transcriptStore) InsertTranscript(ctx context.Context, documentID string, utterances []domain.Utterance) error {
	if err := s.store.checkWritable(); err != nil {
		return err
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM transcript_utterances WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("clearing transcript: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transcript_utterances (id, document_id, text, source, is_final, api_snapshot)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, u := range utterances {
		id := u.ID
		if id == "" {
			id = uuid.NewString()
		}

		snapshot, err := redactedSnapshot(u)
		if err != nil {
			return fmt.Errorf("building snapshot: %w", err)
		}

		var isFinal any
		if u.IsFinal != nil {
			isFinal = *u.IsFinal
		}

		if _, err := stmt.ExecContext(ctx, id, documentID, u.Text,
			nullableString(u.Source), isFinal, snapshot); err != nil {
			return fmt.Errorf("inserting utterance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transcript: %w", err)
	}
	return nil
}

// UpsertSyncStatus records a transcript fetch attempt.
func (s *transcriptStore) UpsertSyncStatus(ctx context.Context, documentID, status, attemptedAt string) error {
	if err := s.store.checkWritable(); err != nil {
		return err
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO transcript_sync_log (document_id, status, last_attempted_at, attempts)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(document_id) DO UPDATE SET
			status = excluded.status,
			last_attempted_at = excluded.last_attempted_at,
			attempts = attempts + 1
	`, documentID, status, attemptedAt)
	if err != nil {
		return fmt.Errorf("recording transcript sync status: %w", err)
	}
	return nil
}

// SyncStatus returns the recorded fetch status for a document.
func (s *transcriptStore) SyncStatus(ctx context.Context, documentID string) (string, int, error) {
	var status string
	var attempts int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT status, attempts FROM transcript_sync_log WHERE document_id = ?",
		documentID).Scan(&status, &attempts)
	if err == sql.ErrNoRows {
		return "", 0, domain.ErrNotFound
	}
	if err != nil {
		return "", 0, fmt.Errorf("reading transcript sync status: %w", err)
	}
	return status, attempts, nil
}

// redactedSnapshot marshals an utterance with its text replaced.
func redactedSnapshot(u domain.Utterance) (string, error) {
	u.Text = redactedText
	data, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// scanUtterances scans utterance rows.
func scanUtterances(rows *sql.Rows) ([]domain.Utterance, error) {
	var utterances []domain.Utterance //nolint:prealloc // size unknown from query
	for rows.Next() {
		var u domain.Utterance
		var text, source sql.NullString
		var isFinal sql.NullBool
		if err := rows.Scan(&u.ID, &u.DocumentID, &text, &source, &isFinal); err != nil {
			return nil, fmt.Errorf("scanning utterance: %w", err)
		}
		u.Text = text.String
		u.Source = source.String
		if isFinal.Valid {
			u.IsFinal = &isFinal.Bool
		}
		utterances = append(utterances, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating utterances: %w", err)
	}
	return utterances, nil
}
