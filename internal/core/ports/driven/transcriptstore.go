package driven

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// TranscriptStore reads and maintains transcript utterances.
type TranscriptStore interface {
	// MatchingUtterances returns utterances matching the FTS query in
	// store order (document, then position). documentID restricts to one
	// document when non-empty; speaker restricts by source label when
	// non-empty; rng filters on the owning document's creation time.
	MatchingUtterances(ctx context.Context, query, documentID, speaker string, rng *domain.DateRange) ([]domain.Utterance, error)

	// DocumentUtterances returns a document's full transcript in order.
	DocumentUtterances(ctx context.Context, documentID string) ([]domain.Utterance, error)

	// InsertTranscript replaces a document's transcript, maintains the
	// FTS index, and stores a redacted API snapshot per utterance.
	InsertTranscript(ctx context.Context, documentID string, utterances []domain.Utterance) error

	// UpsertSyncStatus records a transcript fetch attempt, incrementing
	// the attempt counter for repeat failures.
	UpsertSyncStatus(ctx context.Context, documentID, status, attemptedAt string) error

	// SyncStatus returns the recorded status and attempt count for a
	// document, or domain.ErrNotFound when none was recorded.
	SyncStatus(ctx context.Context, documentID string) (status string, attempts int, err error)
}
