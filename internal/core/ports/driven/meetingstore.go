package driven

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// MeetingStore reads meeting documents from the index.
// Backed by SQLite.
type MeetingStore interface {
	// ListMeetings returns documents ordered by creation time descending,
	// id as tiebreak. Soft-deleted documents are excluded unless
	// includeDeleted is set. rng may be nil.
	ListMeetings(ctx context.Context, rng *domain.DateRange, includeDeleted bool) ([]domain.Document, error)

	// FindMeeting resolves a single document: exact id first, then id
	// prefix, then case-insensitive title substring. Returns
	// domain.ErrNotFound when nothing matches.
	FindMeeting(ctx context.Context, query string) (*domain.Document, error)

	// SearchMeetings fans a keyword query out over the enabled targets
	// (title substring, transcript/notes/panel FTS), merged and
	// deduplicated by document. limit 0 means unbounded.
	SearchMeetings(ctx context.Context, query string, targets []domain.SearchTarget, limit int) ([]domain.Document, error)

	// MatchingNoteDocuments returns documents whose own notes match the
	// FTS query, newest first. meetingFilter resolves like FindMeeting
	// when non-empty; rng may be nil.
	MatchingNoteDocuments(ctx context.Context, query, meetingFilter string, rng *domain.DateRange, includeDeleted bool) ([]domain.Document, error)

	// DocumentsWithoutTranscripts returns non-deleted documents that have
	// no utterances, or only utterances with no source label.
	DocumentsWithoutTranscripts(ctx context.Context) ([]domain.Document, error)
}
