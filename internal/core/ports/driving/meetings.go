package driving

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// ShowOptions selects which sections of a meeting to load.
type ShowOptions struct {
	// Transcript loads the full utterance list.
	Transcript bool

	// Notes keeps the user's own notes in the result.
	Notes bool
}

// MeetingDetail is a resolved meeting with its requested sections.
type MeetingDetail struct {
	Document domain.Document `json:"document"`

	// Transcript is nil unless ShowOptions.Transcript was set.
	Transcript []domain.Utterance `json:"transcript,omitempty"`

	// Panels are always loaded; chat_url is present and possibly null.
	Panels []domain.Panel `json:"panels"`
}

// MeetingQueries drives list/show/with over meeting documents.
type MeetingQueries interface {
	// List returns non-deleted documents, newest first, optionally
	// restricted to a date range.
	List(ctx context.Context, rng *domain.DateRange) ([]domain.Document, error)

	// Show resolves one document by id, id prefix, or title substring
	// and loads the requested sections. Returns domain.ErrNotFound when
	// nothing matches.
	Show(ctx context.Context, query string, opts ShowOptions) (*MeetingDetail, error)

	// WithPerson returns all non-deleted documents a matching person
	// created or attended. An unknown person yields an empty result.
	WithPerson(ctx context.Context, person string, includeDeleted bool) ([]domain.Document, error)
}
