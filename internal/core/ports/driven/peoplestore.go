package driven

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// PeopleStore reads the synced people directory and the document-people
// junction.
type PeopleStore interface {
	// ListPeople returns people ordered by name, optionally filtered by
	// company name substring.
	ListPeople(ctx context.Context, company string) ([]domain.Person, error)

	// FindPeople returns people whose name or email contains query.
	FindPeople(ctx context.Context, query string) ([]domain.Person, error)

	// MeetingsWithPerson returns documents where a person matching query
	// (by name or email substring) appears as creator or attendee,
	// newest first. No match yields an empty slice, not an error.
	MeetingsWithPerson(ctx context.Context, query string, includeDeleted bool) ([]domain.Document, error)
}
