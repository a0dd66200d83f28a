package services

import (
	"context"
	"fmt"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
	"github.com/grans-labs/grans-cli/internal/core/ports/driving"
	"github.com/grans-labs/grans-cli/internal/logger"
)

// Ensure MeetingService implements the interface.
var _ driving.MeetingQueries = (*MeetingService)(nil)

// MeetingService answers list/show/with queries over meeting documents.
type MeetingService struct {
	meetings    driven.MeetingStore
	transcripts driven.TranscriptStore
	panels      driven.PanelStore
	people      driven.PeopleStore
}

// NewMeetingService creates a new meeting query service.
func NewMeetingService(
	meetings driven.MeetingStore,
	transcripts driven.TranscriptStore,
	panels driven.PanelStore,
	people driven.PeopleStore,
) *MeetingService {
	return &MeetingService{
		meetings:    meetings,
		transcripts: transcripts,
		panels:      panels,
		people:      people,
	}
}

// List returns non-deleted documents, newest first.
func (s *MeetingService) List(ctx context.Context, rng *domain.DateRange) ([]domain.Document, error) {
	docs, err := s.meetings.ListMeetings(ctx, rng, false)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	logger.Debug("list returned %d documents", len(docs))
	return docs, nil
}

// Show resolves one document and loads the requested sections.
func (s *MeetingService) Show(ctx context.Context, query string, opts driving.ShowOptions) (*driving.MeetingDetail, error) {
	doc, err := s.meetings.FindMeeting(ctx, query)
	if err != nil {
		return nil, err
	}

	detail := &driving.MeetingDetail{Document: *doc}

	if !opts.Notes {
		detail.Document.NotesPlain = ""
		detail.Document.NotesMarkdown = ""
	}

	if opts.Transcript {
		utterances, err := s.transcripts.DocumentUtterances(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("loading transcript: %w", err)
		}
		detail.Transcript = utterances
	}

	panels, err := s.panels.ListPanels(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("loading panels: %w", err)
	}
	detail.Panels = panels

	return detail, nil
}

// WithPerson returns all documents a matching person created or attended.
func (s *MeetingService) WithPerson(ctx context.Context, person string, includeDeleted bool) ([]domain.Document, error) {
	docs, err := s.people.MeetingsWithPerson(ctx, person, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("finding meetings with %q: %w", person, err)
	}
	return docs, nil
}
