package driven

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// PanelStore reads and maintains AI note panels.
type PanelStore interface {
	// ListPanels returns a document's non-deleted panels, oldest first.
	ListPanels(ctx context.Context, documentID string) ([]domain.Panel, error)

	// MatchingPanelDocuments returns documents owning a panel whose
	// content matches the FTS query, newest first. meetingFilter resolves
	// like MeetingStore.FindMeeting when non-empty; rng may be nil.
	MatchingPanelDocuments(ctx context.Context, query, meetingFilter string, rng *domain.DateRange) ([]domain.Document, error)

	// UpsertPanels replaces a document's panels, rebuilds the panels FTS
	// index, and stores redacted API snapshots.
	UpsertPanels(ctx context.Context, documentID string, panels []domain.Panel) error

	// UpsertSyncStatus records a panel fetch attempt, incrementing the
	// attempt counter for repeat failures.
	UpsertSyncStatus(ctx context.Context, documentID, status, attemptedAt string) error
}
