package driven

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// CalendarStore reads synced calendars and events.
type CalendarStore interface {
	// ListCalendars returns all synced calendars.
	ListCalendars(ctx context.Context) ([]domain.Calendar, error)

	// ListEvents returns events newest first, optionally restricted by
	// calendar id substring and start-time range.
	ListEvents(ctx context.Context, calendar string, rng *domain.DateRange) ([]domain.Event, error)
}
