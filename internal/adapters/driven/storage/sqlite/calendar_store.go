package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
)

// calendarStore implements driven.CalendarStore.
type calendarStore struct {
	store *Store
}

var _ driven.CalendarStore = (*calendarStore)(nil)

// ListCalendars returns all synced calendars.
func (s *calendarStore) ListCalendars(ctx context.Context) ([]domain.Calendar, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT id, provider, "primary", access_role, summary, background_color
		 FROM calendars ORDER BY summary, id`)
	if err != nil {
		return nil, fmt.Errorf("querying calendars: %w", err)
	}
	defer rows.Close()

	var calendars []domain.Calendar //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.Calendar
		var provider, accessRole, summary, background sql.NullString
		var primary sql.NullBool
		if err := rows.Scan(&c.ID, &provider, &primary, &accessRole, &summary, &background); err != nil {
			return nil, fmt.Errorf("scanning calendar: %w", err)
		}
		c.Provider = provider.String
		if primary.Valid {
			c.Primary = &primary.Bool
		}
		c.AccessRole = accessRole.String
		c.Summary = summary.String
		c.BackgroundColor = background.String
		calendars = append(calendars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendars: %w", err)
	}
	return calendars, nil
}

// ListEvents returns events newest first, optionally restricted by
// calendar id substring and start-time range.
func (s *calendarStore) ListEvents(ctx context.Context, calendar string, rng *domain.DateRange) ([]domain.Event, error) {
	query := `SELECT id, calendar_id, summary, description, start_time, end_time
		FROM events WHERE 1=1`
	var args []any

	if calendar != "" {
		query += ` AND calendar_id LIKE ?`
		args = append(args, "%"+calendar+"%")
	}
	query, args = appendRangeFilter(query, args, "start_time", rng)
	query += ` ORDER BY start_time DESC, id`

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.Event
		var calendarID, summary, description, start, end sql.NullString
		if err := rows.Scan(&e.ID, &calendarID, &summary, &description, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.CalendarID = calendarID.String
		e.Summary = summary.String
		e.Description = description.String
		e.StartTime = start.String
		e.EndTime = end.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}
