package domain

// Calendar is a synced calendar. The store column backing Primary is
// literally named "primary", matching the upstream API field.
type Calendar struct {
	ID              string `json:"id"`
	Provider        string `json:"provider,omitempty"`
	Primary         *bool  `json:"primary,omitempty"`
	AccessRole      string `json:"access_role,omitempty"`
	Summary         string `json:"summary,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
}

// Event is a calendar event. Start and end are ISO-8601 strings as synced.
type Event struct {
	ID          string `json:"id"`
	CalendarID  string `json:"calendar_id,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
}
