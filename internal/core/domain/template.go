package domain

// Template is a panel template definition.
type Template struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Category    string            `json:"category,omitempty"`
	Symbol      string            `json:"symbol,omitempty"`
	Color       string            `json:"color,omitempty"`
	Description string            `json:"description,omitempty"`
	OwnerID     string            `json:"owner_id,omitempty"`
	Sections    []TemplateSection `json:"sections,omitempty"`
	CreatedAt   string            `json:"created_at,omitempty"`
	UpdatedAt   string            `json:"updated_at,omitempty"`
	DeletedAt   *string           `json:"deleted_at,omitempty"`
}

// TemplateSection is one ordered section of a template.
// The title is optional; untitled sections render as plain prompts.
type TemplateSection struct {
	Title       *string `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
}
