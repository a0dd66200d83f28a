package domain

// Document is a single meeting record in the index.
type Document struct {
	// ID is the capture service's document identifier.
	ID string `json:"id"`

	// Title is never null in the store; untitled meetings carry "".
	Title string `json:"title"`

	// CreatedAt is an ISO-8601 UTC timestamp string.
	CreatedAt string `json:"created_at,omitempty"`

	// UpdatedAt is an ISO-8601 UTC timestamp string.
	UpdatedAt string `json:"updated_at,omitempty"`

	// DeletedAt marks a soft-deleted document when non-nil.
	// Soft-deleted documents stay addressable by id but are excluded
	// from listings and counts.
	DeletedAt *string `json:"deleted_at,omitempty"`

	// DocType is the capture service's document type (usually "meeting").
	DocType string `json:"type,omitempty"`

	// NotesPlain holds the user's own notes as plain text.
	NotesPlain string `json:"notes_plain,omitempty"`

	// NotesMarkdown holds the user's own notes as markdown.
	NotesMarkdown string `json:"notes_markdown,omitempty"`

	// Summary is an optional one-line AI summary.
	Summary string `json:"summary,omitempty"`

	// People carries the creator and attendees captured with the meeting.
	People *DocumentPeople `json:"people,omitempty"`
}

// Deleted reports whether the document is soft-deleted.
func (d Document) Deleted() bool {
	return d.DeletedAt != nil
}

// DocumentPeople groups the humans attached to a document.
type DocumentPeople struct {
	Creator   *PersonRef  `json:"creator,omitempty"`
	Attendees []PersonRef `json:"attendees,omitempty"`
}

// PersonRef is a lightweight reference to a person on a document.
type PersonRef struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Utterance is one transcript line. Insertion order into the store is the
// authoritative order within a document.
type Utterance struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`

	// Source labels who spoke: "microphone" (the user) or "system"
	// (everyone else). Empty when the capture did not record it.
	Source string `json:"source,omitempty"`

	// IsFinal is nil for rows captured before finality tracking existed.
	IsFinal *bool `json:"is_final,omitempty"`
}

// Panel is an AI-generated markdown artefact attached to a document.
type Panel struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`

	// ContentMarkdown is the raw panel markdown, footer included.
	ContentMarkdown string `json:"content_markdown,omitempty"`

	// TemplateSlug names the template the panel was generated from.
	TemplateSlug string `json:"template_slug,omitempty"`

	// ChatURL is always present in JSON output, possibly null.
	ChatURL *string `json:"chat_url"`

	CreatedAt string  `json:"created_at,omitempty"`
	DeletedAt *string `json:"deleted_at,omitempty"`
}
