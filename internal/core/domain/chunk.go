package domain

// Chunk source types. These are the values stored in chunks.source_type and
// the values SemanticSourceFilter selects between.
const (
	SourceTranscriptWindow = "transcript_window"
	SourceNotesParagraph   = "notes_paragraph"
	SourcePanelSection     = "panel_section"
)

// Chunk is a unit of text prepared for embedding.
type Chunk struct {
	// ID is the chunks table rowid; zero before insertion.
	ID int64 `json:"id,omitempty"`

	SourceType string `json:"source_type"`

	// SourceID identifies the chunk within its document, e.g. "doc1:w0"
	// for the first transcript window of doc1.
	SourceID string `json:"source_id"`

	DocumentID string `json:"document_id"`

	// ContentHash uniquely identifies Text; re-indexing an unchanged
	// chunk is a no-op.
	ContentHash string `json:"content_hash"`

	Text      string `json:"text"`
	CreatedAt string `json:"created_at,omitempty"`

	// Metadata is an optional JSON object. Transcript windows record
	// window_start_idx/window_end_idx, panel sections record
	// section_heading.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// StoredVector is a chunk joined to its embedding, loaded for ranking.
type StoredVector struct {
	ChunkID    int64
	DocumentID string
	SourceType string
	Text       string
	Vector     []float32

	// MetadataJSON is the raw chunk metadata, nil when absent.
	MetadataJSON *string
}

// SemanticResult is one ranked semantic search hit, deduplicated per
// document (best-scoring chunk wins).
type SemanticResult struct {
	DocumentID  string  `json:"document_id"`
	Score       float32 `json:"score"`
	SourceType  string  `json:"source_type"`
	MatchedText string  `json:"matched_text"`

	// WindowStartIdx/WindowEndIdx locate transcript-window matches in
	// the document's utterance order, when known.
	WindowStartIdx *int `json:"window_start_idx,omitempty"`
	WindowEndIdx   *int `json:"window_end_idx,omitempty"`

	// MatchContext is a human-readable origin, e.g. "AI notes: Budget
	// Review" or "your notes". Empty for transcript matches.
	MatchContext string `json:"match_context,omitempty"`
}
