package domain

// ChunkSizeStats summarises the character lengths of stored chunks.
type ChunkSizeStats struct {
	Min int64   `json:"min"`
	Max int64   `json:"max"`
	Avg float64 `json:"avg"`
}

// DBInfo aggregates everything `db info` reports about a store.
type DBInfo struct {
	// Content stats. Soft-deleted documents are excluded from all counts.
	TotalDocuments              int64   `json:"total_documents"`
	DocumentsWithTranscripts    int64   `json:"documents_with_transcripts"`
	DocumentsWithoutTranscripts int64   `json:"documents_without_transcripts"`
	EarliestDocument            *string `json:"earliest_document"`
	LatestDocument              *string `json:"latest_document"`
	TotalPeople                 int64   `json:"total_people"`
	TotalCalendars              int64   `json:"total_calendars"`
	TotalEvents                 int64   `json:"total_events"`
	TotalTemplates              int64   `json:"total_templates"`
	TotalRecipes                int64   `json:"total_recipes"`
	TotalPanels                 int64   `json:"total_panels"`
	TotalUtterances             int64   `json:"total_utterances"`

	// Embedding stats.
	TotalChunks     int64           `json:"total_chunks"`
	TotalEmbeddings int64           `json:"total_embeddings"`
	EmbeddingModel  *string         `json:"embedding_model"`
	ChunkSizeStats  *ChunkSizeStats `json:"chunk_size_stats"`

	// Database file.
	DBPath        string `json:"db_path"`
	DBSizeBytes   int64  `json:"db_size_bytes"`
	SchemaVersion int    `json:"schema_version"`
}
