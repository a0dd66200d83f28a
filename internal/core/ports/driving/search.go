package driving

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// SearchOptions configures a search invocation.
type SearchOptions struct {
	// Targets selects the content kinds to search.
	Targets []domain.SearchTarget

	// Limit caps results; 0 means unbounded.
	Limit int

	// Meeting restricts transcript context search to one document,
	// resolved like show.
	Meeting string

	// ContextSize is the number of neighbouring utterances or segments
	// on each side of a match.
	ContextSize int

	// Speaker restricts transcript matches by source ("" = all).
	Speaker domain.SpeakerFilter

	// DateRange filters matches by document creation time.
	DateRange *domain.DateRange

	// MinScore drops semantic hits below this cosine similarity.
	MinScore float32
}

// SemanticHit joins a ranked chunk match to its parent document.
type SemanticHit struct {
	Result   domain.SemanticResult `json:"result"`
	Document domain.Document       `json:"document"`
}

// TextSearchResult groups notes or panel context windows per document.
type TextSearchResult struct {
	DocumentID    string                     `json:"document_id"`
	DocumentTitle string                     `json:"document_title"`
	Windows       []domain.TextContextWindow `json:"windows"`
}

// SearchQueries drives keyword, keyword-in-context and semantic search.
type SearchQueries interface {
	// Keyword fans the query out over the enabled targets and merges
	// matching documents, deduplicated, newest first.
	Keyword(ctx context.Context, query string, opts SearchOptions) ([]domain.Document, error)

	// TranscriptContext returns one window per matching utterance,
	// framed by up to ContextSize neighbours, never crossing documents.
	TranscriptContext(ctx context.Context, query string, opts SearchOptions) ([]domain.ContextWindow, error)

	// NotesContext searches the user's own notes paragraph-wise.
	NotesContext(ctx context.Context, query string, opts SearchOptions) ([]TextSearchResult, error)

	// PanelContext searches AI note panels section-wise.
	PanelContext(ctx context.Context, query string, opts SearchOptions) ([]TextSearchResult, error)

	// Semantic embeds the query and ranks stored chunk vectors by cosine
	// similarity, restricted to the targets' source types. A titles-only
	// selection short-circuits to an empty result.
	Semantic(ctx context.Context, query string, opts SearchOptions) ([]SemanticHit, error)
}
