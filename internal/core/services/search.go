package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
	"github.com/grans-labs/grans-cli/internal/core/ports/driving"
	"github.com/grans-labs/grans-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchQueries = (*SearchService)(nil)

// SearchService answers keyword, keyword-in-context and semantic searches.
type SearchService struct {
	meetings    driven.MeetingStore
	transcripts driven.TranscriptStore
	panels      driven.PanelStore
	vectors     driven.VectorStore
	embedder    driven.Embedder
}

// NewSearchService creates a new search service. embedder may be nil, which
// disables semantic search.
func NewSearchService(
	meetings driven.MeetingStore,
	transcripts driven.TranscriptStore,
	panels driven.PanelStore,
	vectors driven.VectorStore,
	embedder driven.Embedder,
) *SearchService {
	return &SearchService{
		meetings:    meetings,
		transcripts: transcripts,
		panels:      panels,
		vectors:     vectors,
		embedder:    embedder,
	}
}

// Keyword fans the query out over the enabled targets and merges matching
// documents.
func (s *SearchService) Keyword(ctx context.Context, query string, opts driving.SearchOptions) ([]domain.Document, error) {
	if opts.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", domain.ErrInvalidInput)
	}

	docs, err := s.meetings.SearchMeetings(ctx, query, opts.Targets, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("searching meetings: %w", err)
	}
	logger.Debug("keyword search %q matched %d documents", query, len(docs))
	return docs, nil
}

// TranscriptContext returns one context window per matching utterance.
func (s *SearchService) TranscriptContext(ctx context.Context, query string, opts driving.SearchOptions) ([]domain.ContextWindow, error) {
	if opts.Limit < 0 || opts.ContextSize < 0 {
		return nil, fmt.Errorf("%w: negative limit or context", domain.ErrInvalidInput)
	}

	documentID := ""
	if opts.Meeting != "" {
		doc, err := s.meetings.FindMeeting(ctx, opts.Meeting)
		if errors.Is(err, domain.ErrNotFound) {
			// An unknown meeting restricts to nothing.
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resolving meeting %q: %w", opts.Meeting, err)
		}
		documentID = doc.ID
	}

	speaker := ""
	if opts.Speaker != "" {
		speaker = opts.Speaker.Source()
	}

	matches, err := s.transcripts.MatchingUtterances(ctx, query, documentID, speaker, opts.DateRange)
	if err != nil {
		return nil, fmt.Errorf("searching transcripts: %w", err)
	}

	// One transcript load per document, reused across its matches.
	transcripts := map[string][]domain.Utterance{}
	positions := map[string]map[string]int{}

	var windows []domain.ContextWindow
	for _, match := range matches {
		if opts.Limit > 0 && len(windows) >= opts.Limit {
			break
		}

		utterances, ok := transcripts[match.DocumentID]
		if !ok {
			utterances, err = s.transcripts.DocumentUtterances(ctx, match.DocumentID)
			if err != nil {
				return nil, fmt.Errorf("loading transcript for %s: %w", match.DocumentID, err)
			}
			transcripts[match.DocumentID] = utterances

			index := make(map[string]int, len(utterances))
			for i, u := range utterances {
				index[u.ID] = i
			}
			positions[match.DocumentID] = index
		}

		i, ok := positions[match.DocumentID][match.ID]
		if !ok {
			continue
		}
		windows = append(windows, domain.WindowAt(match.DocumentID, utterances, i, opts.ContextSize))
	}

	logger.Debug("transcript context search %q produced %d windows", query, len(windows))
	return windows, nil
}

// NotesContext searches the user's own notes paragraph-wise.
func (s *SearchService) NotesContext(ctx context.Context, query string, opts driving.SearchOptions) ([]driving.TextSearchResult, error) {
	docs, err := s.meetings.MatchingNoteDocuments(ctx, query, opts.Meeting, opts.DateRange, false)
	if err != nil {
		return nil, fmt.Errorf("searching notes: %w", err)
	}

	var results []driving.TextSearchResult
	for _, doc := range docs {
		if doc.NotesPlain == "" {
			continue
		}

		paragraphs := domain.SplitParagraphs(doc.NotesPlain)
		segments := make([]domain.TextSegment, len(paragraphs))
		for i, p := range paragraphs {
			segments[i] = domain.TextSegment{Text: p}
		}

		windows := domain.BuildTextContextWindows(segments, query, opts.ContextSize)
		if len(windows) == 0 {
			continue
		}
		results = append(results, driving.TextSearchResult{
			DocumentID:    doc.ID,
			DocumentTitle: doc.Title,
			Windows:       windows,
		})
	}
	return results, nil
}

// PanelContext searches AI note panels section-wise.
func (s *SearchService) PanelContext(ctx context.Context, query string, opts driving.SearchOptions) ([]driving.TextSearchResult, error) {
	docs, err := s.panels.MatchingPanelDocuments(ctx, query, opts.Meeting, opts.DateRange)
	if err != nil {
		return nil, fmt.Errorf("searching panels: %w", err)
	}

	var results []driving.TextSearchResult
	for _, doc := range docs {
		panels, err := s.panels.ListPanels(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("loading panels for %s: %w", doc.ID, err)
		}

		var segments []domain.TextSegment
		for _, panel := range panels {
			content := domain.StripPanelFooter(panel.ContentMarkdown)
			for _, section := range domain.SplitMarkdownSections(content) {
				label := section.Heading
				if label == nil && panel.Title != "" {
					title := panel.Title
					label = &title
				}
				segments = append(segments, domain.TextSegment{Label: label, Text: section.Body})
			}
		}

		windows := domain.BuildTextContextWindows(segments, query, opts.ContextSize)
		if len(windows) == 0 {
			continue
		}
		results = append(results, driving.TextSearchResult{
			DocumentID:    doc.ID,
			DocumentTitle: doc.Title,
			Windows:       windows,
		})
	}
	return results, nil
}

// Semantic embeds the query and ranks stored chunk vectors.
func (s *SearchService) Semantic(ctx context.Context, query string, opts driving.SearchOptions) ([]driving.SemanticHit, error) {
	filter := domain.SemanticSourceFilter(opts.Targets)
	if filter != nil && len(filter) == 0 {
		// Titles have no embeddings; nothing can match.
		return nil, nil
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	stored, err := s.vectors.LoadVectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vectors: %w", err)
	}
	logger.Debug("ranking %d stored vectors", len(stored))

	ranked := rankVectors(queryVec, stored, opts.MinScore, filter)

	var hits []driving.SemanticHit
	for _, result := range ranked {
		if opts.Limit > 0 && len(hits) >= opts.Limit {
			break
		}
		doc, err := s.meetings.FindMeeting(ctx, result.DocumentID)
		if errors.Is(err, domain.ErrNotFound) {
			continue // chunk outlived its document
		}
		if err != nil {
			return nil, fmt.Errorf("loading document %s: %w", result.DocumentID, err)
		}
		hits = append(hits, driving.SemanticHit{Result: result, Document: *doc})
	}
	return hits, nil
}

// rankVectors scores stored vectors against the query vector, keeps the
// best chunk per document, and sorts by score descending. A nil filter
// matches every source type; an empty filter matches none.
func rankVectors(queryVec []float32, stored []domain.StoredVector, minScore float32, filter []string) []domain.SemanticResult {
	best := map[string]domain.SemanticResult{}

	for _, sv := range stored {
		if filter != nil && !containsString(filter, sv.SourceType) {
			continue
		}

		score := cosineSimilarity(queryVec, sv.Vector)
		if score < minScore {
			continue
		}

		if existing, ok := best[sv.DocumentID]; ok && existing.Score >= score {
			continue
		}

		startIdx, endIdx := parseWindowIndices(sv.MetadataJSON)
		best[sv.DocumentID] = domain.SemanticResult{
			DocumentID:     sv.DocumentID,
			Score:          score,
			SourceType:     sv.SourceType,
			MatchedText:    sv.Text,
			WindowStartIdx: startIdx,
			WindowEndIdx:   endIdx,
			MatchContext:   matchContext(sv.SourceType, sv.MetadataJSON),
		}
	}

	results := make([]domain.SemanticResult, 0, len(best))
	for _, r := range best {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocumentID < results[j].DocumentID
	})
	return results
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// 0 when either has zero magnitude.
func cosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return float32(dot / denom)
}

// parseWindowIndices extracts transcript window bounds from chunk metadata.
func parseWindowIndices(metadataJSON *string) (*int, *int) {
	if metadataJSON == nil {
		return nil, nil
	}
	var meta struct {
		WindowStartIdx *int `json:"window_start_idx"`
		WindowEndIdx   *int `json:"window_end_idx"`
	}
	if err := json.Unmarshal([]byte(*metadataJSON), &meta); err != nil {
		return nil, nil
	}
	return meta.WindowStartIdx, meta.WindowEndIdx
}

// matchContext builds a human-readable origin for a chunk match.
func matchContext(sourceType string, metadataJSON *string) string {
	switch sourceType {
	case domain.SourcePanelSection:
		if metadataJSON != nil {
			var meta struct {
				SectionHeading string `json:"section_heading"`
			}
			if err := json.Unmarshal([]byte(*metadataJSON), &meta); err == nil && meta.SectionHeading != "" {
				return "AI notes: " + meta.SectionHeading
			}
		}
		return "AI notes"
	case domain.SourceNotesParagraph:
		return "your notes"
	default:
		return ""
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
