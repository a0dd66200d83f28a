package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driving"
)

var (
	searchIn       string
	searchContext  int
	searchMeeting  string
	searchLimit    int
	searchSemantic bool
	searchMinScore float64
	searchSpeaker  string
	searchDates    dateFlags
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search meetings, transcripts, notes and AI panels",
	Long: `Searches the meeting index.

Keyword mode (the default) returns matching meetings. With --context N the
search returns matched lines framed by N neighbours on each side. With
--semantic the query is embedded and ranked against stored chunk vectors.

Targets are selected with --in, a comma-separated subset of
titles,transcripts,notes,panels (default: all).`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchIn, "in", "", "targets to search (titles,transcripts,notes,panels)")
	searchCmd.Flags().IntVar(&searchContext, "context", -1, "context lines per match; enables keyword-in-context mode")
	searchCmd.Flags().StringVar(&searchMeeting, "meeting", "", "restrict transcript context to one meeting (id, id prefix, or title)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = unbounded)")
	searchCmd.Flags().BoolVar(&searchSemantic, "semantic", false, "semantic search over embedded chunks")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0, "minimum cosine similarity for semantic hits")
	searchCmd.Flags().StringVar(&searchSpeaker, "speaker", "", "restrict transcript matches by speaker (me or other)")
	searchDates.register(searchCmd.Flags())
	rootCmd.AddCommand(searchCmd)
}

// contextResults is the JSON shape of a keyword-in-context search.
type contextResults struct {
	TranscriptResults []domain.ContextWindow     `json:"transcript_results,omitempty"`
	NotesResults      []driving.TextSearchResult `json:"notes_results,omitempty"`
	PanelResults      []driving.TextSearchResult `json:"panel_results,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	query := args[0]

	if cmd.Flags().Changed("context") && searchContext < 0 {
		return fmt.Errorf("%w: --context %d", domain.ErrInvalidInput, searchContext)
	}

	targets := domain.ParseSearchTargets(searchIn)
	if searchIn != "" && len(targets) == 0 {
		return fmt.Errorf("%w: --in %q", domain.ErrInvalidInput, searchIn)
	}
	if len(targets) == 0 {
		targets = []domain.SearchTarget{
			domain.TargetTitles, domain.TargetTranscripts, domain.TargetNotes, domain.TargetPanels,
		}
	}

	var speaker domain.SpeakerFilter
	if searchSpeaker != "" {
		var err error
		speaker, err = domain.ParseSpeakerFilter(searchSpeaker)
		if err != nil {
			return err
		}
	}

	rng, err := searchDates.buildRange(time.Now(), userLocation)
	if err != nil {
		return err
	}

	minScore := searchMinScore
	if !cmd.Flags().Changed("min-score") && configStore != nil {
		minScore = configStore.GetFloat("embedding.min_score")
	}

	opts := driving.SearchOptions{
		Targets:     targets,
		Limit:       searchLimit,
		Meeting:     searchMeeting,
		ContextSize: searchContext,
		Speaker:     speaker,
		DateRange:   rng,
		MinScore:    float32(minScore),
	}

	ctx := context.Background()

	switch {
	case searchSemantic:
		return runSemanticSearch(ctx, cmd, query, opts)
	case searchContext >= 0:
		return runContextSearch(ctx, cmd, query, opts)
	default:
		return runKeywordSearch(ctx, cmd, query, opts)
	}
}

func runKeywordSearch(ctx context.Context, cmd *cobra.Command, query string, opts driving.SearchOptions) error {
	docs, err := searchService.Keyword(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if flagJSON {
		return outputJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No matches found.")
		return nil
	}
	for i := range docs {
		title := docs[i].Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("%s  %s  %s\n",
			styled(dimStyle, formatDate(docs[i].CreatedAt)),
			styled(titleStyle, title),
			styled(dimStyle, docs[i].ID))
	}
	return nil
}

func runContextSearch(ctx context.Context, cmd *cobra.Command, query string, opts driving.SearchOptions) error {
	var results contextResults
	var err error

	if domain.HasTarget(opts.Targets, domain.TargetTranscripts) {
		results.TranscriptResults, err = searchService.TranscriptContext(ctx, query, opts)
		if err != nil {
			return fmt.Errorf("searching transcripts: %w", err)
		}
	}
	if domain.HasTarget(opts.Targets, domain.TargetNotes) {
		results.NotesResults, err = searchService.NotesContext(ctx, query, opts)
		if err != nil {
			return fmt.Errorf("searching notes: %w", err)
		}
	}
	if domain.HasTarget(opts.Targets, domain.TargetPanels) {
		results.PanelResults, err = searchService.PanelContext(ctx, query, opts)
		if err != nil {
			return fmt.Errorf("searching panels: %w", err)
		}
	}

	if flagJSON {
		return outputJSON(cmd, results)
	}

	total := len(results.TranscriptResults) + len(results.NotesResults) + len(results.PanelResults)
	if total == 0 {
		cmd.Println("No matches found.")
		return nil
	}

	for _, w := range results.TranscriptResults {
		cmd.Printf("%s\n", styled(dimStyle, w.DocumentID))
		for _, u := range w.Before {
			cmd.Printf("  [%s] %s\n", speakerLabel(u.Source), u.Text)
		}
		cmd.Printf("  [%s] %s\n", speakerLabel(w.Matched.Source), styled(matchStyle, w.Matched.Text))
		for _, u := range w.After {
			cmd.Printf("  [%s] %s\n", speakerLabel(u.Source), u.Text)
		}
		cmd.Println()
	}

	printTextResults(cmd, "Notes", results.NotesResults)
	printTextResults(cmd, "AI notes", results.PanelResults)
	return nil
}

func printTextResults(cmd *cobra.Command, kind string, results []driving.TextSearchResult) {
	for _, r := range results {
		title := r.DocumentTitle
		if title == "" {
			title = r.DocumentID
		}
		cmd.Printf("%s %s\n", styled(labelStyle, kind+":"), styled(titleStyle, title))
		for _, w := range r.Windows {
			for _, seg := range w.Before {
				cmd.Printf("  %s\n", seg.Text)
			}
			if w.Matched.Label != nil {
				cmd.Printf("  %s %s\n", styled(labelStyle, *w.Matched.Label+":"), styled(matchStyle, w.Matched.Text))
			} else {
				cmd.Printf("  %s\n", styled(matchStyle, w.Matched.Text))
			}
			for _, seg := range w.After {
				cmd.Printf("  %s\n", seg.Text)
			}
			cmd.Println()
		}
	}
}

func runSemanticSearch(ctx context.Context, cmd *cobra.Command, query string, opts driving.SearchOptions) error {
	hits, err := searchService.Semantic(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("semantic search: %w", err)
	}

	if flagJSON {
		return outputJSON(cmd, hits)
	}

	if len(hits) == 0 {
		cmd.Println("No matches found.")
		return nil
	}
	for i := range hits {
		title := hits[i].Document.Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("%.3f  %s  %s\n",
			hits[i].Result.Score,
			styled(titleStyle, title),
			styled(dimStyle, formatDate(hits[i].Document.CreatedAt)))
		if hits[i].Result.MatchContext != "" {
			cmd.Printf("       %s\n", styled(dimStyle, hits[i].Result.MatchContext))
		}
		cmd.Printf("       %s\n", hits[i].Result.MatchedText)
		cmd.Println()
	}
	return nil
}
