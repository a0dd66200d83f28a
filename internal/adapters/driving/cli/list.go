package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

var (
	listDates  dateFlags
	listPerson string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List meetings",
	Long: `Lists non-deleted meetings, newest first.

Date flags restrict the listing by creation time, e.g.
  grans list --on yesterday
  grans list --last 2w
  grans list --from 2026-01-01 --to 2026-02-01

With --person the listing is restricted to meetings a matching person
created or attended.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List this week's meetings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListRelative(cmd, "this-week")
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "List today's meetings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListRelative(cmd, "today")
	},
}

func init() {
	listDates.register(listCmd.Flags())
	listCmd.Flags().StringVar(&listPerson, "person", "", "only meetings with this person (name or email substring)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(todayCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	rng, err := listDates.buildRange(time.Now(), userLocation)
	if err != nil {
		return err
	}

	if listPerson != "" {
		docs, err := meetingService.WithPerson(context.Background(), listPerson, false)
		if err != nil {
			return fmt.Errorf("listing meetings: %w", err)
		}
		return printMeetingList(cmd, filterByRange(docs, rng))
	}

	docs, err := meetingService.List(context.Background(), rng)
	if err != nil {
		return fmt.Errorf("listing meetings: %w", err)
	}
	return printMeetingList(cmd, docs)
}

// runListRelative lists over a fixed relative range; backs recent and today.
func runListRelative(cmd *cobra.Command, term string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	rng := domain.ParseRelative(term, time.Now(), userLocation)

	docs, err := meetingService.List(context.Background(), rng)
	if err != nil {
		return fmt.Errorf("listing meetings: %w", err)
	}
	return printMeetingList(cmd, docs)
}

// filterByRange keeps documents whose creation time falls inside rng.
// Unparseable timestamps are kept rather than silently dropped.
func filterByRange(docs []domain.Document, rng *domain.DateRange) []domain.Document {
	if rng == nil {
		return docs
	}
	var out []domain.Document
	for i := range docs {
		created, err := time.Parse(time.RFC3339, docs[i].CreatedAt)
		if err != nil || rng.Contains(created) {
			out = append(out, docs[i])
		}
	}
	return out
}

func printMeetingList(cmd *cobra.Command, docs []domain.Document) error {
	if flagJSON {
		return outputJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No meetings found.")
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
		if docs[i].Summary != "" {
			cmd.Printf("            %s\n", docs[i].Summary)
		}
	}
	cmd.Println()
	cmd.Printf("Total: %s meetings\n", formatNumber(int64(len(docs))))
	return nil
}
