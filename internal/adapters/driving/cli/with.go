package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var withIncludeDeleted bool

var withCmd = &cobra.Command{
	Use:   "with [person]",
	Short: "List meetings with a person",
	Long: `Lists meetings a person created or attended, matched by name or
email substring. An unknown person yields an empty listing, not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runWith,
}

func init() {
	withCmd.Flags().BoolVar(&withIncludeDeleted, "include-deleted", false, "include soft-deleted meetings")
	rootCmd.AddCommand(withCmd)
}

func runWith(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	docs, err := meetingService.WithPerson(context.Background(), args[0], withIncludeDeleted)
	if err != nil {
		return fmt.Errorf("listing meetings with %q: %w", args[0], err)
	}

	if flagJSON {
		return outputJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Printf("No meetings found with %s.\n", args[0])
		return nil
	}
	for i := range docs {
		title := docs[i].Title
		if title == "" {
			title = "(untitled)"
		}
		marker := ""
		if docs[i].Deleted() {
			marker = "  " + styled(dimStyle, "(deleted)")
		}
		cmd.Printf("%s  %s  %s%s\n",
			styled(dimStyle, formatDate(docs[i].CreatedAt)),
			styled(titleStyle, title),
			styled(dimStyle, docs[i].ID),
			marker)
	}
	return nil
}
