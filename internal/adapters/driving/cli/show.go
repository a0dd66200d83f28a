package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driving"
)

var (
	showTranscript bool
	showNotes      bool
	showSpeaker    string
)

var showCmd = &cobra.Command{
	Use:   "show [query]",
	Short: "Show one meeting",
	Long: `Shows a single meeting resolved by id, id prefix, or title substring.

AI note panels are always included. Add --notes for your own notes and
--transcript for the full transcript. --speaker me|other keeps only one
side of the transcript and implies --transcript.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showTranscript, "transcript", false, "include the full transcript")
	showCmd.Flags().BoolVar(&showNotes, "notes", false, "include your own notes")
	showCmd.Flags().StringVar(&showSpeaker, "speaker", "", "restrict the transcript by speaker (me or other)")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	var speaker domain.SpeakerFilter
	if showSpeaker != "" {
		var err error
		speaker, err = domain.ParseSpeakerFilter(showSpeaker)
		if err != nil {
			return err
		}
	}

	detail, err := meetingService.Show(context.Background(), args[0], driving.ShowOptions{
		Transcript: showTranscript || speaker != "",
		Notes:      showNotes,
	})
	if err != nil {
		return fmt.Errorf("showing meeting %q: %w", args[0], err)
	}

	if speaker != "" {
		detail.Transcript = filterBySpeaker(detail.Transcript, speaker)
	}

	if flagJSON {
		return outputJSON(cmd, detail)
	}

	printMeetingHeader(cmd, detail.Document)
	printPanels(cmd, detail.Panels)

	if showNotes && detail.Document.NotesMarkdown != "" {
		cmd.Println()
		cmd.Println(styled(labelStyle, "Your notes:"))
		cmd.Println(detail.Document.NotesMarkdown)
	} else if showNotes && detail.Document.NotesPlain != "" {
		cmd.Println()
		cmd.Println(styled(labelStyle, "Your notes:"))
		cmd.Println(detail.Document.NotesPlain)
	}

	wantTranscript := showTranscript || speaker != ""

	if showNotes && wantTranscript {
		cmd.Println("---")
	}

	if wantTranscript {
		cmd.Println()
		cmd.Println(styled(labelStyle, "Transcript:"))
		for i := range detail.Transcript {
			cmd.Printf("[%s] %s\n", speakerLabel(detail.Transcript[i].Source), detail.Transcript[i].Text)
		}
	}

	return nil
}

// filterBySpeaker keeps utterances from one side of the conversation.
func filterBySpeaker(utterances []domain.Utterance, speaker domain.SpeakerFilter) []domain.Utterance {
	var out []domain.Utterance
	for i := range utterances {
		if utterances[i].Source == speaker.Source() {
			out = append(out, utterances[i])
		}
	}
	return out
}

func printMeetingHeader(cmd *cobra.Command, doc domain.Document) {
	title := doc.Title
	if title == "" {
		title = "(untitled)"
	}
	cmd.Println(styled(titleStyle, title))
	cmd.Printf("%s  %s\n", styled(dimStyle, formatDate(doc.CreatedAt)), styled(dimStyle, doc.ID))
	if doc.Summary != "" {
		cmd.Println(doc.Summary)
	}

	if doc.People != nil {
		if doc.People.Creator != nil && doc.People.Creator.Name != "" {
			cmd.Printf("%s %s\n", styled(labelStyle, "Creator:"), personRefLine(*doc.People.Creator))
		}
		if len(doc.People.Attendees) > 0 {
			cmd.Println(styled(labelStyle, "Attendees:"))
			for _, a := range doc.People.Attendees {
				cmd.Printf("  %s\n", personRefLine(a))
			}
		}
	}
}

func personRefLine(ref domain.PersonRef) string {
	switch {
	case ref.Name != "" && ref.Email != "":
		return fmt.Sprintf("%s <%s>", ref.Name, ref.Email)
	case ref.Name != "":
		return ref.Name
	default:
		return ref.Email
	}
}

func printPanels(cmd *cobra.Command, panels []domain.Panel) {
	if len(panels) == 0 {
		return
	}
	cmd.Println()
	cmd.Println(styled(labelStyle, "AI notes:"))
	for i := range panels {
		cmd.Printf("  %s\n", styled(titleStyle, panels[i].Title))
		if content := domain.StripPanelFooter(panels[i].ContentMarkdown); content != "" {
			cmd.Println(indent(content, "  "))
		}
		if panels[i].ChatURL != nil {
			cmd.Printf("  %s %s\n", styled(dimStyle, "chat:"), *panels[i].ChatURL)
		}
	}
}
