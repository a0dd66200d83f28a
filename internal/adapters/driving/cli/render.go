package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// colorEnabled is set once at startup from --no-color and TTY detection.
var colorEnabled = true

// Terminal styles.
var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

// styled renders text through a style unless colour is disabled.
func styled(s lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return s.Render(text)
}

// outputJSON emits one pretty-printed JSON document on stdout.
func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// formatNumber groups an integer with commas.
func formatNumber(n int64) string {
	return humanize.Comma(n)
}

// formatSize renders a byte count with binary units, one decimal above a
// kilobyte.
func formatSize(bytes int64) string {
	const unit = 1024
	switch {
	case bytes >= unit*unit*unit:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(unit*unit*unit))
	case bytes >= unit*unit:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(unit*unit))
	case bytes >= unit:
		return fmt.Sprintf("%.1f KB", float64(bytes)/unit)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatDate converts a stored ISO-8601 timestamp to YYYY-MM-DD in the user
// timezone. Unparseable values degrade to the part before 'T', then to the
// raw string.
func formatDate(iso string) string {
	if iso == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.In(userLocation).Format("2006-01-02")
	}
	if i := strings.Index(iso, "T"); i > 0 {
		return iso[:i]
	}
	return iso
}

// indent prefixes every line of text.
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// speakerLabel renders an utterance source for terminal output.
func speakerLabel(source string) string {
	switch source {
	case "microphone":
		return "me"
	case "system":
		return "them"
	default:
		return "?"
	}
}
