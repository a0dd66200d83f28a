package domain

import (
	"strings"
	"unicode"
)

// panelFooterPrefix starts the "Chat with ..." trailer the capture service
// appends to panel markdown.
const panelFooterPrefix = "Chat with"

// ContainsIgnoreCase reports whether haystack contains needle, ignoring
// case. An empty needle always matches.
func ContainsIgnoreCase(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// StripPanelFooter removes the trailing "Chat with ..." line from panel
// markdown, together with the "---" separator that usually precedes it.
// Idempotent: stripping already-stripped content is a no-op.
func StripPanelFooter(content string) string {
	trimmed := strings.TrimRightFunc(content, unicode.IsSpace)

	if i := strings.Index(trimmed, "\n"+panelFooterPrefix); i >= 0 {
		out := strings.TrimRightFunc(trimmed[:i], unicode.IsSpace)
		out = strings.TrimSuffix(out, "---")
		return strings.TrimRightFunc(out, unicode.IsSpace)
	}

	// A panel that is nothing but the footer strips to empty.
	if strings.HasPrefix(trimmed, panelFooterPrefix) {
		return ""
	}

	return trimmed
}

// Section is one labelled slice of a panel document.
type Section struct {
	// Heading is nil for preamble text and for unheaded content.
	Heading *string `json:"heading"`
	Body    string  `json:"body"`
}

// SplitMarkdownSections splits panel markdown into sections at its most
// significant header level.
//
// The level is the one with the most header lines; ties go to the deepest
// level, since shallow headers tend to be titles and deep headers tend to
// be the actual content sections. Text before the first chosen-level header
// becomes an unheaded preamble section. Headers of other levels are left
// inside section bodies untouched.
func SplitMarkdownSections(content string) []Section {
	counts := headerLevelCounts(content)

	level := 0
	for l := 1; l <= 6; l++ {
		// >= so that equal counts resolve to the deeper level.
		if counts[l] > 0 && counts[l] >= counts[level] {
			level = l
		}
	}

	if level == 0 {
		trimmed := strings.TrimSpace(content)
		if trimmed == "" {
			return nil
		}
		return []Section{{Body: trimmed}}
	}

	marker := strings.Repeat("#", level) + " "

	var starts []int
	if strings.HasPrefix(content, marker) {
		starts = append(starts, 0)
	}
	for i := 0; ; {
		j := strings.Index(content[i:], "\n"+marker)
		if j < 0 {
			break
		}
		starts = append(starts, i+j+1)
		i += j + 1
	}

	var sections []Section
	if pre := strings.TrimSpace(content[:starts[0]]); pre != "" {
		sections = append(sections, Section{Body: pre})
	}

	for si, start := range starts {
		end := len(content)
		if si+1 < len(starts) {
			end = starts[si+1]
		}
		line, rest, _ := strings.Cut(content[start:end], "\n")
		body := strings.TrimSpace(rest)
		if body == "" {
			continue
		}
		heading := strings.TrimSpace(strings.TrimPrefix(line, marker))
		sections = append(sections, Section{Heading: &heading, Body: body})
	}

	return sections
}

// headerLevelCounts counts markdown header lines per level 1..6.
// A header line is 1-6 '#' characters followed by a single space.
func headerLevelCounts(content string) [7]int {
	var counts [7]int
	for _, line := range strings.Split(content, "\n") {
		level := 0
		for level < len(line) && line[level] == '#' {
			level++
		}
		if level >= 1 && level <= 6 && level < len(line) && line[level] == ' ' {
			counts[level]++
		}
	}
	return counts
}

// SplitParagraphs partitions text on blank lines, trimming each paragraph
// and dropping empty ones.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
