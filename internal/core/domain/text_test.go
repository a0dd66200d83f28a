package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsIgnoreCase(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{"exact match", "hello world", "hello", true},
		{"mixed case", "Hello World", "hello", true},
		{"needle upper", "hello world", "WORLD", true},
		{"no match", "hello world", "goodbye", false},
		{"empty needle always matches", "anything", "", true},
		{"empty haystack", "", "x", false},
		{"unicode", "Café Meeting", "café", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsIgnoreCase(tt.haystack, tt.needle))
		})
	}
}

func TestStripPanelFooter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "footer with separator",
			content: "# Summary\n\nKey points here.\n\n---\n\nChat with AI about this meeting",
			want:    "# Summary\n\nKey points here.",
		},
		{
			name:    "footer without separator",
			content: "# Summary\n\nKey points here.\n\nChat with AI about this meeting",
			want:    "# Summary\n\nKey points here.",
		},
		{
			name:    "no footer",
			content: "# Summary\n\nKey points here.",
			want:    "# Summary\n\nKey points here.",
		},
		{
			name:    "only footer",
			content: "Chat with AI about this meeting",
			want:    "",
		},
		{
			name:    "trailing whitespace",
			content: "# Summary\n\nDone.\n\n\n",
			want:    "# Summary\n\nDone.",
		},
		{
			name:    "empty",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPanelFooter(tt.content))
		})
	}
}

func TestStripPanelFooterIdempotent(t *testing.T) {
	inputs := []string{
		"# Summary\n\nPoints.\n\n---\n\nChat with AI",
		"# Summary\n\nPoints.",
		"Chat with AI",
		"",
	}
	for _, in := range inputs {
		once := StripPanelFooter(in)
		assert.Equal(t, once, StripPanelFooter(once))
	}
}

func heading(s string) *string { return &s }

func TestSplitMarkdownSectionsBasic(t *testing.T) {
	content := "### First\n\nbody one\n\n### Second\n\nbody two"
	sections := SplitMarkdownSections(content)

	require.Len(t, sections, 2)
	assert.Equal(t, heading("First"), sections[0].Heading)
	assert.Equal(t, "body one", sections[0].Body)
	assert.Equal(t, heading("Second"), sections[1].Heading)
	assert.Equal(t, "body two", sections[1].Body)
}

func TestSplitMarkdownSectionsTitlePreamble(t *testing.T) {
	// One h1 title, two h3 sections: h3 is the most frequent level, the
	// h1 line survives as an unheaded preamble.
	content := "# T\n\n### A\n\nx\n\n### B\n\ny"
	sections := SplitMarkdownSections(content)

	require.Len(t, sections, 3)
	assert.Nil(t, sections[0].Heading)
	assert.Equal(t, "# T", sections[0].Body)
	assert.Equal(t, heading("A"), sections[1].Heading)
	assert.Equal(t, "x", sections[1].Body)
	assert.Equal(t, heading("B"), sections[2].Heading)
	assert.Equal(t, "y", sections[2].Body)
}

func TestSplitMarkdownSectionsNoHeaders(t *testing.T) {
	sections := SplitMarkdownSections("just some plain text\nwith two lines")
	require.Len(t, sections, 1)
	assert.Nil(t, sections[0].Heading)
	assert.Equal(t, "just some plain text\nwith two lines", sections[0].Body)
}

func TestSplitMarkdownSectionsEmpty(t *testing.T) {
	assert.Empty(t, SplitMarkdownSections(""))
	assert.Empty(t, SplitMarkdownSections("   \n\n  "))
}

func TestSplitMarkdownSectionsTieBreaksDeepest(t *testing.T) {
	// One h2 and one h3: tie resolves to the deeper level.
	content := "## Shallow\n\nintro\n\n### Deep\n\ncontent"
	sections := SplitMarkdownSections(content)

	require.Len(t, sections, 2)
	assert.Nil(t, sections[0].Heading)
	assert.Equal(t, "## Shallow\n\nintro", sections[0].Body)
	assert.Equal(t, heading("Deep"), sections[1].Heading)
	assert.Equal(t, "content", sections[1].Body)
}

func TestSplitMarkdownSectionsKeepsOtherLevelsInBody(t *testing.T) {
	content := "## A\n\ntext\n\n#### sub\n\nmore\n\n## B\n\nend"
	sections := SplitMarkdownSections(content)

	require.Len(t, sections, 2)
	assert.Equal(t, heading("A"), sections[0].Heading)
	assert.Contains(t, sections[0].Body, "#### sub")
	assert.Equal(t, heading("B"), sections[1].Heading)
	assert.Equal(t, "end", sections[1].Body)
}

func TestSplitMarkdownSectionsDropsEmptyBodies(t *testing.T) {
	content := "### Empty\n\n### Full\n\ncontent"
	sections := SplitMarkdownSections(content)

	require.Len(t, sections, 1)
	assert.Equal(t, heading("Full"), sections[0].Heading)
	assert.Equal(t, "content", sections[0].Body)
}

func TestSplitMarkdownSectionsNotAHeaderWithoutSpace(t *testing.T) {
	// "#tag" is not a header line.
	sections := SplitMarkdownSections("#tag\nplain text")
	require.Len(t, sections, 1)
	assert.Nil(t, sections[0].Heading)
}

func TestSplitMarkdownSectionsMostFrequentWins(t *testing.T) {
	// Two h2 headers vs one h4: h2 wins despite h4 being deeper.
	content := "## One\n\na\n\n#### Sub\n\nb\n\n## Two\n\nc"
	sections := SplitMarkdownSections(content)

	require.Len(t, sections, 2)
	assert.Equal(t, heading("One"), sections[0].Heading)
	assert.Equal(t, heading("Two"), sections[1].Heading)
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two paragraphs", "first\n\nsecond", []string{"first", "second"}},
		{"extra blank lines", "first\n\n\n\nsecond", []string{"first", "second"}},
		{"whitespace only dropped", "first\n\n   \n\nsecond", []string{"first", "second"}},
		{"single", "only one", []string{"only one"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParagraphs(tt.text))
		})
	}
}
