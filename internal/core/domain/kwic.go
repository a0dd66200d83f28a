package domain

// ContextWindow is a keyword-in-context transcript hit: the matched
// utterance framed by up to N neighbours on each side, never crossing
// document boundaries.
type ContextWindow struct {
	DocumentID string      `json:"document_id"`
	Matched    Utterance   `json:"matched"`
	Before     []Utterance `json:"before"`
	After      []Utterance `json:"after"`
}

// WindowAt assembles the context window for a match at index i of a
// document's ordered utterances.
func WindowAt(documentID string, utterances []Utterance, i, contextSize int) ContextWindow {
	lo := i - contextSize
	if lo < 0 {
		lo = 0
	}
	hi := i + contextSize
	if hi > len(utterances)-1 {
		hi = len(utterances) - 1
	}

	return ContextWindow{
		DocumentID: documentID,
		Matched:    utterances[i],
		Before:     append([]Utterance{}, utterances[lo:i]...),
		After:      append([]Utterance{}, utterances[i+1:hi+1]...),
	}
}

// WindowBetween assembles a window around the centre of an index span,
// used to re-anchor semantic transcript matches in their document.
func WindowBetween(documentID string, utterances []Utterance, startIdx, endIdx, contextSize int) ContextWindow {
	centre := (startIdx + endIdx) / 2
	if centre > len(utterances)-1 {
		centre = len(utterances) - 1
	}
	if centre < 0 {
		centre = 0
	}
	return WindowAt(documentID, utterances, centre, contextSize)
}

// TextSegment is a labelled piece of notes or panel text. Notes paragraphs
// carry no label; panel sections are labelled with their heading.
type TextSegment struct {
	Label *string `json:"label,omitempty"`
	Text  string  `json:"text"`
}

// TextContextWindow frames a matched segment with its neighbours.
type TextContextWindow struct {
	Matched TextSegment   `json:"matched"`
	Before  []TextSegment `json:"before"`
	After   []TextSegment `json:"after"`
}

// BuildTextContextWindows returns one window per segment whose text
// contains query (case-insensitive), framed by up to contextSize segments
// on each side.
func BuildTextContextWindows(segments []TextSegment, query string, contextSize int) []TextContextWindow {
	var windows []TextContextWindow
	for i, seg := range segments {
		if !ContainsIgnoreCase(seg.Text, query) {
			continue
		}
		lo := i - contextSize
		if lo < 0 {
			lo = 0
		}
		hi := i + contextSize
		if hi > len(segments)-1 {
			hi = len(segments) - 1
		}
		windows = append(windows, TextContextWindow{
			Matched: seg,
			Before:  append([]TextSegment{}, segments[lo:i]...),
			After:   append([]TextSegment{}, segments[i+1:hi+1]...),
		})
	}
	return windows
}
