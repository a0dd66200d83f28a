package domain

import (
	"fmt"
	"strings"
)

// SearchTarget selects which content a search fans out over.
type SearchTarget int

const (
	TargetTitles SearchTarget = iota
	TargetTranscripts
	TargetNotes
	TargetPanels
)

// String returns the flag spelling of the target.
func (t SearchTarget) String() string {
	switch t {
	case TargetTitles:
		return "titles"
	case TargetTranscripts:
		return "transcripts"
	case TargetNotes:
		return "notes"
	case TargetPanels:
		return "panels"
	default:
		return "unknown"
	}
}

// SourceType maps the target to its embedding chunk source type.
// Titles have no embeddings and map to "".
func (t SearchTarget) SourceType() string {
	switch t {
	case TargetTranscripts:
		return SourceTranscriptWindow
	case TargetNotes:
		return SourceNotesParagraph
	case TargetPanels:
		return SourcePanelSection
	default:
		return ""
	}
}

// ParseSearchTargets parses a comma-separated, case-insensitive target list.
// Unknown tokens are dropped silently; duplicates collapse to the first
// occurrence.
func ParseSearchTargets(s string) []SearchTarget {
	var targets []SearchTarget
	seen := map[SearchTarget]bool{}
	for _, token := range strings.Split(s, ",") {
		var t SearchTarget
		switch strings.ToLower(strings.TrimSpace(token)) {
		case "titles":
			t = TargetTitles
		case "transcripts":
			t = TargetTranscripts
		case "notes":
			t = TargetNotes
		case "panels":
			t = TargetPanels
		default:
			continue
		}
		if !seen[t] {
			seen[t] = true
			targets = append(targets, t)
		}
	}
	return targets
}

// HasTarget reports whether target is in the selection.
func HasTarget(targets []SearchTarget, target SearchTarget) bool {
	for _, t := range targets {
		if t == target {
			return true
		}
	}
	return false
}

// SemanticSourceFilter derives the chunk source types a semantic search may
// match. A nil result means "no filter" (every embedded chunk qualifies); a
// non-nil empty result means "match nothing". The filter is nil exactly when
// all three embeddable targets are selected, regardless of Titles.
func SemanticSourceFilter(targets []SearchTarget) []string {
	filter := []string{}
	for _, t := range targets {
		st := t.SourceType()
		if st == "" {
			continue
		}
		duplicate := false
		for _, existing := range filter {
			if existing == st {
				duplicate = true
				break
			}
		}
		if !duplicate {
			filter = append(filter, st)
		}
	}
	if len(filter) == 3 {
		return nil
	}
	return filter
}

// SpeakerFilter restricts transcript matches by who spoke.
type SpeakerFilter string

const (
	// SpeakerMe matches utterances captured from the microphone.
	SpeakerMe SpeakerFilter = "me"

	// SpeakerOther matches utterances captured from system audio.
	SpeakerOther SpeakerFilter = "other"
)

// ParseSpeakerFilter parses a --speaker value.
func ParseSpeakerFilter(s string) (SpeakerFilter, error) {
	switch strings.ToLower(s) {
	case "me":
		return SpeakerMe, nil
	case "other":
		return SpeakerOther, nil
	default:
		return "", fmt.Errorf("%w: speaker %q (want me or other)", ErrInvalidInput, s)
	}
}

// Source returns the utterance source label the filter selects.
func (f SpeakerFilter) Source() string {
	if f == SpeakerMe {
		return "microphone"
	}
	return "system"
}
