package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

func TestInsertTranscriptRoundTrip(t *testing.T) {
	s := newTestStore(t)
	insertDocument(t, s, "doc-1", "Weekly Sync", "2026-01-20T10:00:00Z", nil, "")
	ctx := context.Background()

	isFinal := true
	err := s.TranscriptStore().InsertTranscript(ctx, "doc-1", []domain.Utterance{
		{ID: "u1", Text: "first line", Source: "microphone", IsFinal: &isFinal},
		{Text: "second line", Source: "system"},
	})
	require.NoError(t, err)

	utterances, err := s.TranscriptStore().DocumentUtterances(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, utterances, 2)

	assert.Equal(t, "u1", utterances[0].ID)
	assert.Equal(t, "first line", utterances[0].Text)
	require.NotNil(t, utterances[0].IsFinal)
	assert.True(t, *utterances[0].IsFinal)

	// Utterances without an id get one assigned.
	assert.NotEmpty(t, utterances[1].ID)
	assert.Equal(t, "system", utterances[1].Source)
	assert.Nil(t, utterances[1].IsFinal)

	// Re-inserting replaces, not appends.
	err = s.TranscriptStore().InsertTranscript(ctx, "doc-1", []domain.Utterance{
		{Text: "only line", Source: "microphone"},
	})
	require.NoError(t, err)

	utterances, err = s.TranscriptStore().DocumentUtterances(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, utterances, 1)
	assert.Equal(t, "only line", utterances[0].Text)
}

func TestInsertTranscriptRedactsSnapshot(t *testing.T) {
	s := newTestStore(t)
	insertDocument(t, s, "doc-1", "Weekly Sync", "2026-01-20T10:00:00Z", nil, "")
	ctx := context.Background()

	err := s.TranscriptStore().InsertTranscript(ctx, "doc-1", []domain.Utterance{
		{ID: "u1", Text: "something confidential", Source: "microphone"},
	})
	require.NoError(t, err)

	var snapshot string
	err = s.db.QueryRow("SELECT api_snapshot FROM transcript_utterances WHERE id = 'u1'").Scan(&snapshot)
	require.NoError(t, err)
	assert.Contains(t, snapshot, redactedText)
	assert.NotContains(t, snapshot, "confidential")
}

func TestMatchingUtterances(t *testing.T) {
	s := newTestStore(t)
	insertDocument(t, s, "doc-1", "Weekly Sync", "2026-01-20T10:00:00Z", nil, "")
	insertDocument(t, s, "doc-2", "Roadmap Review", "2026-01-19T09:00:00Z", nil, "")
	ctx := context.Background()

	require.NoError(t, s.TranscriptStore().InsertTranscript(ctx, "doc-1", []domain.Utterance{
		{Text: "the budget is tight", Source: "microphone"},
		{Text: "unrelated chatter", Source: "system"},
	}))
	require.NoError(t, s.TranscriptStore().InsertTranscript(ctx, "doc-2", []domain.Utterance{
		{Text: "budget again", Source: "system"},
	}))

	matches, err := s.TranscriptStore().MatchingUtterances(ctx, "budget", "", "", nil)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	// Restricted to one document.
	matches, err = s.TranscriptStore().MatchingUtterances(ctx, "budget", "doc-2", "", nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "doc-2", matches[0].DocumentID)

	// Restricted by speaker.
	matches, err = s.TranscriptStore().MatchingUtterances(ctx, "budget", "", "microphone", nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "doc-1", matches[0].DocumentID)

	// FTS operators are matched literally, not interpreted.
	matches, err = s.TranscriptStore().MatchingUtterances(ctx, `budget AND missing`, "", "", nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestTranscriptSyncStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _, err := s.TranscriptStore().SyncStatus(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.TranscriptStore().UpsertSyncStatus(ctx, "doc-1", "failed", "2026-01-22T12:00:00Z"))

	status, attempts, err := s.TranscriptStore().SyncStatus(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "failed", status)
	assert.Equal(t, 1, attempts)

	// Repeat attempts increment the counter.
	require.NoError(t, s.TranscriptStore().UpsertSyncStatus(ctx, "doc-1", "ok", "2026-01-22T13:00:00Z"))

	status, attempts, err = s.TranscriptStore().SyncStatus(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "ok", status)
	assert.Equal(t, 2, attempts)
}
