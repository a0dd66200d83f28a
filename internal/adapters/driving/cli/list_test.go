package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

func testMeetingDocs() []domain.Document {
	return []domain.Document{
		{
			ID:        "aaa-111",
			Title:     "Weekly Sync",
			CreatedAt: "2026-01-20T10:00:00Z",
			Summary:   "Budget and staffing.",
		},
		{
			ID:        "bbb-222",
			Title:     "Roadmap Review",
			CreatedAt: "2026-01-15T09:00:00Z",
		},
	}
}

func TestListCmd_Use(t *testing.T) {
	assert.Equal(t, "list", listCmd.Use)
}

func TestListCmd_PrintsMeetings(t *testing.T) {
	cleanup := setupTestServices(&stubMeetings{docs: testMeetingDocs()}, nil, nil, nil)
	defer cleanup()

	out, err := executeCLI("list")

	require.NoError(t, err)
	assert.Contains(t, out, "Weekly Sync")
	assert.Contains(t, out, "Roadmap Review")
	assert.Contains(t, out, "aaa-111")
	assert.Contains(t, out, "Budget and staffing.")
	assert.Contains(t, out, "Total: 2 meetings")
}

func TestListCmd_EmptyStore(t *testing.T) {
	cleanup := setupTestServices(&stubMeetings{}, nil, nil, nil)
	defer cleanup()

	out, err := executeCLI("list")

	require.NoError(t, err)
	assert.Contains(t, out, "No meetings found.")
}

func TestListCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices(&stubMeetings{docs: testMeetingDocs()}, nil, nil, nil)
	defer cleanup()

	out, err := executeCLI("list", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"id": "aaa-111"`)
	assert.Contains(t, out, `"title": "Weekly Sync"`)
}

func TestListCmd_UntitledMeeting(t *testing.T) {
	cleanup := setupTestServices(&stubMeetings{docs: []domain.Document{
		{ID: "ccc-333", CreatedAt: "2026-01-10T08:00:00Z"},
	}}, nil, nil, nil)
	defer cleanup()

	out, err := executeCLI("list")

	require.NoError(t, err)
	assert.Contains(t, out, "(untitled)")
}

func TestListCmd_InvalidDateFlag(t *testing.T) {
	cleanup := setupTestServices(&stubMeetings{}, nil, nil, nil)
	defer func() {
		listDates = dateFlags{}
		cleanup()
	}()

	_, err := executeCLI("list", "--on", "not-a-date")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "not-a-date")
}

func TestListCmd_PersonFlag(t *testing.T) {
	meetings := &stubMeetings{withDocs: testMeetingDocs()}
	cleanup := setupTestServices(meetings, nil, nil, nil)
	defer func() {
		listPerson = ""
		cleanup()
	}()

	out, err := executeCLI("list", "--person", "ana")

	require.NoError(t, err)
	assert.Equal(t, "ana", meetings.lastPerson)
	assert.Contains(t, out, "Weekly Sync")
	assert.Contains(t, out, "Total: 2 meetings")
}

func TestListCmd_PersonFlagWithDateRange(t *testing.T) {
	meetings := &stubMeetings{withDocs: testMeetingDocs()}
	cleanup := setupTestServices(meetings, nil, nil, nil)
	defer func() {
		listPerson = ""
		listDates = dateFlags{}
		cleanup()
	}()

	// Only the Jan 20 meeting falls inside the range.
	out, err := executeCLI("list", "--person", "ana",
		"--from", "2026-01-18", "--to", "2026-01-25", "--utc")

	require.NoError(t, err)
	assert.Contains(t, out, "Weekly Sync")
	assert.NotContains(t, out, "Roadmap Review")
	assert.Contains(t, out, "Total: 1 meetings")
}

func TestRecentCmd_ListsThisWeek(t *testing.T) {
	meetings := &stubMeetings{docs: testMeetingDocs()}
	cleanup := setupTestServices(meetings, nil, nil, nil)
	defer cleanup()

	out, err := executeCLI("recent", "--utc")

	require.NoError(t, err)
	assert.Contains(t, out, "Weekly Sync")
	require.NotNil(t, meetings.lastRange)
	require.NotNil(t, meetings.lastRange.Start)
	require.NotNil(t, meetings.lastRange.End)
	assert.Equal(t, time.Monday, meetings.lastRange.Start.Weekday())
	assert.Equal(t, 7*24*time.Hour, meetings.lastRange.End.Sub(*meetings.lastRange.Start))
}

func TestTodayCmd_ListsToday(t *testing.T) {
	meetings := &stubMeetings{docs: testMeetingDocs()}
	cleanup := setupTestServices(meetings, nil, nil, nil)
	defer cleanup()

	out, err := executeCLI("today", "--utc")

	require.NoError(t, err)
	assert.Contains(t, out, "Weekly Sync")
	require.NotNil(t, meetings.lastRange)
	require.NotNil(t, meetings.lastRange.Start)
	require.NotNil(t, meetings.lastRange.End)
	assert.Equal(t, 24*time.Hour, meetings.lastRange.End.Sub(*meetings.lastRange.Start))
	assert.True(t, meetings.lastRange.Contains(time.Now().UTC()))
}

func TestListCmd_RejectsArgs(t *testing.T) {
	cleanup := setupTestServices(&stubMeetings{}, nil, nil, nil)
	defer cleanup()

	_, err := executeCLI("list", "extra")

	assert.Error(t, err)
}
