package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPeople(t *testing.T, s *Store) {
	t.Helper()
	rows := [][]any{
		{"per-1", "Ana Costa", "ana@acme.test", "Acme", "Engineer"},
		{"per-2", "Ben Okafor", "ben@other.test", "Other Co", "Designer"},
		{"per-3", "Cleo Varga", "cleo@acme.test", "Acme", nil},
	}
	for _, r := range rows {
		_, err := s.db.Exec(
			"INSERT INTO people (id, name, email, company_name, job_title) VALUES (?, ?, ?, ?, ?)",
			r...)
		require.NoError(t, err)
	}
}

func TestListPeople(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)
	ctx := context.Background()

	people, err := s.PeopleStore().ListPeople(ctx, "")
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "Ana Costa", people[0].Name)
	assert.Equal(t, "Ben Okafor", people[1].Name)

	acme, err := s.PeopleStore().ListPeople(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, acme, 2)
}

func TestFindPeople(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)
	ctx := context.Background()

	found, err := s.PeopleStore().FindPeople(ctx, "ben")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "per-2", found[0].ID)

	// Email substring matches too.
	found, err = s.PeopleStore().FindPeople(ctx, "@acme.test")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = s.PeopleStore().FindPeople(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestMeetingsWithPerson(t *testing.T) {
	s := newTestStore(t)
	seedMeetings(t, s)
	ctx := context.Background()

	junction := [][]any{
		{"aaa-111", "ana@acme.test", "Ana Costa"},
		{"bbb-222", "ben@other.test", "Ben Okafor"},
		{"ccc-333", "ana@acme.test", "Ana Costa"},
	}
	for _, r := range junction {
		_, err := s.db.Exec(
			"INSERT INTO document_people (document_id, email, full_name) VALUES (?, ?, ?)", r...)
		require.NoError(t, err)
	}

	docs, err := s.PeopleStore().MeetingsWithPerson(ctx, "ana", false)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "aaa-111", docs[0].ID)

	// Deleted documents come back on request.
	docs, err = s.PeopleStore().MeetingsWithPerson(ctx, "ana", true)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = s.PeopleStore().MeetingsWithPerson(ctx, "nobody", false)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
