package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

var testNow = time.Date(2026, 1, 22, 12, 0, 0, 0, time.UTC)

func TestDateFlags_NoFlagsIsNilRange(t *testing.T) {
	f := dateFlags{}

	rng, err := f.buildRange(testNow, time.UTC)

	require.NoError(t, err)
	assert.Nil(t, rng)
}

func TestDateFlags_OnRelativeTerm(t *testing.T) {
	f := dateFlags{on: "today"}

	rng, err := f.buildRange(testNow, time.UTC)

	require.NoError(t, err)
	require.NotNil(t, rng)
	assert.Equal(t, time.Date(2026, 1, 22, 0, 0, 0, 0, time.UTC), *rng.Start)
	assert.Equal(t, time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC), *rng.End)
}

func TestDateFlags_OnSingleDay(t *testing.T) {
	f := dateFlags{on: "2026-01-10"}

	rng, err := f.buildRange(testNow, time.UTC)

	require.NoError(t, err)
	require.NotNil(t, rng)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), *rng.Start)
	assert.Equal(t, time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC), *rng.End)
}

func TestDateFlags_OnSingleDayInOffsetZone(t *testing.T) {
	loc := time.FixedZone("-05:00", -5*3600)
	f := dateFlags{on: "2026-01-10"}

	rng, err := f.buildRange(testNow, loc)

	require.NoError(t, err)
	require.NotNil(t, rng)
	assert.Equal(t, time.Date(2026, 1, 10, 5, 0, 0, 0, time.UTC), *rng.Start)
}

func TestDateFlags_OnInvalid(t *testing.T) {
	f := dateFlags{on: "someday"}

	_, err := f.buildRange(testNow, time.UTC)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "someday")
}

func TestDateFlags_LastDuration(t *testing.T) {
	f := dateFlags{last: "1w"}

	rng, err := f.buildRange(testNow, time.UTC)

	require.NoError(t, err)
	require.NotNil(t, rng)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), *rng.Start)
	assert.Nil(t, rng.End)
}

func TestDateFlags_LastInvalid(t *testing.T) {
	f := dateFlags{last: "soon"}

	_, err := f.buildRange(testNow, time.UTC)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "--last")
}

func TestDateFlags_FromTo(t *testing.T) {
	f := dateFlags{from: "2026-01-01", to: "2026-02-01"}

	rng, err := f.buildRange(testNow, time.UTC)

	require.NoError(t, err)
	require.NotNil(t, rng)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *rng.Start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *rng.End)
}

func TestDateFlags_FromInvalid(t *testing.T) {
	f := dateFlags{from: "whenever"}

	_, err := f.buildRange(testNow, time.UTC)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "--from")
}

func TestDateFlags_ToInvalid(t *testing.T) {
	f := dateFlags{to: "whenever"}

	_, err := f.buildRange(testNow, time.UTC)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "--to")
}
