package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateRange is a half-open UTC interval: Start <= t < End.
// A nil bound is unbounded on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && !t.Before(*r.End) {
		return false
	}
	return true
}

// ParseRelative resolves a relative term ("today", "yesterday", "this-week",
// "last-week", "this-month", "last-month") into a UTC range whose boundaries
// are calendar boundaries in loc. Weeks start on Monday. Unknown terms
// return nil.
func ParseRelative(term string, now time.Time, loc *time.Location) *DateRange {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var start, end time.Time
	switch term {
	case "today":
		start, end = midnight, midnight.AddDate(0, 0, 1)
	case "yesterday":
		start, end = midnight.AddDate(0, 0, -1), midnight
	case "this-week":
		monday := midnight.AddDate(0, 0, -mondayOffset(local))
		start, end = monday, monday.AddDate(0, 0, 7)
	case "last-week":
		monday := midnight.AddDate(0, 0, -mondayOffset(local))
		start, end = monday.AddDate(0, 0, -7), monday
	case "this-month":
		first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		start, end = first, first.AddDate(0, 1, 0)
	case "last-month":
		first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		start, end = first.AddDate(0, -1, 0), first
	default:
		return nil
	}

	s, e := start.UTC(), end.UTC()
	return &DateRange{Start: &s, End: &e}
}

// mondayOffset is the number of days since the most recent Monday.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseAbsolute parses a full RFC 3339 datetime (used verbatim, independent
// of loc) or a YYYY-MM-DD date interpreted as local midnight in loc.
// Anything else returns nil.
func ParseAbsolute(s string, loc *time.Location) *time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		u := t.UTC()
		return &u
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		u := t.UTC()
		return &u
	}
	return nil
}

// ParseDuration parses "<n><unit>" with unit d, w or m and n >= 1, subtracts
// that span from now, and snaps the result to local midnight in loc.
// Month arithmetic works on the local calendar and clamps the day to the
// last valid day of the target month. Invalid input returns nil.
func ParseDuration(s string, now time.Time, loc *time.Location) *time.Time {
	if len(s) < 2 {
		return nil
	}
	unit := s[len(s)-1]
	n, err := strconv.ParseUint(s[:len(s)-1], 10, 32)
	if err != nil || n < 1 {
		return nil
	}

	var t time.Time
	switch unit {
	case 'd':
		t = now.Add(-time.Duration(n) * 24 * time.Hour)
	case 'w':
		t = now.Add(-time.Duration(n) * 7 * 24 * time.Hour)
	case 'm':
		local := now.In(loc)
		year, month, day := subtractMonths(local.Year(), local.Month(), local.Day(), int(n))
		t = time.Date(year, month, day, local.Hour(), local.Minute(), local.Second(), 0, loc)
	default:
		return nil
	}

	local := t.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
	return &midnight
}

// subtractMonths walks n months back from (year, month), clamping day to the
// target month's length. Never produces an invalid date.
func subtractMonths(year int, month time.Month, day, n int) (int, time.Month, int) {
	total := year*12 + int(month) - 1 - n
	targetYear := total / 12
	targetMonth := total%12 + 1
	if total < 0 && total%12 != 0 {
		// Floor division for dates before year zero.
		targetYear--
		targetMonth += 12
	}
	if max := daysInMonth(targetYear, time.Month(targetMonth)); day > max {
		day = max
	}
	return targetYear, time.Month(targetMonth), day
}

// daysInMonth returns the length of a month under the Gregorian leap rule.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildDateRange combines the date flags into a single range. A relative
// term takes precedence over explicit bounds. Each explicit bound is tried
// as an absolute date first, then as a duration. When nothing parses, the
// result is nil.
func BuildDateRange(from, to, relative string, now time.Time, loc *time.Location) *DateRange {
	if relative != "" {
		return ParseRelative(relative, now, loc)
	}

	resolve := func(s string) *time.Time {
		if s == "" {
			return nil
		}
		if t := ParseAbsolute(s, loc); t != nil {
			return t
		}
		return ParseDuration(s, now, loc)
	}

	start := resolve(from)
	end := resolve(to)
	if start == nil && end == nil {
		return nil
	}
	return &DateRange{Start: start, End: end}
}

// ParseTimezone resolves a --tz value: "UTC", a fixed offset like "+09:00"
// or "-05:00", or an IANA zone name.
func ParseTimezone(s string) (*time.Location, error) {
	if s == "" || strings.EqualFold(s, "utc") {
		return time.UTC, nil
	}
	if len(s) == 6 && (s[0] == '+' || s[0] == '-') && s[3] == ':' {
		hours, errH := strconv.Atoi(s[1:3])
		mins, errM := strconv.Atoi(s[4:6])
		if errH == nil && errM == nil && hours <= 14 && mins < 60 {
			offset := hours*3600 + mins*60
			if s[0] == '-' {
				offset = -offset
			}
			return time.FixedZone(s, offset), nil
		}
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q", ErrInvalidInput, s)
	}
	return loc, nil
}
