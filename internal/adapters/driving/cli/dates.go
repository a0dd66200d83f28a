package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// dateFlags are the shared date-filter flags. --on takes a relative term or
// a single day; --last is shorthand for --from with a duration.
type dateFlags struct {
	from string
	to   string
	last string
	on   string
}

// register adds the date flags to a command's flag set.
func (f *dateFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "start date (YYYY-MM-DD, RFC 3339, or a duration like 7d)")
	fs.StringVar(&f.to, "to", "", "end date, exclusive (same forms as --from)")
	fs.StringVar(&f.last, "last", "", "look back a duration from now (e.g. 2w, 1m)")
	fs.StringVar(&f.on, "on", "", "a single day (YYYY-MM-DD) or a relative term (today, yesterday, this-week, last-week, this-month, last-month)")
}

// buildRange resolves the date flags into a range. Returns nil when no flag
// is set, and ErrInvalidInput naming the offending value otherwise.
func (f *dateFlags) buildRange(now time.Time, loc *time.Location) (*domain.DateRange, error) {
	if f.on != "" {
		if rng := domain.ParseRelative(f.on, now, loc); rng != nil {
			return rng, nil
		}
		if day, err := time.ParseInLocation("2006-01-02", f.on, loc); err == nil {
			start, end := day.UTC(), day.AddDate(0, 0, 1).UTC()
			return &domain.DateRange{Start: &start, End: &end}, nil
		}
		return nil, fmt.Errorf("%w: --on %q", domain.ErrInvalidInput, f.on)
	}

	from := f.from
	if f.last != "" {
		if domain.ParseDuration(f.last, now, loc) == nil {
			return nil, fmt.Errorf("%w: --last %q", domain.ErrInvalidInput, f.last)
		}
		from = f.last
	}

	rng := domain.BuildDateRange(from, f.to, "", now, loc)
	if rng == nil {
		if from != "" {
			return nil, fmt.Errorf("%w: --from %q", domain.ErrInvalidInput, from)
		}
		if f.to != "" {
			return nil, fmt.Errorf("%w: --to %q", domain.ErrInvalidInput, f.to)
		}
		return nil, nil
	}
	if from != "" && rng.Start == nil {
		return nil, fmt.Errorf("%w: --from %q", domain.ErrInvalidInput, from)
	}
	if f.to != "" && rng.End == nil {
		return nil, fmt.Errorf("%w: --to %q", domain.ErrInvalidInput, f.to)
	}
	return rng, nil
}
