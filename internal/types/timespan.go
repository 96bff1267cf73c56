package types

import (
	"fmt"
	"time"
)

// Timespan is a pair of optional, inclusive bounds. A nil bound means
// the Timespan is unbounded on that side.
type Timespan struct {
	Start *time.Time `json:"start" example:"2024-01-01T00:00:00Z"`
	End   *time.Time `json:"end" example:"2024-01-31T23:59:59.999999999Z"`
}

// NewTimespan returns a Timespan bounded on both sides.
func NewTimespan(start, end time.Time) Timespan {
	return Timespan{Start: &start, End: &end}
}

// Since returns a Timespan that is only bounded at the start.
func Since(start time.Time) Timespan {
	return Timespan{Start: &start}
}

// Until returns a Timespan that is only bounded at the end.
func Until(end time.Time) Timespan {
	return Timespan{End: &end}
}

// Contains reports whether t lies within the Timespan, bounds included.
func (s Timespan) Contains(t time.Time) bool {
	if s.Start != nil && t.Before(*s.Start) {
		return false
	}

	if s.End != nil && t.After(*s.End) {
		return false
	}

	return true
}

// IsUnbounded reports if neither bound is set.
func (s Timespan) IsUnbounded() bool {
	return s.Start == nil && s.End == nil
}

func (s Timespan) String() string {
	format := func(t *time.Time) string {
		if t == nil {
			return "∞"
		}
		return t.Format(time.RFC3339Nano)
	}

	return fmt.Sprintf("[%s, %s]", format(s.Start), format(s.End))
}
