package models

import (
	"math"
	"time"

	"github.com/ledger-zero/backend/internal/types"
)

// RecurringKind is the rule a budget uses to generate its periods.
type RecurringKind string

const (
	RecurringDayInMonth RecurringKind = "day_in_month" // Resets monthly on a fixed day
	RecurringDays       RecurringKind = "days"         // Fixed-length windows tiled from a start instant
	RecurringYearly     RecurringKind = "yearly"       // Resets once a year on a fixed day
)

const secondsPerDay = 24 * 60 * 60

// Every instant in the ledger must be representable as nanoseconds since the unix epoch.
var (
	minTime = time.Unix(0, math.MinInt64).UTC()
	maxTime = time.Unix(0, math.MaxInt64).UTC()
)

// Recurring describes how the periods of a budget are generated.
//
// Only the fields used by the Kind are set, all others are zero.
type Recurring struct {
	Kind   RecurringKind `json:"kind" example:"day_in_month"`
	Day    int           `json:"day" example:"1"`                      // Day of the month for day_in_month and yearly
	Month  int           `json:"month" example:"0"`                    // Month for yearly
	Start  time.Time     `json:"start" example:"0001-01-01T00:00:00Z"` // Anchor of the first window for days
	Length int           `json:"length" example:"0"`                   // Number of days per window for days
}

// DayInMonth returns a recurrence that resets on the day of every month.
func DayInMonth(day int) Recurring {
	return Recurring{Kind: RecurringDayInMonth, Day: day}
}

// Days returns a recurrence of windows of length days, starting at start.
func Days(start time.Time, length int) Recurring {
	return Recurring{Kind: RecurringDays, Start: start, Length: length}
}

// Yearly returns a recurrence that resets on the day of the month every year.
func Yearly(month, day int) Recurring {
	return Recurring{Kind: RecurringYearly, Month: month, Day: day}
}

func (r Recurring) canonical() Recurring {
	switch r.Kind {
	case RecurringDayInMonth:
		return Recurring{Kind: r.Kind, Day: r.Day}
	case RecurringYearly:
		return Recurring{Kind: r.Kind, Month: r.Month, Day: r.Day}
	case RecurringDays:
		start := r.Start
		if inRange(start) {
			start = normalizeTime(start)
		}
		return Recurring{Kind: r.Kind, Start: start, Length: r.Length}
	}

	return r
}

// Validate checks that the parameters of the recurrence are in their domain.
func (r Recurring) Validate() error {
	switch r.Kind {
	case RecurringDayInMonth:
		if r.Day < 1 || r.Day > 31 {
			return ErrRecurrenceDayOutOfRange
		}
	case RecurringYearly:
		if r.Month < 1 || r.Month > 12 {
			return ErrRecurrenceMonthOutOfRange
		}

		if r.Day < 1 || r.Day > 31 {
			return ErrRecurrenceDayOutOfRange
		}

		// 2000 is a leap year, so February 29th is accepted and clamped in other years
		if r.Day > daysIn(2000, time.Month(r.Month)) {
			return ErrRecurrenceDayNotInMonth
		}
	case RecurringDays:
		if r.Length < 1 {
			return ErrRecurrenceLengthNotPositive
		}

		if !inRange(r.Start) {
			return ErrRecurrenceOutOfRange
		}
	default:
		return ErrRecurrenceKindInvalid
	}

	return nil
}

// CalculateBudgetTimespan returns the period of the budget that is offset
// periods away from the one containing reference.
func CalculateBudgetTimespan(budget Budget, offset int32, reference time.Time) (types.Timespan, error) {
	return budget.Recurring.Timespan(offset, reference)
}

// Timespan returns the period that is offset periods away from the one
// containing reference.
//
// The period is half-open: it ends one nanosecond before the next period
// starts, so that no instant belongs to two periods.
func (r Recurring) Timespan(offset int32, reference time.Time) (types.Timespan, error) {
	if err := r.Validate(); err != nil {
		return types.Timespan{}, err
	}

	reference = reference.UTC()

	var start, next time.Time
	var err error

	switch r.Kind {
	case RecurringDayInMonth:
		start, next, err = r.monthlyPeriod(offset, reference)
	case RecurringYearly:
		start, next, err = r.yearlyPeriod(offset, reference)
	case RecurringDays:
		start, next, err = r.daysPeriod(offset, reference)
	}

	if err != nil {
		return types.Timespan{}, err
	}

	if !inRange(start) || !inRange(next) {
		return types.Timespan{}, ErrRecurrenceOutOfRange
	}

	return types.NewTimespan(start, next.Add(-time.Nanosecond)), nil
}

func (r Recurring) monthlyPeriod(offset int32, reference time.Time) (time.Time, time.Time, error) {
	year, month, _ := reference.Date()
	index := int64(year)*12 + int64(month) - 1

	current, err := r.monthStart(index)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if reference.Before(current) {
		index--
	}
	index += int64(offset)

	start, err := r.monthStart(index)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	next, err := r.monthStart(index + 1)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, next, nil
}

// monthStart returns the start of the period in the month with the
// index year * 12 + month - 1.
func (r Recurring) monthStart(index int64) (time.Time, error) {
	year := floorDiv(index, 12)
	month := time.Month(index-year*12) + 1

	return clampedDate(year, month, r.Day)
}

func (r Recurring) yearlyPeriod(offset int32, reference time.Time) (time.Time, time.Time, error) {
	year := int64(reference.Year())

	current, err := clampedDate(year, time.Month(r.Month), r.Day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if reference.Before(current) {
		year--
	}
	year += int64(offset)

	start, err := clampedDate(year, time.Month(r.Month), r.Day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	next, err := clampedDate(year+1, time.Month(r.Month), r.Day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, next, nil
}

func (r Recurring) daysPeriod(offset int32, reference time.Time) (time.Time, time.Time, error) {
	anchor := r.Start.UTC()
	period := int64(r.Length) * secondsPerDay

	// Whole seconds between anchor and reference, rounded towards
	// negative infinity. The sub-second remainder cannot change which
	// window the reference lies in since windows are whole seconds long.
	seconds := reference.Unix() - anchor.Unix()
	if reference.Nanosecond() < anchor.Nanosecond() {
		seconds--
	}

	window := floorDiv(seconds, period) + int64(offset)

	start, ok := addSeconds(anchor, window, period)
	if !ok {
		return time.Time{}, time.Time{}, ErrRecurrenceOutOfRange
	}

	next, ok := addSeconds(anchor, window+1, period)
	if !ok {
		return time.Time{}, time.Time{}, ErrRecurrenceOutOfRange
	}

	return start, next, nil
}

// addSeconds returns t + factor * seconds and false if the result cannot be represented.
func addSeconds(t time.Time, factor, seconds int64) (time.Time, bool) {
	limit := maxTime.Unix() - minTime.Unix()
	if factor != 0 && (factor > limit/seconds || factor < -limit/seconds) {
		return time.Time{}, false
	}

	return time.Unix(t.Unix()+factor*seconds, int64(t.Nanosecond())).UTC(), true
}

// clampedDate returns midnight UTC of the day in the month. Days beyond the
// end of the month are clamped to the last day of the month.
func clampedDate(year int64, month time.Month, day int) (time.Time, error) {
	if year < int64(minTime.Year()) || year > int64(maxTime.Year()) {
		return time.Time{}, ErrRecurrenceOutOfRange
	}

	y := int(year)
	return time.Date(y, month, min(day, daysIn(y, month)), 0, 0, 0, 0, time.UTC), nil
}

// daysIn returns the number of days in the month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func inRange(t time.Time) bool {
	return !t.Before(minTime) && !t.After(maxTime)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
