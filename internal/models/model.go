// Package models contains the entities of the ledger.
//
// All entities are plain values. Storage backends hand out copies, never
// references to their internal state.
package models

import (
	"time"
)

// normalizeTime strips monotonic clock readings and location information
// so that times compare equal after a round trip through any backend.
//
// Times are kept with nanosecond precision.
func normalizeTime(t time.Time) time.Time {
	return time.Unix(0, t.UnixNano()).UTC()
}

// NormalizeTime is normalizeTime for callers outside of this package.
func NormalizeTime(t time.Time) time.Time {
	return normalizeTime(t)
}

// ClampTime returns t limited to the range of instants the ledger can store.
//
// Every stored instant lies within the range, so comparing against the
// clamped time gives the same result as comparing against t.
func ClampTime(t time.Time) time.Time {
	switch {
	case t.Before(minTime):
		return minTime
	case t.After(maxTime):
		return maxTime
	}
	return t
}
