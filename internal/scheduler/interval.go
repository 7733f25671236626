package scheduler

import "time"

// Interval is a half-open time interval [Start, End). Half-open so that
// back-to-back screenings, one ending exactly when the next starts, do not
// count as overlapping.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the interval occupied by a screening that starts at
// start and runs for duration minutes.
func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps reports whether the two intervals intersect. The predicate is
// symmetric: [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}
