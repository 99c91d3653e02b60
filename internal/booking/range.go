package booking

import (
	"fmt"
	"time"
)

// Range is a half-open interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange validates that start is strictly before end.
func NewRange(start, end time.Time) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}

	if !start.Before(end) {
		return Range{}, fmt.Errorf("%w: end date must be after start date", ErrInvalidRange)
	}

	return Range{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps reports whether two ranges intersect. Ranges that only touch
// (one ends exactly when the other starts) do not overlap.
func (r Range) Overlaps(other Range) bool {
	return other.Start.Before(r.End) && other.End.After(r.Start)
}

// overlapsByCase is the case-by-case form of Overlaps, mirroring the three
// predicates the store ORs together: other contains r.Start, other contains
// r.End, or r encloses other. Both forms must agree for every valid range.
func (r Range) overlapsByCase(other Range) bool {
	startsInside := !other.Start.After(r.Start) && other.End.After(r.Start)
	endsInside := other.Start.Before(r.End) && !other.End.Before(r.End)
	encloses := !other.Start.Before(r.Start) && !other.End.After(r.End)

	return startsInside || endsInside || encloses
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}
