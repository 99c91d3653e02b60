package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(day int) time.Time {
	return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestNewRange(t *testing.T) {
	_, err := NewRange(d(10), d(10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewRange(d(10), d(1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewRange(time.Time{}, d(1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	r, err := NewRange(d(1), d(10))
	require.NoError(t, err)
	assert.Equal(t, d(1), r.Start)
	assert.Equal(t, d(10), r.End)
}

func TestRange_Overlaps(t *testing.T) {
	existing := Range{Start: d(1), End: d(10)}

	tests := []struct {
		name string
		req  Range
		want bool
	}{
		{"StartsInside", Range{Start: d(5), End: d(15)}, true},
		{"EndsInside", Range{Start: d(1), End: d(5)}, true},
		{"Encloses", Range{Start: d(1), End: d(20)}, true},
		{"Inside", Range{Start: d(3), End: d(4)}, true},
		{"Identical", Range{Start: d(1), End: d(10)}, true},
		{"BackToBackAfter", Range{Start: d(10), End: d(20)}, false},
		{"BackToBackBefore", Range{Start: time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC), End: d(1)}, false},
		{"Disjoint", Range{Start: d(12), End: d(14)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Overlaps(existing))
			assert.Equal(t, tt.want, existing.Overlaps(tt.req))
			assert.Equal(t, tt.want, tt.req.overlapsByCase(existing))
		})
	}
}

// Every valid pair of ranges over a small grid must get the same answer from
// the inequality form and the case-by-case form.
func TestRange_OverlapFormsAgree(t *testing.T) {
	const days = 8

	for as := 1; as <= days; as++ {
		for ae := as + 1; ae <= days; ae++ {
			for bs := 1; bs <= days; bs++ {
				for be := bs + 1; be <= days; be++ {
					a := Range{Start: d(as), End: d(ae)}
					b := Range{Start: d(bs), End: d(be)}

					require.Equal(t, a.Overlaps(b), a.overlapsByCase(b), "a=%s b=%s", a, b)
					require.Equal(t, a.Overlaps(b), b.Overlaps(a), "a=%s b=%s", a, b)
				}
			}
		}
	}
}
