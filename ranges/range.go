package ranges

import (
	"errors"
	"fmt"
)

var ErrInvalidRange = errors.New("invalid range")

// InvalidRangeError carries the endpoints that were rejected.
type InvalidRangeError struct {
	Low  int
	High int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%d, %d]: need 0 <= low < high", e.Low, e.High)
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// Range is a closed tick interval [low, high]. The zero value is not a
// valid Range; use New.
type Range struct {
	low  int
	high int
}

// Ranged is anything that can report the span of ticks it covers.
type Ranged interface {
	Range() Range
}

func New(low, high int) (Range, error) {
	if low < 0 || high <= low {
		return Range{}, &InvalidRangeError{Low: low, High: high}
	}
	return Range{low: low, high: high}, nil
}

// MustNew is New for literals known to be valid. It panics otherwise.
func MustNew(low, high int) Range {
	r, err := New(low, high)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Range) Low() int  { return r.low }
func (r Range) High() int { return r.high }

// Length is the tick distance between the endpoints.
func (r Range) Length() int { return r.high - r.low }

// IsValid reports whether r was built through New. Useful to reject zero values.
func (r Range) IsValid() bool { return r.low >= 0 && r.low < r.high }

func (r Range) Overlaps(other Range) bool {
	return r.low <= other.high && other.low <= r.high
}

func (r Range) Contains(point int) bool {
	return r.low <= point && point <= r.high
}

func (r Range) ContainsRange(other Range) bool {
	return r.low <= other.low && other.high <= r.high
}

// Compare orders by low, then high.
func (r Range) Compare(other Range) int {
	switch {
	case r.low < other.low:
		return -1
	case r.low > other.low:
		return 1
	case r.high < other.high:
		return -1
	case r.high > other.high:
		return 1
	}
	return 0
}

func (r Range) Less(other Range) bool  { return r.Compare(other) < 0 }
func (r Range) Equal(other Range) bool { return r == other }

// Shift moves both endpoints by delta.
func (r Range) Shift(delta int) (Range, error) {
	return New(r.low+delta, r.high+delta)
}

// Concat returns the smallest Range covering every input.
func Concat(rs ...Range) (Range, error) {
	if len(rs) == 0 {
		return Range{}, fmt.Errorf("concat of no ranges: %w", ErrInvalidRange)
	}
	low, high := rs[0].low, rs[0].high
	for _, r := range rs[1:] {
		if r.low < low {
			low = r.low
		}
		if r.high > high {
			high = r.high
		}
	}
	return New(low, high)
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.low, r.high)
}
