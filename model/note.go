package model

import (
	"fmt"

	"github.com/jsphweid/noteindex/ranges"
)

// Note is a reconstructed sounding interval. Two Notes are the same note
// when pitch and span match; the remaining fields are metadata.
type Note struct {
	Span     ranges.Range
	Pitch    uint8
	Channel  uint8
	Velocity uint8
	Track    int
}

func (n Note) Range() ranges.Range { return n.Span }

func (n Note) Equal(other Note) bool {
	return n.Pitch == other.Pitch && n.Span == other.Span
}

// Less orders by span, then pitch.
func (n Note) Less(other Note) bool {
	if c := n.Span.Compare(other.Span); c != 0 {
		return c < 0
	}
	return n.Pitch < other.Pitch
}

func (n Note) String() string {
	return fmt.Sprintf("%v: %d-%d", PitchName(n.Pitch), n.Span.Low(), n.Span.High())
}
