package model

import (
	"fmt"

	"github.com/jsphweid/noteindex/ranges"
)

type TimeSignature struct {
	Span        ranges.Range
	Numerator   uint8
	Denominator uint8
}

func (t TimeSignature) Range() ranges.Range { return t.Span }

func (t TimeSignature) Equal(other TimeSignature) bool { return t == other }

func (t TimeSignature) Less(other TimeSignature) bool {
	if c := t.Span.Compare(other.Span); c != 0 {
		return c < 0
	}
	if t.Numerator != other.Numerator {
		return t.Numerator < other.Numerator
	}
	return t.Denominator < other.Denominator
}

func (t TimeSignature) String() string {
	return fmt.Sprintf("%d/%d %v", t.Numerator, t.Denominator, t.Span)
}

// KeySignature follows the SMF encoding: Sharps is negative for flats.
type KeySignature struct {
	Span   ranges.Range
	Sharps int8
	Minor  bool
}

func (k KeySignature) Range() ranges.Range { return k.Span }

func (k KeySignature) Equal(other KeySignature) bool { return k == other }

func (k KeySignature) Less(other KeySignature) bool {
	if c := k.Span.Compare(other.Span); c != 0 {
		return c < 0
	}
	if k.Sharps != other.Sharps {
		return k.Sharps < other.Sharps
	}
	return !k.Minor && other.Minor
}

func (k KeySignature) String() string {
	mode := "major"
	if k.Minor {
		mode = "minor"
	}
	return fmt.Sprintf("%+d %s %v", k.Sharps, mode, k.Span)
}

type Tempo struct {
	Span ranges.Range
	BPM  float64
}

func (t Tempo) Range() ranges.Range { return t.Span }

func (t Tempo) Equal(other Tempo) bool { return t == other }

func (t Tempo) Less(other Tempo) bool {
	if c := t.Span.Compare(other.Span); c != 0 {
		return c < 0
	}
	return t.BPM < other.BPM
}
