package model

type Pitches = []uint8

// Chord is the set of distinct pitches sounding at one tick.
type Chord struct {
	Tick    int
	Pitches Pitches
	Key     string
}
