package chord

import (
	"fmt"
	"strings"

	"github.com/jsphweid/noteindex/model"
	"github.com/jsphweid/noteindex/session"
	"golang.org/x/exp/slices"
)

// CreateChordKey joins sorted pitches with dashes, e.g. "60-64-67".
// The input is left untouched.
func CreateChordKey(pitches []uint8) string {
	sorted := slices.Clone(pitches)
	slices.Sort(sorted)
	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(parts, "-")
}

func fromNotes(tick int, notes []model.Note) model.Chord {
	seen := make(map[uint8]bool, len(notes))
	var pitches []uint8
	for _, n := range notes {
		if !seen[n.Pitch] {
			seen[n.Pitch] = true
			pitches = append(pitches, n.Pitch)
		}
	}
	slices.Sort(pitches)
	return model.Chord{Tick: tick, Pitches: pitches, Key: CreateChordKey(pitches)}
}

// At is the chord sounding at tick. Notes doubled across tracks count once.
func At(s *session.Session, tick int) model.Chord {
	return fromNotes(tick, s.NotesAt(tick))
}

// GetChords gives the chord at every onset tick, in tick order.
func GetChords(s *session.Session) []model.Chord {
	var onsets []int
	for _, n := range s.Notes() {
		if len(onsets) == 0 || onsets[len(onsets)-1] != n.Span.Low() {
			onsets = append(onsets, n.Span.Low())
		}
	}

	chords := make([]model.Chord, 0, len(onsets))
	for _, tick := range onsets {
		chords = append(chords, At(s, tick))
	}
	return chords
}
