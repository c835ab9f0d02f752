package session

import (
	"github.com/google/uuid"
	"github.com/jsphweid/noteindex/intervaltree"
	"github.com/jsphweid/noteindex/midi"
	"github.com/jsphweid/noteindex/model"
	"github.com/jsphweid/noteindex/note"
	"github.com/jsphweid/noteindex/ranges"
	"github.com/jsphweid/noteindex/util"
	"github.com/pkg/errors"
)

// Session owns the notes of one sequence and the indexes built over them.
// Nothing in a Session changes after New, so it may be shared freely.
type Session struct {
	ID         uuid.UUID
	Resolution int
	Length     int

	events         int
	// notes reconstructed per track, counted before duplicates collapse
	trackNotes     map[int]int
	notes          *intervaltree.Tree[model.Note]
	timeSignatures *intervaltree.Tree[model.TimeSignature]
	keySignatures  *intervaltree.Tree[model.KeySignature]
	tempos         *intervaltree.Tree[model.Tempo]
}

type Stats struct {
	Tracks        int
	Events        int
	Notes         int
	NoteNodes     int
	NoteTreeDepth int
}

// New reconstructs notes for every track that has note events and builds the
// indexes. opts are applied to every track after the track number.
func New(seq *midi.Sequence, opts ...note.Option) (*Session, error) {
	if seq == nil {
		return nil, errors.New("nil sequence")
	}

	all := make([]model.Note, 0, seq.NumEvents()/2)
	trackNotes := map[int]int{}
	for i, events := range seq.Tracks {
		if len(events) == 0 {
			continue
		}
		trackOpts := append([]note.Option{note.WithTrack(i)}, opts...)
		notes, err := note.Reconstruct(events, trackOpts...)
		if err != nil {
			return nil, errors.Wrapf(err, "track %d", i)
		}
		if len(notes) > 0 {
			trackNotes[i] = len(notes)
		}
		all = append(all, notes...)
	}

	s := &Session{
		ID:         uuid.New(),
		Resolution: seq.Resolution,
		Length:     seq.Length,
		events:     seq.NumEvents(),
		trackNotes: trackNotes,
	}
	var err error
	if s.notes, err = intervaltree.Build(all); err != nil {
		return nil, errors.Wrap(err, "building note index")
	}
	if s.timeSignatures, err = intervaltree.Build(nonNil(seq.TimeSignatures)); err != nil {
		return nil, errors.Wrap(err, "building time signature index")
	}
	if s.keySignatures, err = intervaltree.Build(nonNil(seq.KeySignatures)); err != nil {
		return nil, errors.Wrap(err, "building key signature index")
	}
	if s.tempos, err = intervaltree.Build(nonNil(seq.Tempos)); err != nil {
		return nil, errors.Wrap(err, "building tempo index")
	}
	return s, nil
}

// NotesAt returns the notes sounding at tick.
func (s *Session) NotesAt(tick int) []model.Note {
	return s.notes.Query(tick)
}

// NotesDuring returns the notes overlapping r.
func (s *Session) NotesDuring(r ranges.Range) ([]model.Note, error) {
	return s.notes.QueryRange(r)
}

// Notes returns every note in the session in natural order.
func (s *Session) Notes() []model.Note {
	return s.notes.Ordered()
}

// TimeSignatureAt gives the time signature in effect at tick. At a boundary
// tick both spans contain it and the later one wins.
func (s *Session) TimeSignatureAt(tick int) (model.TimeSignature, bool) {
	return latest(s.timeSignatures.Query(tick))
}

func (s *Session) KeySignatureAt(tick int) (model.KeySignature, bool) {
	return latest(s.keySignatures.Query(tick))
}

func (s *Session) TempoAt(tick int) (model.Tempo, bool) {
	return latest(s.tempos.Query(tick))
}

// Tracks lists, in order, the tracks that produced at least one note.
func (s *Session) Tracks() []int {
	return util.GetKeys(s.trackNotes)
}

func (s *Session) Stats() Stats {
	return Stats{
		Tracks:        len(s.trackNotes),
		Events:        s.events,
		Notes:         s.notes.ElementCount(),
		NoteNodes:     s.notes.NodeCount(),
		NoteTreeDepth: s.notes.Height(),
	}
}

func latest[T any](matches []T) (T, bool) {
	var zero T
	if len(matches) == 0 {
		return zero, false
	}
	return matches[len(matches)-1], true
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
