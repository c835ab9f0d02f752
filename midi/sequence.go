package midi

import (
	"fmt"
	"sort"

	"github.com/jsphweid/noteindex/model"
	"github.com/jsphweid/noteindex/ranges"
	"github.com/jsphweid/noteindex/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	DefaultTempo       = 120.0
	DefaultNumerator   = 4
	DefaultDenominator = 4
)

// Sequence is everything the index needs out of an SMF: note events per
// track and the meta spans bounded by the sequence length.
type Sequence struct {
	// Resolution is ticks per quarter note.
	Resolution int
	// Length is the absolute tick of the last event in any track.
	Length int

	Tracks         [][]model.Event
	TimeSignatures []model.TimeSignature
	KeySignatures  []model.KeySignature
	Tempos         []model.Tempo
}

type change[V any] struct {
	tick  int
	value V
}

type meter struct{ num, denom uint8 }

type key struct {
	sharps int8
	minor  bool
}

// Decode flattens s into absolute-tick note events and meta spans.
func Decode(s *smf.SMF) (*Sequence, error) {
	if s == nil {
		return nil, fmt.Errorf("nil smf")
	}
	tf, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v, only metric ticks are supported", s.TimeFormat)
	}

	seq := &Sequence{Resolution: int(tf)}
	var meters []change[meter]
	var keys []change[key]
	var tempos []change[float64]

	for _, track := range s.Tracks {
		var events []model.Event
		var absTicks int
		for _, event := range track {
			absTicks += int(event.Delta)
			msg := event.Message

			var channel, pitch, velocity uint8
			var num, denom uint8
			var keyNote, accidentals uint8
			var isMajor, isFlat bool
			var bpm float64
			switch {
			case msg.GetNoteStart(&channel, &pitch, &velocity):
				events = append(events, model.Event{
					Tick:     absTicks,
					Kind:     model.On,
					Pitch:    pitch,
					Channel:  channel,
					Velocity: velocity,
				})
			case msg.GetNoteEnd(&channel, &pitch):
				events = append(events, model.Event{
					Tick:    absTicks,
					Kind:    model.Off,
					Pitch:   pitch,
					Channel: channel,
				})
			case msg.GetMetaMeter(&num, &denom):
				meters = append(meters, change[meter]{absTicks, meter{num, denom}})
			case msg.GetMetaTempo(&bpm):
				tempos = append(tempos, change[float64]{absTicks, bpm})
			case msg.GetMetaKeySig(&keyNote, &accidentals, &isMajor, &isFlat):
				sharps := int8(accidentals)
				if isFlat {
					sharps = -sharps
				}
				keys = append(keys, change[key]{absTicks, key{sharps: sharps, minor: !isMajor}})
			}
		}
		seq.Length = util.Max(seq.Length, absTicks)
		seq.Tracks = append(seq.Tracks, events)
	}

	if seq.Length == 0 {
		return seq, nil
	}

	if len(meters) == 0 || firstTick(meters) > 0 {
		meters = append([]change[meter]{{0, meter{DefaultNumerator, DefaultDenominator}}}, meters...)
	}
	if len(tempos) == 0 || firstTick(tempos) > 0 {
		tempos = append([]change[float64]{{0, DefaultTempo}}, tempos...)
	}

	seq.TimeSignatures = spans(meters, seq.Length, func(r ranges.Range, m meter) model.TimeSignature {
		return model.TimeSignature{Span: r, Numerator: m.num, Denominator: m.denom}
	})
	seq.KeySignatures = spans(keys, seq.Length, func(r ranges.Range, k key) model.KeySignature {
		return model.KeySignature{Span: r, Sharps: k.sharps, Minor: k.minor}
	})
	seq.Tempos = spans(tempos, seq.Length, func(r ranges.Range, bpm float64) model.Tempo {
		return model.Tempo{Span: r, BPM: bpm}
	})
	return seq, nil
}

// NumEvents is the number of note events across every track.
func (s *Sequence) NumEvents() int {
	var total int
	for _, t := range s.Tracks {
		total += len(t)
	}
	return total
}

func firstTick[V any](cs []change[V]) int {
	first := cs[0].tick
	for _, c := range cs[1:] {
		first = util.Min(first, c.tick)
	}
	return first
}

// spans turns point-in-time changes into ranges ending at the next change of
// the same kind, or at length. A later change at the same tick wins; changes
// at or past length are dropped.
func spans[V, T any](cs []change[V], length int, mk func(ranges.Range, V) T) []T {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].tick < cs[j].tick })

	var res []T
	for i, c := range cs {
		end := length
		if i+1 < len(cs) {
			end = cs[i+1].tick
		}
		r, err := ranges.New(c.tick, end)
		if err != nil {
			continue
		}
		res = append(res, mk(r, c.value))
	}
	return res
}
