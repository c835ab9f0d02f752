package model

import "fmt"

type Kind uint8

const (
	On Kind = iota
	Off
)

func (k Kind) String() string {
	switch k {
	case On:
		return "ON"
	case Off:
		return "OFF"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Event is a single note onset or release at an absolute tick within one track.
type Event struct {
	Tick  int
	Kind  Kind
	Pitch uint8

	// NOTE: carried through to the Note, never used for pairing
	Channel  uint8
	Velocity uint8
}

func (e Event) String() string {
	return fmt.Sprintf("%v(%v@%d)", e.Kind, PitchName(e.Pitch), e.Tick)
}

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchName gives the scientific pitch name, 60 => C4.
func PitchName(pitch uint8) string {
	return fmt.Sprintf("%s%d", pitchClasses[pitch%12], int(pitch)/12-1)
}
