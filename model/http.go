package model

type NoteResult struct {
	Pitch    uint8  `json:"pitch"`
	Name     string `json:"name"`
	Start    int    `json:"start"`
	Stop     int    `json:"stop"`
	Channel  uint8  `json:"channel"`
	Velocity uint8  `json:"velocity"`
	Track    int    `json:"track"`
}

type NotesResponse struct {
	SessionId string       `json:"session_id"`
	NumNotes  int          `json:"num_notes"`
	Notes     []NoteResult `json:"notes"`
}

type ChordResponse struct {
	Tick int `json:"tick"`
	// ints, since encoding/json writes []uint8 as base64
	Pitches []int  `json:"pitches"`
	Key     string `json:"key"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

func NewNoteResult(n Note) NoteResult {
	return NoteResult{
		Pitch:    n.Pitch,
		Name:     PitchName(n.Pitch),
		Start:    n.Span.Low(),
		Stop:     n.Span.High(),
		Channel:  n.Channel,
		Velocity: n.Velocity,
		Track:    n.Track,
	}
}
