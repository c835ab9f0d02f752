package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadMidiFile loads and parses a Standard MIDI File from disk.
func ReadMidiFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	s, err := Read(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing midi file %s", path)
	}
	return s, nil
}

// Read parses a Standard MIDI File. The smf reader can panic on truncated
// input, so panics are turned into errors.
func Read(r io.Reader) (s *smf.SMF, e error) {
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("panic while parsing midi: %v", rec)
		}
	}()

	return smf.ReadFrom(r)
}
