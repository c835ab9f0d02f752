package note

import (
	"errors"
	"fmt"

	"github.com/jsphweid/noteindex/model"
	"github.com/jsphweid/noteindex/ranges"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrTerminalMismatch means the last event is an OFF whose pitch differs
	// from the most recent pending ON. Fatal under every Policy.
	ErrTerminalMismatch = fmt.Errorf("terminal off does not match pending on: %w", ErrInvalidInput)

	// ErrInconsistent signals the pairing invariant was broken. It is a bug.
	ErrInconsistent = errors.New("note reconstruction produced an inconsistent pair count")
)

type UnpairedOnError struct {
	Event model.Event
}

func (e *UnpairedOnError) Error() string {
	return fmt.Sprintf("unpaired note on: %v", e.Event)
}

type UnpairedOffError struct {
	Event model.Event
}

func (e *UnpairedOffError) Error() string {
	return fmt.Sprintf("unpaired note off: %v", e.Event)
}

// Policy decides what happens to an event that never finds a partner.
type Policy int

const (
	// Strict fails with *UnpairedOnError or *UnpairedOffError.
	Strict Policy = iota
	// Skip logs a warning and leaves the event out of the result.
	Skip
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "strict":
		return Strict, nil
	case "skip":
		return Skip, nil
	}
	return Strict, fmt.Errorf("unknown pairing policy %q", s)
}

type config struct {
	policy Policy
	track  int
	log    logrus.FieldLogger
}

type Option func(*config)

func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithTrack stamps the source track number on every emitted Note.
func WithTrack(track int) Option {
	return func(c *config) { c.track = track }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) { c.log = l }
}

func checkFraming(events []model.Event) error {
	switch {
	case len(events) == 0:
		return fmt.Errorf("no events: %w", ErrInvalidInput)
	case len(events)%2 != 0:
		return fmt.Errorf("odd number of events (%d): %w", len(events), ErrInvalidInput)
	case events[0].Kind != model.On:
		return fmt.Errorf("first event %v is not an onset: %w", events[0], ErrInvalidInput)
	case events[len(events)-1].Kind != model.Off:
		return fmt.Errorf("last event %v is not a release: %w", events[len(events)-1], ErrInvalidInput)
	}
	return nil
}

// Reconstruct pairs onsets with releases. Each OFF closes the most recently
// opened ON of the same pitch that started strictly earlier, so nested
// re-attacks close inside-out. Notes come back in the order they closed.
func Reconstruct(events []model.Event, opts ...Option) ([]model.Note, error) {
	c := config{policy: Strict, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&c)
	}

	if err := checkFraming(events); err != nil {
		return nil, err
	}

	var pending []model.Event
	notes := make([]model.Note, 0, len(events)/2)
	skipped := 0
	last := len(events) - 1

	for i, evt := range events {
		if evt.Kind == model.On {
			pending = append(pending, evt)
			continue
		}

		if i == last && len(pending) > 0 {
			if top := pending[len(pending)-1]; top.Pitch != evt.Pitch {
				return nil, fmt.Errorf("%v against pending %v: %w", evt, top, ErrTerminalMismatch)
			}
		}

		match := -1
		for j := len(pending) - 1; j >= 0; j-- {
			if pending[j].Pitch == evt.Pitch && pending[j].Tick < evt.Tick {
				match = j
				break
			}
		}

		if match < 0 {
			if c.policy == Strict {
				return nil, &UnpairedOffError{Event: evt}
			}
			c.log.WithFields(logrus.Fields{
				"pitch": evt.Pitch,
				"tick":  evt.Tick,
				"track": c.track,
			}).Warn("skipping note off with no pending note on")
			skipped++
			continue
		}

		on := pending[match]
		pending = append(pending[:match], pending[match+1:]...)

		span, err := ranges.New(on.Tick, evt.Tick)
		if err != nil {
			return nil, fmt.Errorf("pairing %v with %v: %w", on, evt, err)
		}
		notes = append(notes, model.Note{
			Span:     span,
			Pitch:    on.Pitch,
			Channel:  on.Channel,
			Velocity: on.Velocity,
			Track:    c.track,
		})
	}

	if len(pending) > 0 {
		if c.policy == Strict {
			return nil, &UnpairedOnError{Event: pending[0]}
		}
		for _, on := range pending {
			c.log.WithFields(logrus.Fields{
				"pitch": on.Pitch,
				"tick":  on.Tick,
				"track": c.track,
			}).Warn("skipping note on that was never released")
		}
		skipped += len(pending)
	}

	if want := (len(events) - skipped) / 2; len(notes) != want || (len(events)-skipped)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d notes from %d events, %d skipped, want %d",
			ErrInconsistent, len(notes), len(events), skipped, want)
	}
	return notes, nil
}
