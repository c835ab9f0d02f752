package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/noteindex/chord"
	"github.com/jsphweid/noteindex/constants"
	"github.com/jsphweid/noteindex/model"
	"github.com/jsphweid/noteindex/ranges"
	"github.com/jsphweid/noteindex/session"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serves note lookups for a MIDI file over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := LoadSession(args[0])
		if err != nil {
			return err
		}
		addr := constants.GetListenAddr()
		logrus.WithFields(logrus.Fields{
			"addr":    addr,
			"session": s.ID,
			"notes":   s.Stats().Notes,
		}).Info("serving")
		return http.ListenAndServe(addr, NewRouter(s))
	},
}

// NewRouter exposes s over HTTP. Handlers only read from s, so they run
// concurrently without locking.
func NewRouter(s *session.Session) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/notes", handleNotes(s)).Methods(http.MethodGet)
	router.HandleFunc("/chord", handleChord(s)).Methods(http.MethodGet)
	return cors.Default().Handler(router)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("could not write response")
	}
}

func intParam(r *http.Request, name string) (int, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, true, nil
}

func handleNotes(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tick, hasTick, err := intParam(r, "tick")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		from, hasFrom, err := intParam(r, "from")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		to, hasTo, err := intParam(r, "to")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		var notes []model.Note
		switch {
		case hasTick && !hasFrom && !hasTo:
			notes = s.NotesAt(tick)
		case !hasTick && hasFrom && hasTo:
			window, err := ranges.New(from, to)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			if window.Length() > constants.MaxQueryWindow {
				writeError(w, http.StatusBadRequest, fmt.Errorf("window wider than %d ticks", constants.MaxQueryWindow))
				return
			}
			if notes, err = s.NotesDuring(window); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
		default:
			writeError(w, http.StatusBadRequest, fmt.Errorf("give either tick or both from and to"))
			return
		}

		res := model.NotesResponse{SessionId: s.ID.String(), NumNotes: len(notes), Notes: make([]model.NoteResult, 0, len(notes))}
		for _, n := range notes {
			res.Notes = append(res.Notes, model.NewNoteResult(n))
		}
		writeJSON(w, res)
	}
}

func handleChord(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tick, ok, err := intParam(r, "tick")
		if err == nil && !ok {
			err = fmt.Errorf("tick is required")
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		c := chord.At(s, tick)
		pitches := make([]int, 0, len(c.Pitches))
		for _, p := range c.Pitches {
			pitches = append(pitches, int(p))
		}
		writeJSON(w, model.ChordResponse{Tick: c.Tick, Pitches: pitches, Key: c.Key})
	}
}
