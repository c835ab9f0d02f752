package cmd

import (
	"fmt"

	"github.com/jsphweid/noteindex/model"
	"github.com/jsphweid/noteindex/ranges"
	"github.com/spf13/cobra"
)

var (
	queryTick int
	queryFrom int
	queryTo   int
)

func init() {
	queryCmd.Flags().IntVar(&queryTick, "tick", -1, "list notes sounding at this tick")
	queryCmd.Flags().IntVar(&queryFrom, "from", -1, "start of a tick window")
	queryCmd.Flags().IntVar(&queryTo, "to", -1, "end of a tick window")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <file>",
	Short: "Finds the notes at a tick or overlapping a window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (queryTick >= 0) == (queryFrom >= 0 || queryTo >= 0) {
			return fmt.Errorf("give either --tick or both --from and --to")
		}
		s, err := LoadSession(args[0])
		if err != nil {
			return err
		}

		var notes []model.Note
		if queryTick >= 0 {
			notes = s.NotesAt(queryTick)
		} else {
			w, err := ranges.New(queryFrom, queryTo)
			if err != nil {
				return err
			}
			if notes, err = s.NotesDuring(w); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		for _, n := range notes {
			fmt.Fprintf(out, "track %v\t%v\n", n.Track, n)
		}
		fmt.Fprintf(out, "%v notes\n", len(notes))
		return nil
	},
}
