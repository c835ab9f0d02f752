package cmd

import (
	"fmt"

	"github.com/jsphweid/noteindex/chord"
	"github.com/spf13/cobra"
)

var inspectChords bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectChords, "chords", false, "print the chord at every onset instead of notes")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Lists every note of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := LoadSession(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if inspectChords {
			for _, c := range chord.GetChords(s) {
				fmt.Fprintf(out, "%v\t%v\n", c.Tick, c.Key)
			}
			return nil
		}
		for _, n := range s.Notes() {
			fmt.Fprintf(out, "track %v\t%v\n", n.Track, n)
		}
		return nil
	},
}
