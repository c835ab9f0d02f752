package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <file>",
	Short: "Builds the note index for a MIDI file and prints its shape",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := LoadSession(args[0])
		if err != nil {
			return err
		}
		stats := s.Stats()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "session: %v\n", s.ID)
		fmt.Fprintf(out, "resolution: %v ticks per quarter\n", s.Resolution)
		fmt.Fprintf(out, "length: %v ticks\n", s.Length)
		fmt.Fprintf(out, "tracks with notes: %v %v\n", stats.Tracks, s.Tracks())
		fmt.Fprintf(out, "note events: %v\n", stats.Events)
		fmt.Fprintf(out, "notes: %v in %v nodes, depth %v\n", stats.Notes, stats.NoteNodes, stats.NoteTreeDepth)
		return nil
	},
}
