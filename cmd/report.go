package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jsphweid/noteindex/constants"
	"github.com/jsphweid/noteindex/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [dir] [max]",
	Short: "Indexes every MIDI file under a directory and reports totals",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := constants.GetMediaDir()
		if len(args) > 0 {
			dir = args[0]
		}
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = n
		}
		r, err := analyze(dir, maxNum)
		if err != nil {
			return err
		}
		r.print(cmd.OutOrStdout())
		return nil
	},
}

type filesReport struct {
	numFiles    int
	numSkipped  int
	numEvents   int
	numNotes    int
	nodeCounts  []int
	treeDepths  []int
	maxBagRatio float64
}

func analyze(dir string, maxNum int) (filesReport, error) {
	var report filesReport

	paths, err := util.GatherAllMidiPaths(dir, maxNum)
	if err != nil {
		return report, err
	}

	for i, path := range paths {
		logrus.WithField("file", path).Infof("Processing %v of %v midi files", i+1, len(paths))
		s, err := LoadSession(path)
		if err != nil {
			logrus.WithField("file", path).WithError(err).Warn("skipping")
			report.numSkipped++
			continue
		}
		stats := s.Stats()
		report.numFiles++
		report.numEvents += stats.Events
		report.numNotes += stats.Notes
		report.nodeCounts = append(report.nodeCounts, stats.NoteNodes)
		report.treeDepths = append(report.treeDepths, stats.NoteTreeDepth)
		if stats.NoteNodes > 0 {
			ratio := float64(stats.Notes) / float64(stats.NoteNodes)
			if ratio > report.maxBagRatio {
				report.maxBagRatio = ratio
			}
		}
	}
	return report, nil
}

func (r filesReport) print(w io.Writer) {
	fmt.Fprintf(w, "files indexed: %v\n", r.numFiles)
	fmt.Fprintf(w, "files skipped: %v\n", r.numSkipped)
	fmt.Fprintf(w, "note events: %v\n", r.numEvents)
	fmt.Fprintf(w, "notes: %v\n", r.numNotes)
	fmt.Fprintf(w, "nodes: %v\n", util.Sum(r.nodeCounts))
	fmt.Fprintf(w, "tree depths: %v\n", r.treeDepths)
	fmt.Fprintf(w, "most notes per node: %.2f\n", r.maxBagRatio)
}
