package cmd

import (
	"github.com/jsphweid/noteindex/constants"
	"github.com/jsphweid/noteindex/midi"
	"github.com/jsphweid/noteindex/note"
	"github.com/jsphweid/noteindex/session"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var policyFlag string

var rootCmd = &cobra.Command{
	Use:   "noteindex",
	Short: "Index the notes of MIDI files",
	Long:  `Reconstructs notes from MIDI files and indexes them for tick and window lookups.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetLevel(constants.GetLogLevel())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&policyFlag, "policy", "", "pairing policy for unmatched note events: strict or skip (default $PAIRING_POLICY)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func pairingPolicy() (note.Policy, error) {
	if policyFlag != "" {
		return note.ParsePolicy(policyFlag)
	}
	return note.ParsePolicy(constants.GetPairingPolicy())
}

// LoadSession reads, decodes and indexes the MIDI file at path.
func LoadSession(path string) (*session.Session, error) {
	policy, err := pairingPolicy()
	if err != nil {
		return nil, err
	}
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	seq, err := midi.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	sess, err := session.New(seq, note.WithPolicy(policy), note.WithLogger(logrus.WithField("file", path)))
	if err != nil {
		return nil, errors.Wrapf(err, "indexing %s", path)
	}
	return sess, nil
}
