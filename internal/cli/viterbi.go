package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/happyhackingspace/hmm"
	"github.com/spf13/cobra"
)

func (c *CLI) newViterbiCommand() *cobra.Command {
	var proba bool

	cmd := &cobra.Command{
		Use:   "viterbi [symbol...]",
		Short: "Decode the most probable hidden state sequence",
		Example: `  hmm viterbi --model weather.json walk shop clean

  # Include the probability of the decoded path
  hmm viterbi --model weather.json walk shop clean --proba

  cat observations.txt | hmm viterbi --model weather.yaml -s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols, ok, err := sequenceInput(cmd, args)
			if !ok || err != nil {
				return err
			}
			m, err := loadModel(c.setting(cmd, "model"))
			if err != nil {
				return err
			}

			start := time.Now()
			d, err := m.Decode(symbols)
			if err != nil {
				return err
			}
			slog.Debug("Viterbi completed", "symbols", len(symbols), "duration", time.Since(start))

			return writeDecoding(cmd.OutOrStdout(), d, proba)
		},
	}

	cmd.Flags().String("model", "", "Path to model file (.json, .yaml); env HMM_MODEL")
	cmd.Flags().BoolVar(&proba, "proba", false, "Show the path probability")
	return cmd
}

// writeDecoding prints the path as a JSON array, or the whole decoding
// when proba is set.
func writeDecoding(out io.Writer, d *hmm.Decoding, proba bool) error {
	var output []byte
	var err error
	if proba {
		output, err = json.MarshalIndent(d, "", "  ")
	} else {
		output, err = json.Marshal(d.Path)
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(out, string(output))
	return nil
}
