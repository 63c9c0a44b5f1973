package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newForwardCommand() *cobra.Command {
	var backward bool

	cmd := &cobra.Command{
		Use:   "forward [symbol...]",
		Short: "Compute the likelihood of an observation sequence",
		Example: `  # Likelihood of a sequence given on the command line
  hmm forward --model weather.json walk shop clean

  # Read the sequence from stdin
  echo "walk shop clean" | hmm forward --model weather.json

  # Model path from the environment
  HMM_MODEL=weather.yaml hmm forward walk walk

  # Cross-check with the backward recurrence
  hmm forward --model weather.json --backward walk shop clean`,
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
			p, err := m.Forward(symbols)
			if err != nil {
				return err
			}
			slog.Debug("Forward completed", "symbols", len(symbols), "duration", time.Since(start))

			if backward {
				b, err := m.Backward(symbols)
				if err != nil {
					return err
				}
				slog.Debug("Backward completed", "likelihood", b, "difference", p-b)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(p, 'g', -1, 64))
			return nil
		},
	}

	cmd.Flags().String("model", "", "Path to model file (.json, .yaml); env HMM_MODEL")
	cmd.Flags().BoolVar(&backward, "backward", false, "Also run the backward recurrence and log the difference")
	return cmd
}
