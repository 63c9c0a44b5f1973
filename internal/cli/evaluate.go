package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/happyhackingspace/hmm"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Decode every sequence fixture in a data folder and compare with the expected results",
		Example: `  hmm evaluate --data-folder testdata
  HMM_DATA_FOLDER=fixtures hmm evaluate -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataFolder := c.setting(cmd, "data-folder")
			slog.Info("Evaluating", "data-folder", dataFolder)
			start := time.Now()
			result, err := hmm.Evaluate(dataFolder, &hmm.EvalConfig{Verbose: c.verbose})
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			out := cmd.OutOrStdout()
			printFixtureReport(out, result)
			if result.StateTotal > 0 {
				fmt.Fprintf(out, "State accuracy: %.1f%% (%d/%d)\n",
					result.StateAccuracy*100, result.StateCorrect, result.StateTotal)
				fmt.Fprintf(out, "Sequence accuracy: %.1f%% (%d/%d)\n",
					result.SequenceAccuracy*100, result.SequenceCorrect, result.SequenceTotal)
			}
			fmt.Fprintf(out, "Max likelihood error: %.3g\n", result.MaxLikelihoodError)
			if result.Failed > 0 {
				return fmt.Errorf("%d fixture(s) failed", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().String("data-folder", "testdata", "Path to fixture folder; env HMM_DATA_FOLDER")
	return cmd
}

func printFixtureReport(out io.Writer, result *hmm.EvalResult) {
	fmt.Fprintf(out, "%-20s  %6s  %12s  %s\n", "fixture", "states", "likelihood", "path")
	for _, f := range result.Fixtures {
		if f.Err != "" {
			fmt.Fprintf(out, "%-20s  %6s  %12s  error: %s\n", f.Name, "-", "-", f.Err)
			continue
		}
		mark := ""
		if len(f.Expected) > 0 && f.StatesCorrect != len(f.Expected) {
			mark = "  (expected " + strings.Join(f.Expected, " ") + ")"
		}
		fmt.Fprintf(out, "%-20s  %3d/%-2d  %12.6g  %s%s\n",
			f.Name, f.StatesCorrect, len(f.Expected), f.Likelihood, strings.Join(f.Path, " "), mark)
	}
	fmt.Fprintln(out)
}
