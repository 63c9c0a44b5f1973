package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/happyhackingspace/hmm"
	"github.com/spf13/cobra"
)

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// readSymbols returns the observation sequence from the arguments, or from
// whitespace-separated stdin when there are none.
func readSymbols(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	slog.Debug("Reading sequence from stdin")
	body, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	symbols := strings.Fields(string(body))
	if len(symbols) == 0 {
		return nil, fmt.Errorf("stdin is empty")
	}
	return symbols, nil
}

// sequenceInput reads the sequence for an inference command. It returns
// ok=false when there is nothing to read and help was shown instead.
func sequenceInput(cmd *cobra.Command, args []string) ([]string, bool, error) {
	if len(args) == 0 && cmd.InOrStdin() == io.Reader(os.Stdin) && isStdinTerminal() {
		return nil, false, cmd.Help()
	}
	symbols, err := readSymbols(args, cmd.InOrStdin())
	if err != nil {
		return nil, false, err
	}
	return symbols, true, nil
}

func loadModel(path string) (*hmm.Model, error) {
	if path == "" {
		return nil, fmt.Errorf("no model given (use --model or HMM_MODEL)")
	}
	start := time.Now()
	m, err := hmm.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Model loaded", "path", path, "duration", time.Since(start))
	return m, nil
}
