package cli

import (
	"errors"
	"fmt"

	"github.com/happyhackingspace/hmm"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func (c *CLI) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <modelfile>...",
		Short: "Report every invariant a model file violates",
		Args:  cobra.MinimumNArgs(1),
		Example: `  hmm check weather.json
  hmm check testdata/*_hmm.*`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				err := hmm.LintFile(path)
				if err == nil {
					fmt.Fprintf(out, "%s: ok\n", path)
					continue
				}
				failed++

				var merr *multierror.Error
				if errors.As(err, &merr) {
					for _, e := range merr.Errors {
						fmt.Fprintf(out, "%s: %s\n", path, describe(e))
					}
				} else {
					fmt.Fprintf(out, "%s: %s\n", path, describe(err))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d model file(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}

// describe adds the offending row to row-scoped validation errors.
func describe(err error) string {
	var ve *hmm.ValidationError
	if errors.As(err, &ve) && ve.Row >= 0 {
		return fmt.Sprintf("%s (row %d)", ve, ve.Row)
	}
	return err.Error()
}
