package main

import (
	"fmt"
	"io"
	"os"

	"github.com/danmuck/suffixctl/internal/indexer"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Classify newline separated hex call data and summarise attributions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			var tally indexer.Tally
			err := tally.Scan(cmd.Context(), in, func(l indexer.Line) error {
				if l.Err != nil {
					fmt.Fprintf(out, "line %d: %v\n", l.Number, l.Err)
					return nil
				}
				if !quiet {
					fmt.Fprintf(out, "line %d: ", l.Number)
					printResult(cmd, l.Result)
				}
				return nil
			})
			if err != nil {
				return err
			}

			snap := tally.Snapshot()
			fmt.Fprintf(out, "present=%d absent=%d unparseable=%d\n", snap.Present, snap.Absent, snap.Unparseable)
			for _, c := range snap.Codes {
				fmt.Fprintf(out, "  %q %d\n", c.Code, c.Count)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary and bad lines")
	return cmd
}
