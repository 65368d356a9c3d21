package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Mammutor/NINA/graphs_go"
)

func newConvertCmd() *cobra.Command {
	var (
		output        string
		bidirectional bool
	)
	cmd := &cobra.Command{
		Use:   "convert <graph.json>",
		Short: "Convert a JSON graph export into a gob cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, report, err := graphs_go.ConvertJSONToGOB(args[0], output, graphs_go.Options{Bidirectional: bidirectional})
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "wrote %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
			printReport(out, report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: input with .gob extension)")
	cmd.Flags().BoolVar(&bidirectional, "bidirectional", false, "Add reverse edges")
	return cmd
}
