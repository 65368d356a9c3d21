package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Mammutor/NINA/graphs_go"
	"github.com/Mammutor/NINA/routing"
)

func newStatsCmd() *cobra.Command {
	var bidirectional bool
	cmd := &cobra.Command{
		Use:   "stats <graph>",
		Short: "Summarise a graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, report, err := graphs_go.LoadGraphFromFile(args[0], graphs_go.Options{Bidirectional: bidirectional})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printStats(out, graph.Stats())
			printReport(out, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&bidirectional, "bidirectional", false, "Add reverse edges when loading JSON")
	return cmd
}

func printStats(w io.Writer, s routing.GraphStats) {
	fmt.Fprintf(w, "nodes:    %s\n", humanize.Comma(int64(s.Nodes)))
	fmt.Fprintf(w, "edges:    %s\n", humanize.Comma(int64(s.Edges)))
	fmt.Fprintf(w, "length:   %s km\n", humanize.CommafWithDigits(s.TotalKm, 1))
	for cat := 0; cat <= 255; cat++ {
		n, ok := s.Categories[uint8(cat)]
		if !ok {
			continue
		}
		label := fmt.Sprintf("category %d", cat)
		if !routing.ValidCategory(uint8(cat)) {
			label += " (distance only)"
		}
		fmt.Fprintf(w, "  %s: %s edges\n", label, humanize.Comma(int64(n)))
	}
}

func printReport(w io.Writer, r graphs_go.LoadReport) {
	if r.DroppedEdges > 0 {
		fmt.Fprintf(w, "dropped:  %s edges without a usable length or target\n", humanize.Comma(int64(r.DroppedEdges)))
	}
	if r.MalformedCategories > 0 {
		fmt.Fprintf(w, "malformed categories: %s\n", humanize.Comma(int64(r.MalformedCategories)))
	}
}
