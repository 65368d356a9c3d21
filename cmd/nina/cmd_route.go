package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Mammutor/NINA/addressbook"
	"github.com/Mammutor/NINA/graphs_go"
	"github.com/Mammutor/NINA/logging"
	"github.com/Mammutor/NINA/models"
	"github.com/Mammutor/NINA/routing"
	"github.com/Mammutor/NINA/services"
)

// maxPrintedNodes bounds the node list in text output.
const maxPrintedNodes = 8

type routeFlags struct {
	graph         string
	addresses     string
	preference    string
	abort         float64
	abortFactor   float64
	fallback      float64
	bidirectional bool
	asJSON        bool
	logLevel      string
}

func newRouteCmd() *cobra.Command {
	var f routeFlags
	cmd := &cobra.Command{
		Use:   "route <start> <end>",
		Short: "Plan a route between two nodes or addresses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(cmd, f, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&f.graph, "graph", "data/graph.json", "Graph file (.json or .gob)")
	cmd.Flags().StringVar(&f.addresses, "addresses", "", "Address CSV; lets start and end be addresses")
	cmd.Flags().StringVarP(&f.preference, "preference", "p", "balanced", "safest|balanced|fastest or 0..2")
	cmd.Flags().Float64Var(&f.abort, "abort", 0, "Abort distance in meters (0 derives it from the endpoints)")
	cmd.Flags().Float64Var(&f.abortFactor, "abort-factor", 2, "Multiple of the straight-line distance to search")
	cmd.Flags().Float64Var(&f.fallback, "fallback-abort", 20000, "Abort distance when endpoints are not coordinates")
	cmd.Flags().BoolVar(&f.bidirectional, "bidirectional", false, "Add reverse edges when loading JSON")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the full route as JSON")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")
	return cmd
}

func runRoute(cmd *cobra.Command, f routeFlags, start, end string) error {
	log, err := logging.New(logging.Options{Level: f.logLevel})
	if err != nil {
		return err
	}
	log.SetOutput(cmd.ErrOrStderr())

	graph, _, err := graphs_go.LoadGraphFromFile(f.graph, graphs_go.Options{Bidirectional: f.bidirectional})
	if err != nil {
		return err
	}

	var book *addressbook.Book
	if f.addresses != "" {
		if book, err = addressbook.LoadFile(f.addresses); err != nil {
			return err
		}
	}

	svc := services.NewRoutingService(graph, routing.NewPlanner(nil), book, services.Settings{
		AbortFactor:           f.abortFactor,
		FallbackAbortDistance: f.fallback,
	}, log)

	req := models.RouteRequest{Preference: f.preference}
	req.Start, req.StartAddress = endpoint(book, start)
	req.End, req.EndAddress = endpoint(book, end)
	if f.abort > 0 {
		req.AbortDistance = &f.abort
	}

	route, err := svc.CalculateRoute(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(route)
	}
	printRoute(out, route)
	return nil
}

// endpoint treats arg as an address when the book knows it, else as a node id.
func endpoint(book *addressbook.Book, arg string) (node, address string) {
	if book != nil {
		if _, err := book.Lookup(arg); err == nil {
			return "", arg
		}
	}
	return arg, ""
}

func printRoute(w io.Writer, r *models.Route) {
	nodes := make([]string, 0, len(r.Path))
	for _, id := range r.Path {
		nodes = append(nodes, string(id))
	}
	if len(nodes) > maxPrintedNodes {
		hidden := len(nodes) - 2
		nodes = []string{nodes[0], fmt.Sprintf("... %s nodes ...", humanize.Comma(int64(hidden))), nodes[len(nodes)-1]}
	}

	fmt.Fprintf(w, "path:       %s\n", strings.Join(nodes, " -> "))
	fmt.Fprintf(w, "distance:   %s\n", humanize.SIWithDigits(r.DistanceMeters, 2, "m"))
	fmt.Fprintf(w, "eta:        %d min\n", r.ETAMinutes)
	fmt.Fprintf(w, "safety:     %.2f (%s)\n", r.SafetyScore, r.Rating)
	fmt.Fprintf(w, "preference: %s\n", r.Preference)
	for _, c := range r.Categories {
		if c.Meters == 0 {
			continue
		}
		fmt.Fprintf(w, "  category %d: %s (%.0f%%)\n", c.Category, humanize.SIWithDigits(c.Meters, 2, "m"), c.Share*100)
	}
	fmt.Fprintf(w, "search:     %s expanded, %s pruned, %d alternatives\n",
		humanize.Comma(int64(r.Stats.Expanded)), humanize.Comma(int64(r.Stats.Pruned)), len(r.Alternatives))
	if r.Partial {
		fmt.Fprintf(w, "warning:    %s\n", r.Warning)
	}
}
