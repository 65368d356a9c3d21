package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Mammutor/NINA/addressbook"
	"github.com/Mammutor/NINA/metrics"
	"github.com/Mammutor/NINA/models"
	"github.com/Mammutor/NINA/routing"
	"github.com/Mammutor/NINA/utils"
)

// Settings are the search bounds applied to every query.
type Settings struct {
	AbortFactor           float64
	FallbackAbortDistance float64
	SearchTimeout         time.Duration
}

type RoutingService struct {
	graph    routing.GraphView
	planner  *routing.Planner
	book     *addressbook.Book
	tracker  *QueryTracker
	settings Settings
	log      *logrus.Logger
}

// NewRoutingService wires the planner to a loaded graph. book may be nil
// when no address data is configured.
func NewRoutingService(graph routing.GraphView, planner *routing.Planner, book *addressbook.Book, settings Settings, log *logrus.Logger) *RoutingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RoutingService{
		graph:    graph,
		planner:  planner,
		book:     book,
		tracker:  NewQueryTracker(),
		settings: settings,
		log:      log,
	}
}

// Book returns the address book, or nil.
func (rs *RoutingService) Book() *addressbook.Book {
	return rs.book
}

// Weights returns the weight table the planner scores with.
func (rs *RoutingService) Weights() routing.WeightTable {
	return rs.planner.Weights
}

// CalculateRoute resolves the request's endpoints, runs the planner and
// shapes the result. A newer request of the same session supersedes this
// one; it then fails with ErrSuperseded.
func (rs *RoutingService) CalculateRoute(ctx context.Context, req models.RouteRequest) (*models.Route, error) {
	start, err := rs.resolve(req.Start, req.StartAddress, "start")
	if err != nil {
		return nil, err
	}
	end, err := rs.resolve(req.End, req.EndAddress, "end")
	if err != nil {
		return nil, err
	}

	pref, ok := utils.ParsePreference(req.Preference)
	if !ok {
		return nil, fmt.Errorf("%w: unknown preference %q", routing.ErrInvalidInput, req.Preference)
	}

	abort := rs.AbortDistance(start, end, req.AbortDistance)

	ctx, ticket := rs.tracker.Begin(ctx, req.Session)
	defer ticket.Done()
	if rs.settings.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rs.settings.SearchTimeout)
		defer cancel()
	}

	began := time.Now()
	route, err := rs.planner.Plan(ctx, rs.graph, start, end, pref, abort)
	elapsed := time.Since(began)

	if !ticket.Current() {
		metrics.SupersededTotal.Inc()
		err = ErrSuperseded
	}

	outcome := outcomeOf(route, err)
	metrics.SearchDuration.WithLabelValues(pref.String(), outcome).Observe(elapsed.Seconds())

	fields := logrus.Fields{
		"start":      start,
		"end":        end,
		"preference": pref.String(),
		"outcome":    outcome,
		"duration":   elapsed.String(),
	}
	if !math.IsInf(abort, 0) {
		fields["abort_distance"] = abort
	}
	if route != nil {
		metrics.SearchExpanded.Observe(float64(route.Stats.Expanded))
		fields["expanded"] = route.Stats.Expanded
		fields["pruned"] = route.Stats.Pruned
		fields["inserted"] = route.Stats.Inserted
		fields["peak_queue"] = route.Stats.PeakQueue
		if route.Stats.MalformedEdges > 0 {
			fields["malformed_edges"] = route.Stats.MalformedEdges
		}
	}
	entry := rs.log.WithFields(fields)

	switch {
	case err != nil:
		entry.WithError(err).Info("route query failed")
		return nil, err
	case route.Partial:
		entry.WithField("warning", route.Warning).Warn("route reconstructed partially")
	default:
		entry.Info("route planned")
	}

	resp := models.PrepareRoute(route, pref, abort)
	return &resp, nil
}

// AbortDistance picks the search bound: a usable requested value, else the
// straight-line distance between coordinate ids times the abort factor,
// else the configured fallback.
func (rs *RoutingService) AbortDistance(start, end routing.NodeID, requested *float64) float64 {
	if utils.UsableDistance(requested) {
		return *requested
	}
	d, err := routing.AbortDistanceFor(start, end, rs.settings.AbortFactor)
	if err != nil || d <= 0 {
		return rs.settings.FallbackAbortDistance
	}
	return d
}

func (rs *RoutingService) resolve(node, address, which string) (routing.NodeID, error) {
	if node != "" {
		return routing.NodeID(node), nil
	}
	if address == "" {
		return "", fmt.Errorf("%w: %s node or address is required", routing.ErrInvalidInput, which)
	}
	if rs.book == nil {
		return "", fmt.Errorf("%w: no address data loaded", routing.ErrInvalidInput)
	}
	id, err := rs.book.Node(address)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", routing.ErrInvalidInput, which, err)
	}
	return id, nil
}

func outcomeOf(route *routing.Route, err error) string {
	switch {
	case err == nil && route != nil && route.Partial:
		return "partial"
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSuperseded):
		return "superseded"
	case errors.Is(err, routing.ErrNoRoute):
		return "no_route"
	case errors.Is(err, routing.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
