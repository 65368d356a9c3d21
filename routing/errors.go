package routing

import "errors"

var (
	// ErrNoRoute is returned when the destination never entered the frontier
	// within the abort distance.
	ErrNoRoute = errors.New("no route found")

	// ErrReconstructionInconsistency is returned together with a partial path
	// when a predecessor chain cannot be followed back to the start.
	ErrReconstructionInconsistency = errors.New("route reconstruction inconsistency")

	// ErrInvalidInput is returned before searching when the query cannot be run.
	ErrInvalidInput = errors.New("invalid input")
)
