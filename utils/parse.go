package utils

import (
	"math"
	"strconv"

	"github.com/Mammutor/NINA/routing"
)

// ParsePreference resolves a request's preference, accepting names and
// slider positions. ok is false for unrecognised input.
func ParsePreference(input string) (routing.Preference, bool) {
	p, err := routing.ParsePreference(input)
	return p, err == nil
}

// ParseLimit reads a positive integer query value, capped at ceiling.
func ParseLimit(s string, fallback, ceiling int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	if v > ceiling {
		return ceiling
	}
	return v
}

// UsableDistance reports whether d can bound a search: positive and not NaN.
// +Inf means unbounded and is accepted.
func UsableDistance(d *float64) bool {
	return d != nil && !math.IsNaN(*d) && *d > 0
}
