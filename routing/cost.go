package routing

import (
	"fmt"
	"strings"
)

// Vector is the accumulated cost of a path. Indices 0..3 hold the cascading
// safety-weighted cost, index 4 the raw distance in meters.
type Vector [5]float64

const DistanceIndex = 4

// Distance returns the raw traveled distance.
func (v Vector) Distance() float64 {
	return v[DistanceIndex]
}

// Add returns the elementwise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	var out Vector
	for i := range v {
		out[i] = v[i] + o[i]
	}
	return out
}

// Dominates reports whether v is no worse than o in every dimension and
// strictly better in at least one.
func (v Vector) Dominates(o Vector) bool {
	strictlyBetter := false
	for i := range v {
		if v[i] > o[i] {
			return false
		}
		if v[i] < o[i] {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// Preference is the user's trade-off between safety and distance.
type Preference int

const (
	Safest Preference = iota
	Balanced
	Fastest
)

var preferenceNames = map[Preference]string{
	Safest:   "safest",
	Balanced: "balanced",
	Fastest:  "fastest",
}

func (p Preference) String() string {
	if name, ok := preferenceNames[p]; ok {
		return name
	}
	return fmt.Sprintf("preference(%d)", int(p))
}

// Preferences lists the known preferences from safest to fastest.
func Preferences() []Preference {
	return []Preference{Safest, Balanced, Fastest}
}

// ParsePreference accepts the preference names as well as the slider
// positions 0, 1 and 2.
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safest", "safe", "0":
		return Safest, nil
	case "balanced", "", "1":
		return Balanced, nil
	case "fastest", "fast", "2":
		return Fastest, nil
	default:
		return Fastest, fmt.Errorf("%w: unknown preference %q", ErrInvalidInput, s)
	}
}

// Weights is the multiplier triple applied while cascading an unsafe
// segment's length up through the cost vector.
type Weights [3]float64

var unitWeights = Weights{1, 1, 1}

var defaultWeights = map[Preference]Weights{
	Safest:   {1.5, 2, 2.5},
	Balanced: {1.2, 1.5, 2},
	Fastest:  {1, 1, 1},
}

// WeightVector returns the built-in weights for p. Unknown preferences
// fall back to unit weights.
func WeightVector(p Preference) Weights {
	if w, ok := defaultWeights[p]; ok {
		return w
	}
	return unitWeights
}

// WeightTable maps preferences to weights, allowing the defaults to be
// overridden by configuration.
type WeightTable map[Preference]Weights

// DefaultWeightTable returns a fresh copy of the built-in weights.
func DefaultWeightTable() WeightTable {
	t := make(WeightTable, len(defaultWeights))
	for p, w := range defaultWeights {
		t[p] = w
	}
	return t
}

// For returns the weights for p, or unit weights when p is unknown.
func (t WeightTable) For(p Preference) Weights {
	if w, ok := t[p]; ok {
		return w
	}
	return unitWeights
}

// Safest returns the weights of the safest profile, used for scoring.
func (t WeightTable) Safest() Weights {
	return t.For(Safest)
}

// ValidCategory reports whether c is one of the four safety categories.
func ValidCategory(c uint8) bool {
	return c >= 1 && c <= 4
}

// EdgeCost converts one segment into a cost vector. Category 1 folds the
// length up through all three weights, category 4 only contributes to
// index 0. Categories outside 1..4 only count towards the distance.
func EdgeCost(length float64, category uint8, w Weights) Vector {
	var v Vector
	v[4] = length

	switch category {
	case 1:
		v[3] = length
		v[2] = v[3] * w[2]
		v[1] = v[2] * w[1]
		v[0] = v[1] * w[0]
	case 2:
		v[2] = length
		v[1] = v[2] * w[1]
		v[0] = v[1] * w[0]
	case 3:
		v[1] = length
		v[0] = v[1] * w[0]
	case 4:
		v[0] = length
	}
	return v
}
