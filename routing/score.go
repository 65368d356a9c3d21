package routing

import "math"

const (
	AverageBikeSpeedKmh = 15.0

	// calibration of the weighted-average risk ratio onto the displayed scale
	scoreDomainMin  = 1.0
	scoreDomainMax  = 7.5
	scoreDisplayMin = 1.0
	scoreDisplayMax = 6.0
)

// EstimatedMinutes returns the riding time for a distance at 15 km/h.
func EstimatedMinutes(distanceMeters float64) uint32 {
	if distanceMeters <= 0 {
		return 0
	}
	hours := distanceMeters / 1000 / AverageBikeSpeedKmh
	return uint32(math.Round(hours * 60))
}

// RawCategoryLengths undoes the cascade of EdgeCost for a summed cost
// vector built with weights w, returning the meters ridden in categories
// 1, 2, 3 and 4.
func RawCategoryLengths(v Vector, w Weights) [4]float64 {
	cat1 := v[3]
	cat2 := v[2] - cat1*w[2]
	cat3 := v[1] - cat2*w[1] - cat1*w[2]*w[1]
	cat4 := v[0] -
		cat3*w[0] -
		cat2*w[1]*w[0] -
		cat1*w[2]*w[1]*w[0]
	return [4]float64{cat1, cat2, cat3, cat4}
}

// riskWeightedLength re-weights raw category lengths with the safest
// profile so that scores are comparable across preferences.
func riskWeightedLength(raw [4]float64, safest Weights) float64 {
	return raw[0]*safest[0]*safest[1]*safest[2] +
		raw[1]*safest[1]*safest[2] +
		raw[2]*safest[2] +
		raw[3]
}

// SafetyScore maps a route's cost vector onto the 1.0 (safe) to 6.0 (risky)
// display scale. The vector must have been built with the weights of p from
// table. Inputs outside the calibration range can leave the scale.
func SafetyScore(v Vector, p Preference, table WeightTable) float64 {
	if v[DistanceIndex] <= 0 {
		return scoreDisplayMin
	}
	raw := RawCategoryLengths(v, table.For(p))
	ratio := riskWeightedLength(raw, table.Safest()) / v[DistanceIndex]

	return scoreDisplayMin + ((ratio-scoreDomainMin)/(scoreDomainMax-scoreDomainMin))*(scoreDisplayMax-scoreDisplayMin)
}

type Rating string

const (
	RatingGood     Rating = "good"
	RatingModerate Rating = "moderate"
	RatingPoor     Rating = "poor"
	RatingUnknown  Rating = "unknown"
)

// RatingBand buckets a safety score for display.
func RatingBand(score float64) Rating {
	switch {
	case score >= 1.0 && score < 2.5:
		return RatingGood
	case score >= 2.5 && score < 4.0:
		return RatingModerate
	case score >= 4.0:
		return RatingPoor
	default:
		return RatingUnknown
	}
}
