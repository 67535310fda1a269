package circstat

import (
	"math"
)

// CircularMedian estimates the circular median: the observed direction that
// minimises the mean absolute angular deviation to the sample (Fisher 1993).
// Ties between candidate directions are resolved by their circular mean.
// ok is false for an empty sample.
func CircularMedian(angles []float64) (median float64, ok bool) {
	if len(angles) == 0 {
		return math.NaN(), false
	}
	if len(angles) == 1 {
		return Mod2Pi(angles[0]), true
	}

	const tol = 1e-9
	best := math.Inf(1)
	var ties []float64
	for _, cand := range angles {
		dev := 0.0
		for _, a := range angles {
			dev += math.Abs(AngularDistance(a, cand))
		}
		switch {
		case dev < best-tol:
			best = dev
			ties = ties[:0]
			ties = append(ties, cand)
		case dev <= best+tol:
			ties = append(ties, cand)
		}
	}

	if len(ties) == 1 {
		return Mod2Pi(ties[0]), true
	}
	_, mean := Resultant(ties)
	return mean, true
}
