package circstat

import (
	"math"
	"sort"
)

// KuiperStatistic computes the two-sample Kuiper statistic V = D⁺ + D⁻
// between two circular samples in radians.
//
// Both samples are first shifted by the minimum of their union and reduced
// modulo 2π, so the combined support starts at zero. That removes the
// dependence on the arbitrary zero direction of the encoding: rotating both
// samples by the same constant leaves V unchanged, while rotating only one of
// them generally changes it. V is symmetric in its sensitivity to location
// and spread differences, unlike a one-sided Kolmogorov-Smirnov D.
//
// Returns NaN when either sample is empty.
func KuiperStatistic(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return math.NaN()
	}

	origin := a[0]
	for _, v := range a {
		if v < origin {
			origin = v
		}
	}
	for _, v := range b {
		if v < origin {
			origin = v
		}
	}

	as := shiftSorted(a, origin)
	bs := shiftSorted(b, origin)

	n1 := float64(len(as))
	n2 := float64(len(bs))

	var i, j int
	var dplus, dminus float64
	for i < len(as) || j < len(bs) {
		var x float64
		switch {
		case i >= len(as):
			x = bs[j]
		case j >= len(bs):
			x = as[i]
		default:
			x = math.Min(as[i], bs[j])
		}
		for i < len(as) && as[i] <= x {
			i++
		}
		for j < len(bs) && bs[j] <= x {
			j++
		}
		d := float64(i)/n1 - float64(j)/n2
		if d > dplus {
			dplus = d
		}
		if -d > dminus {
			dminus = -d
		}
	}
	return dplus + dminus
}

func shiftSorted(sample []float64, origin float64) []float64 {
	out := make([]float64, len(sample))
	for i, v := range sample {
		out[i] = Mod2Pi(v - origin)
	}
	sort.Float64s(out)
	return out
}
