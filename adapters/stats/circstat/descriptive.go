package circstat

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gocirc/domain/circular"
)

// Describe computes circular descriptive statistics for one group: sample
// count, mean direction, resultant length, circular variance, the Rayleigh
// uniformity p-value and a confidence interval for the mean direction at the
// given alpha. An empty sample yields the undefined sentinel, never a crash.
func Describe(group circular.GroupKey, anglesRad []float64, alpha float64) circular.DescriptiveStats {
	if len(anglesRad) == 0 {
		return circular.UndefinedStats(group)
	}

	n := len(anglesRad)
	rbar, mean := Resultant(anglesRad)

	st := circular.DescriptiveStats{
		Group:            group,
		N:                n,
		MeanDeg:          circular.Float(RadToDeg(mean)),
		ResultantLength:  circular.Float(rbar),
		CircularVariance: circular.Float(1 - rbar),
		RayleighP:        circular.Float(RayleighP(n, rbar)),
		Defined:          true,
	}

	se, ok := MeanStandardError(n, rbar)
	half := math.NaN()
	if ok {
		z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - alpha/2)
		half = z * se
	}
	// An interval at least as wide as the circle carries no information and is
	// reported as undefined, same as the R = 0 case.
	if !ok || half >= math.Pi {
		st.MeanCILowerDeg = circular.Float(math.NaN())
		st.MeanCIUpperDeg = circular.Float(math.NaN())
		st.CIDefined = false
		st.Warnings = append(st.Warnings, circular.WarningUndefinedCI)
		return st
	}

	st.MeanCILowerDeg = circular.Float(RadToDeg(Mod2Pi(mean - half)))
	st.MeanCIUpperDeg = circular.Float(RadToDeg(Mod2Pi(mean + half)))
	st.CIDefined = true
	return st
}

// MeanStandardError returns the large-sample standard error of the mean
// direction, sqrt((1-R)/(n·R)) radians. ok is false when R = 0, where the
// standard error is infinite.
func MeanStandardError(n int, rbar float64) (se float64, ok bool) {
	if n == 0 || rbar <= 0 {
		return math.NaN(), false
	}
	return math.Sqrt((1 - rbar) / (float64(n) * rbar)), true
}
