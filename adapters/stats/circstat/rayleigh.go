package circstat

import (
	"math"
)

// RayleighP tests the null hypothesis that a circular sample is uniform
// against the alternative of a single preferred direction. The statistic is
// z = nR² with the closed-form asymptotic approximation (Zar 1999):
//
//	p = exp(sqrt(1 + 4n + 4(n² - Rn²)) - (1 + 2n)), Rn = nR
//
// Returns NaN for n = 0.
func RayleighP(n int, rbar float64) float64 {
	if n == 0 || math.IsNaN(rbar) {
		return math.NaN()
	}
	nf := float64(n)
	rn := nf * rbar
	p := math.Exp(math.Sqrt(1+4*nf+4*(nf*nf-rn*rn)) - (1 + 2*nf))
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}

// RayleighZ returns the Rayleigh statistic z = nR².
func RayleighZ(n int, rbar float64) float64 {
	if n == 0 {
		return math.NaN()
	}
	return float64(n) * rbar * rbar
}
