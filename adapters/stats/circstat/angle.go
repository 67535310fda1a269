package circstat

import (
	"math"
)

const twoPi = 2 * math.Pi

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Mod2Pi reduces an angle to [0, 2π).
func Mod2Pi(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// AngularDistance returns the signed smallest rotation from b to a, in (-π, π].
func AngularDistance(a, b float64) float64 {
	return math.Atan2(math.Sin(a-b), math.Cos(a-b))
}

// Resultant returns the mean resultant length R ∈ [0, 1] and the mean
// direction in [0, 2π) of a sample of angles in radians. Both are NaN for an
// empty sample.
func Resultant(angles []float64) (rbar, mean float64) {
	if len(angles) == 0 {
		return math.NaN(), math.NaN()
	}
	var c, s float64
	for _, a := range angles {
		c += math.Cos(a)
		s += math.Sin(a)
	}
	n := float64(len(angles))
	rbar = math.Hypot(c, s) / n
	if rbar > 1 {
		// Floating-point overshoot for fully concentrated samples.
		rbar = 1
	}
	mean = Mod2Pi(math.Atan2(s, c))
	return rbar, mean
}
