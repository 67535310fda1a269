package testkit

import (
	"math"
	"math/rand"

	"gocirc/domain/circular"
)

// GroupSpec describes one synthetic condition group.
type GroupSpec struct {
	Population string
	Condition  string
	N          int
	MeanDeg    float64 // preferred direction
	SpreadDeg  float64 // wrapped-gaussian spread; <= 0 draws uniformly
}

// Generate builds a deterministic observation table from group specs. Angles
// are drawn from a wrapped gaussian around MeanDeg, or uniformly on the
// circle when SpreadDeg <= 0.
func Generate(seed int64, specs []GroupSpec) circular.Table {
	rng := rand.New(rand.NewSource(seed))
	var obs []circular.Observation
	for _, s := range specs {
		for i := 0; i < s.N; i++ {
			obs = append(obs, circular.Observation{
				Population: circular.Population(s.Population),
				Condition:  circular.Condition(s.Condition),
				AngleDeg:   drawDeg(rng, s),
			})
		}
	}
	return circular.Table{Observations: obs}
}

func drawDeg(rng *rand.Rand, s GroupSpec) float64 {
	var deg float64
	if s.SpreadDeg <= 0 {
		deg = rng.Float64() * 360
	} else {
		deg = math.Mod(s.MeanDeg+rng.NormFloat64()*s.SpreadDeg, 360)
		if deg < 0 {
			deg += 360
		}
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// ClusteredRad draws n angles in radians around meanDeg, for unit tests that
// work below the table layer.
func ClusteredRad(rng *rand.Rand, n int, meanDeg, spreadDeg float64) []float64 {
	out := make([]float64, n)
	spec := GroupSpec{MeanDeg: meanDeg, SpreadDeg: spreadDeg}
	for i := range out {
		out[i] = drawDeg(rng, spec) * math.Pi / 180
	}
	return out
}

// UniformRad draws n uniform angles in radians.
func UniformRad(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64() * 2 * math.Pi
	}
	return out
}
