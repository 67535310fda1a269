package circstat

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMod2Pi(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero stays zero", 0, 0},
		{"full turn wraps to zero", twoPi, 0},
		{"negative wraps positive", -math.Pi / 2, 3 * math.Pi / 2},
		{"multiple turns reduce", 5 * math.Pi, math.Pi},
		{"in range unchanged", 1.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mod2Pi(tt.in)
			if !approxEqual(got, tt.want, 1e-12) {
				t.Errorf("Mod2Pi(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAngularDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"same direction", 1.0, 1.0, 0},
		{"quarter turn forward", math.Pi / 2, 0, math.Pi / 2},
		{"quarter turn backward", 0, math.Pi / 2, -math.Pi / 2},
		{"shortest way across zero", DegToRad(10), DegToRad(350), DegToRad(20)},
		{"shortest way across zero reversed", DegToRad(350), DegToRad(10), DegToRad(-20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularDistance(tt.a, tt.b)
			if !approxEqual(got, tt.want, 1e-12) {
				t.Errorf("AngularDistance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestResultant(t *testing.T) {
	t.Run("empty sample is NaN", func(t *testing.T) {
		rbar, mean := Resultant(nil)
		if !math.IsNaN(rbar) || !math.IsNaN(mean) {
			t.Errorf("Resultant(nil) = %v, %v, want NaN, NaN", rbar, mean)
		}
	})

	t.Run("identical angles are fully concentrated", func(t *testing.T) {
		angles := []float64{DegToRad(90), DegToRad(90), DegToRad(90)}
		rbar, mean := Resultant(angles)
		if !approxEqual(rbar, 1, 1e-12) {
			t.Errorf("rbar = %v, want 1", rbar)
		}
		if !approxEqual(mean, DegToRad(90), 1e-9) {
			t.Errorf("mean = %v, want %v", mean, DegToRad(90))
		}
	})

	t.Run("four uniform angles cancel", func(t *testing.T) {
		angles := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
		rbar, _ := Resultant(angles)
		if rbar > 1e-9 {
			t.Errorf("rbar = %v, want ~0", rbar)
		}
	})

	t.Run("mean wraps across zero", func(t *testing.T) {
		angles := []float64{DegToRad(350), DegToRad(10)}
		_, mean := Resultant(angles)
		if !approxEqual(mean, 0, 1e-9) && !approxEqual(mean, twoPi, 1e-9) {
			t.Errorf("mean = %v deg, want 0", RadToDeg(mean))
		}
	})
}
