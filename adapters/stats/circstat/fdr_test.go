package circstat

import (
	"testing"
)

func TestBenjaminiHochberg_Empty(t *testing.T) {
	adjusted, significant := BenjaminiHochberg(nil, 0.05)
	if adjusted != nil || significant != nil {
		t.Error("empty family must return nil slices")
	}
}

func TestBenjaminiHochberg_KnownFamily(t *testing.T) {
	pvals := []float64{0.001, 0.01, 0.02, 0.2, 0.5}
	adjusted, significant := BenjaminiHochberg(pvals, 0.05)

	// Ranks 1..3 pass p_(r) <= (r/m)q: 0.001 <= 0.01, 0.01 <= 0.02, 0.02 <= 0.03.
	wantSig := []bool{true, true, true, false, false}
	for i, want := range wantSig {
		if significant[i] != want {
			t.Errorf("significant[%d] = %v, want %v", i, significant[i], want)
		}
	}

	wantAdj := []float64{0.005, 0.025, 1.0 / 30.0, 0.25, 0.5}
	for i, want := range wantAdj {
		if !approxEqual(adjusted[i], want, 1e-12) {
			t.Errorf("adjusted[%d] = %v, want %v", i, adjusted[i], want)
		}
	}
}

func TestBenjaminiHochberg_InputOrderPreserved(t *testing.T) {
	pvals := []float64{0.5, 0.001, 0.2, 0.01, 0.02}
	adjusted, significant := BenjaminiHochberg(pvals, 0.05)

	wantSig := []bool{false, true, false, true, true}
	for i, want := range wantSig {
		if significant[i] != want {
			t.Errorf("significant[%d] = %v, want %v", i, significant[i], want)
		}
	}
	if !approxEqual(adjusted[1], 0.005, 1e-12) {
		t.Errorf("adjusted[1] = %v, want 0.005", adjusted[1])
	}
	if !approxEqual(adjusted[0], 0.5, 1e-12) {
		t.Errorf("adjusted[0] = %v, want 0.5", adjusted[0])
	}
}

func TestBenjaminiHochberg_NothingSignificant(t *testing.T) {
	pvals := []float64{0.3, 0.5, 0.9}
	adjusted, significant := BenjaminiHochberg(pvals, 0.05)

	for i, s := range significant {
		if s {
			t.Errorf("significant[%d] = true, want false", i)
		}
	}
	// Monotone adjustment caps at the largest raw p.
	for i, a := range adjusted {
		if a > 0.9+1e-12 {
			t.Errorf("adjusted[%d] = %v exceeds family maximum", i, a)
		}
	}
}

func TestBenjaminiHochberg_TiesShareAdjustedValue(t *testing.T) {
	pvals := []float64{0.02, 0.02, 0.5}
	adjusted, _ := BenjaminiHochberg(pvals, 0.05)

	if adjusted[0] != adjusted[1] {
		t.Errorf("tied p-values got different adjusted values: %v vs %v", adjusted[0], adjusted[1])
	}
}

func TestBenjaminiHochberg_AdjustedMonotone(t *testing.T) {
	pvals := []float64{0.001, 0.002, 0.004, 0.008, 0.4, 0.6, 0.8}
	adjusted, _ := BenjaminiHochberg(pvals, 0.05)

	for i := 1; i < len(pvals); i++ {
		if adjusted[i] < adjusted[i-1]-1e-12 {
			t.Errorf("adjusted p-values not monotone in p order: %v", adjusted)
		}
	}
}
