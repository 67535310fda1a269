package circstat

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"gocirc/domain/core"
	"gocirc/internal/testkit"
)

func TestKuiperPermutationTest_EmptySample(t *testing.T) {
	_, err := KuiperPermutationTest(context.Background(), nil, []float64{1}, 100, 2, SeededStreams(1))
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
}

func TestKuiperPermutationTest_IdenticalSamples(t *testing.T) {
	a := degGroup(10, 95, 180, 265, 350)
	out, err := KuiperPermutationTest(context.Background(), a, a, 200, 4, SeededStreams(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The observed statistic is zero, so every permutation reaches it.
	if out.Statistic > 1e-12 {
		t.Errorf("Statistic = %v, want 0", out.Statistic)
	}
	if out.P != 1 {
		t.Errorf("P = %v, want 1", out.P)
	}
	if out.PBelowResolution {
		t.Error("PBelowResolution must be false when permutations reach the statistic")
	}
	if out.ExceedCount != 200 {
		t.Errorf("ExceedCount = %d, want 200", out.ExceedCount)
	}
}

func TestKuiperPermutationTest_SeparatedClusters(t *testing.T) {
	var a, b []float64
	for i := 0; i < 20; i++ {
		a = append(a, DegToRad(float64(i*5)))
		b = append(b, DegToRad(float64(180+i*5)))
	}

	nSim := 500
	out, err := KuiperPermutationTest(context.Background(), a, b, nSim, 4, SeededStreams(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.PBelowResolution {
		t.Error("no permutation should reach the observed statistic")
	}
	if want := 1 / float64(nSim); out.P != want {
		t.Errorf("P = %v, want resolution bound %v", out.P, want)
	}
	if out.ExceedCount != 0 {
		t.Errorf("ExceedCount = %d, want 0", out.ExceedCount)
	}
	if out.Null.Max >= out.Statistic {
		t.Errorf("null max %v must stay below observed %v", out.Null.Max, out.Statistic)
	}
}

func TestKuiperPermutationTest_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := testkit.ClusteredRad(rng, 30, 60, 30)
	b := testkit.ClusteredRad(rng, 30, 100, 30)

	run := func(seed int64) PermutationOutcome {
		out, err := KuiperPermutationTest(context.Background(), a, b, 400, 4, SeededStreams(seed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return out
	}

	first := run(42)
	second := run(42)
	if first.ExceedCount != second.ExceedCount || first.P != second.P {
		t.Errorf("same seed diverged: %+v vs %+v", first, second)
	}
	if first.Null.Mean != second.Null.Mean {
		t.Errorf("null summaries diverged for the same seed")
	}

	other := run(43)
	if first.Null.Mean == other.Null.Mean {
		t.Error("different seeds produced identical null distributions")
	}
}

func TestKuiperPermutationTest_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := degGroup(10, 20, 30)
	b := degGroup(100, 110, 120)
	_, err := KuiperPermutationTest(ctx, a, b, 1000, 4, SeededStreams(1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestKuiperPermutationTest_MoreWorkersThanIterations(t *testing.T) {
	a := degGroup(10, 20, 30)
	b := degGroup(100, 110, 120)
	out, err := KuiperPermutationTest(context.Background(), a, b, 8, 32, SeededStreams(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NSim != 8 {
		t.Errorf("NSim = %d, want 8", out.NSim)
	}
}
