package circstat

import (
	"context"
	"math/rand"
	"sync"

	"github.com/montanaflynn/stats"

	"gocirc/domain/circular"
	"gocirc/domain/core"
)

// LowResolutionNSim is the permutation count below which the p-value
// resolution of 1/nSim becomes too coarse for the default alpha of 0.05.
const LowResolutionNSim = 200

// PermutationOutcome is the Monte-Carlo estimate for one two-sample test.
type PermutationOutcome struct {
	Statistic        float64 // observed Kuiper V
	P                float64
	PBelowResolution bool // P is the bound 1/nSim; no permutation reached Statistic
	ExceedCount      int
	NSim             int
	Null             circular.NullSummary
}

// StreamFunc hands each permutation worker its own deterministic RNG stream.
type StreamFunc func(worker int) (*rand.Rand, error)

// KuiperPermutationTest estimates the p-value of the null hypothesis that two
// circular samples come from the same distribution. It pools both samples and
// for nSim iterations draws a uniformly random partition into the original
// sizes, recomputing the Kuiper statistic each time. The p-value is the
// fraction of permuted statistics ≥ the observed one; a count of zero is
// reported as the resolution bound 1/nSim with PBelowResolution set, never as
// a literal zero.
//
// Iterations are spread over a worker pool. Each worker keeps a private count
// and null-statistic buffer and draws from its own RNG stream, so no mutable
// state is shared across workers.
func KuiperPermutationTest(ctx context.Context, a, b []float64, nSim, workers int, streams StreamFunc) (PermutationOutcome, error) {
	if len(a) == 0 || len(b) == 0 {
		return PermutationOutcome{}, core.ErrInsufficientData
	}
	if nSim <= 0 {
		nSim = 1000
	}
	if workers < 1 {
		workers = 1
	}
	if workers > nSim {
		workers = nSim
	}

	vobs := KuiperStatistic(a, b)

	pooled := make([]float64, 0, len(a)+len(b))
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)
	n1 := len(a)

	// Hand every worker its RNG up front so a stream failure surfaces before
	// any goroutine starts.
	rngs := make([]*rand.Rand, workers)
	for w := 0; w < workers; w++ {
		rng, err := streams(w)
		if err != nil {
			return PermutationOutcome{}, err
		}
		rngs[w] = rng
	}

	workChan := make(chan int, nSim)
	for i := 0; i < nSim; i++ {
		workChan <- i
	}
	close(workChan)

	type partial struct {
		count int
		null  []float64
	}
	resultChan := make(chan partial, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()
			local := partial{null: make([]float64, 0, nSim/workers+1)}
			defer func() { resultChan <- local }()

			buf := make([]float64, len(pooled))
			for range workChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				copy(buf, pooled)
				// Fisher-Yates shuffle; the first n1 entries form sample A'.
				for i := len(buf) - 1; i > 0; i-- {
					j := rng.Intn(i + 1)
					buf[i], buf[j] = buf[j], buf[i]
				}
				v := KuiperStatistic(buf[:n1], buf[n1:])
				if v >= vobs-1e-12 {
					local.count++
				}
				local.null = append(local.null, v)
			}
		}(rngs[w])
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	count := 0
	null := make([]float64, 0, nSim)
	for p := range resultChan {
		count += p.count
		null = append(null, p.null...)
	}
	if err := ctx.Err(); err != nil {
		return PermutationOutcome{}, err
	}

	out := PermutationOutcome{
		Statistic:   vobs,
		ExceedCount: count,
		NSim:        nSim,
		Null:        summarizeNull(null),
	}
	if count == 0 {
		out.P = 1 / float64(nSim)
		out.PBelowResolution = true
	} else {
		out.P = float64(count) / float64(nSim)
	}
	return out, nil
}

func summarizeNull(null []float64) circular.NullSummary {
	if len(null) == 0 {
		return circular.NullSummary{}
	}
	mean, _ := stats.Mean(null)
	sd, _ := stats.StandardDeviation(null)
	min, _ := stats.Min(null)
	max, _ := stats.Max(null)
	p95, _ := stats.Percentile(null, 95)
	p99, _ := stats.Percentile(null, 99)
	return circular.NullSummary{
		Mean:         mean,
		StdDev:       sd,
		Min:          min,
		Max:          max,
		Percentile95: p95,
		Percentile99: p99,
	}
}

// SeededStreams builds a StreamFunc from a flat base seed, for callers that do
// not plug in an RNG port.
func SeededStreams(seed int64) StreamFunc {
	return func(worker int) (*rand.Rand, error) {
		return rand.New(rand.NewSource(seed + int64(worker)*0x9e3779b9)), nil
	}
}
