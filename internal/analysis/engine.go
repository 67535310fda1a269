package analysis

import (
	"context"
	"math/rand"
	"sort"

	"golang.org/x/sync/semaphore"

	"gocirc/adapters/stats/circstat"
	"gocirc/domain/circular"
	"gocirc/domain/core"
	"gocirc/internal"
	"gocirc/internal/errors"
	"gocirc/ports"
)

// maxConcurrentTests bounds how many pairwise permutation tests run at once;
// each test additionally runs its own worker pool.
const maxConcurrentTests = 4

const permutationStage = "kuiper-permutation"

// Engine is the circular-statistics analysis engine. It holds no per-run
// state: the same table, params and seed reproduce the same report.
type Engine struct {
	rng ports.RNGPort
	log *internal.Logger
}

// New creates an engine over an RNG port.
func New(rngPort ports.RNGPort, logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{rng: rngPort, log: logger}
}

// Analyze validates the table, groups observations by population and
// condition, and produces one PopulationReport per population. Populations
// are analyzed concurrently; a degenerate population never prevents the
// others from completing.
func (e *Engine) Analyze(ctx context.Context, table circular.Table, params circular.AnalysisParams) (*circular.AnalysisReport, error) {
	params = params.Normalize()
	if err := table.Validate(); err != nil {
		return nil, errors.Wrap(err, "observation table rejected")
	}

	runID := core.NewRunID()
	byPop := groupObservations(table)

	pops := make([]circular.Population, 0, len(byPop))
	for pop := range byPop {
		pops = append(pops, pop)
	}
	sort.Slice(pops, func(i, j int) bool { return pops[i] < pops[j] })

	e.log.Info("analysis %s: %d observations, %d populations, nSim=%d",
		runID, len(table.Observations), len(pops), params.NSim)

	sem := semaphore.NewWeighted(maxConcurrentTests)

	type indexed struct {
		idx    int
		report circular.PopulationReport
	}
	resultChan := make(chan indexed, len(pops))
	for i, pop := range pops {
		go func(idx int, pop circular.Population) {
			rep := e.analyzePopulation(ctx, pop, byPop[pop], params, sem)
			resultChan <- indexed{idx: idx, report: rep}
		}(i, pop)
	}

	reports := make([]circular.PopulationReport, len(pops))
	for range pops {
		res := <-resultChan
		reports[res.idx] = res.report
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &circular.AnalysisReport{
		RunID:        runID,
		Params:       params,
		Observations: len(table.Observations),
		Populations:  reports,
		CreatedAt:    core.Now(),
	}, nil
}

// groupObservations converts angles to radians and partitions them by
// population and condition. Declared groups without observations appear with
// an empty slice so they surface as "undefined" in the report.
func groupObservations(table circular.Table) map[circular.Population]map[circular.Condition][]float64 {
	byPop := make(map[circular.Population]map[circular.Condition][]float64)
	ensure := func(key circular.GroupKey) map[circular.Condition][]float64 {
		conds, ok := byPop[key.Population]
		if !ok {
			conds = make(map[circular.Condition][]float64)
			byPop[key.Population] = conds
		}
		if _, ok := conds[key.Condition]; !ok {
			conds[key.Condition] = []float64{}
		}
		return conds
	}

	for _, o := range table.Observations {
		conds := ensure(o.Key())
		conds[o.Condition] = append(conds[o.Condition], circstat.DegToRad(o.AngleDeg))
	}
	for _, g := range table.DeclaredGroups {
		ensure(g)
	}
	return byPop
}

// analyzePopulation computes descriptives per condition group, the
// common-median test across groups, and the FDR-corrected pairwise Kuiper
// permutation tests, then assembles the population report.
func (e *Engine) analyzePopulation(ctx context.Context, pop circular.Population, groups map[circular.Condition][]float64, params circular.AnalysisParams, sem *semaphore.Weighted) circular.PopulationReport {
	conds := make([]circular.Condition, 0, len(groups))
	for c := range groups {
		conds = append(conds, c)
	}
	sort.Slice(conds, func(i, j int) bool { return conds[i] < conds[j] })

	descriptives := make([]circular.DescriptiveStats, 0, len(conds))
	for _, c := range conds {
		key := circular.GroupKey{Population: pop, Condition: c}
		descriptives = append(descriptives, circstat.Describe(key, groups[c], params.Alpha))
	}

	commonMedian := circstat.CommonMedianTest(pop, groups)

	pairwise := e.runPairwiseTests(ctx, pop, conds, groups, params, sem)
	applyFDRCorrection(pairwise, params.FDRLevel)

	return assembleReport(pop, descriptives, commonMedian, pairwise)
}

// runPairwiseTests runs the Kuiper permutation test for every unordered pair
// of condition groups. Pairs with an empty side are recorded as skipped so
// the pair set still covers exactly all unordered pairs. Tests execute
// concurrently behind the shared semaphore.
func (e *Engine) runPairwiseTests(ctx context.Context, pop circular.Population, conds []circular.Condition, groups map[circular.Condition][]float64, params circular.AnalysisParams, sem *semaphore.Weighted) []circular.PairwiseResult {
	type pair struct {
		a, b circular.Condition
	}
	var pairs []pair
	for i := 0; i < len(conds); i++ {
		for j := i + 1; j < len(conds); j++ {
			pairs = append(pairs, pair{a: conds[i], b: conds[j]})
		}
	}

	results := make([]circular.PairwiseResult, len(pairs))

	type indexed struct {
		idx int
		res circular.PairwiseResult
	}
	resultChan := make(chan indexed, len(pairs))
	for i, p := range pairs {
		go func(idx int, p pair) {
			resultChan <- indexed{idx: idx, res: e.runPairwiseTest(ctx, pop, p.a, p.b, groups[p.a], groups[p.b], params, sem)}
		}(i, p)
	}
	for range pairs {
		res := <-resultChan
		results[res.idx] = res.res
	}
	return results
}

func (e *Engine) runPairwiseTest(ctx context.Context, pop circular.Population, condA, condB circular.Condition, a, b []float64, params circular.AnalysisParams, sem *semaphore.Weighted) circular.PairwiseResult {
	res := circular.PairwiseResult{
		Population:      pop,
		ConditionA:      condA,
		ConditionB:      condB,
		NA:              len(a),
		NB:              len(b),
		NumPermutations: params.NSim,
	}

	if len(a) == 0 || len(b) == 0 {
		res.Skipped = true
		res.SkipReason = circular.WarningEmptyGroup
		return res
	}

	if err := sem.Acquire(ctx, 1); err != nil {
		res.Skipped = true
		res.SkipReason = circular.WarningTestFailed
		return res
	}
	defer sem.Release(1)

	pairKey := res.PairKey()
	streams := func(worker int) (*rand.Rand, error) {
		return e.rng.Stream(ctx, permutationStage, pairKey, worker, params.Seed)
	}

	out, err := circstat.KuiperPermutationTest(ctx, a, b, params.NSim, params.Workers, streams)
	if err != nil {
		e.log.Warn("pairwise test %s failed: %v", pairKey, err)
		res.Skipped = true
		res.SkipReason = circular.WarningTestFailed
		return res
	}

	res.Statistic = out.Statistic
	res.PRaw = out.P
	res.PBelowResolution = out.PBelowResolution
	res.Null = out.Null
	if out.PBelowResolution {
		res.Warnings = append(res.Warnings, circular.WarningPBelowResolution)
	}
	if params.NSim < circstat.LowResolutionNSim {
		res.Warnings = append(res.Warnings, circular.WarningLowResolution)
	}
	if len(a) == 1 || len(b) == 1 {
		res.Warnings = append(res.Warnings, circular.WarningTinyGroup)
	}
	return res
}

// applyFDRCorrection runs Benjamini-Hochberg over the non-skipped pairwise
// family of one population, writing adjusted p-values and significance flags
// back onto the results in place.
func applyFDRCorrection(results []circular.PairwiseResult, q float64) {
	var idx []int
	var pvals []float64
	for i := range results {
		if !results[i].Skipped {
			idx = append(idx, i)
			pvals = append(pvals, results[i].PRaw)
		}
	}
	if len(pvals) == 0 {
		return
	}

	adjusted, significant := circstat.BenjaminiHochberg(pvals, q)
	for k, i := range idx {
		results[i].PAdjusted = adjusted[k]
		results[i].Significant = significant[k]
		results[i].Adjusted = true
	}
}
