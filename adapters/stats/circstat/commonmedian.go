package circstat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"gocirc/domain/circular"
)

// CommonMedianTest runs Fisher's nonparametric test for a common circular
// median across k ≥ 2 condition groups of one population (Fisher 1993,
// §5.3.2). With N pooled observations, M of them below the pooled median and
// mᵢ below the median within group i, the statistic
//
//	P = N²/(M(N-M)) · Σ mᵢ²/nᵢ - N·M/(N-M)
//
// is referred to a chi-squared distribution with k-1 degrees of freedom.
// Groups without observations are ignored; with fewer than two populated
// groups the test is reported as not applicable.
func CommonMedianTest(pop circular.Population, groups map[circular.Condition][]float64) circular.CommonMedianResult {
	nan := circular.Float(math.NaN())
	res := circular.CommonMedianResult{
		Population: pop,
		Statistic:  nan,
		MedianRad:  nan,
		PValue:     nan,
	}

	// Deterministic group order regardless of map iteration.
	conds := make([]circular.Condition, 0, len(groups))
	for c, angles := range groups {
		if len(angles) > 0 {
			conds = append(conds, c)
		}
	}
	sort.Slice(conds, func(i, j int) bool { return conds[i] < conds[j] })

	k := len(conds)
	res.GroupCount = k
	if k < 2 {
		res.Applicable = false
		res.Warnings = append(res.Warnings, circular.WarningNotEnoughGroups)
		return res
	}

	var pooled []float64
	tiny := false
	for _, c := range conds {
		pooled = append(pooled, groups[c]...)
		if len(groups[c]) == 1 {
			tiny = true
		}
	}
	if tiny {
		res.Warnings = append(res.Warnings, circular.WarningTinyGroup)
	}

	med, _ := CircularMedian(pooled)
	res.MedianRad = circular.Float(med)
	res.Applicable = true

	bigN := len(pooled)
	bigM := 0
	sumRatio := 0.0
	for _, c := range conds {
		angles := groups[c]
		m := 0
		for _, a := range angles {
			if AngularDistance(a, med) < 0 {
				m++
			}
		}
		bigM += m
		sumRatio += float64(m) * float64(m) / float64(len(angles))
	}

	if bigM == 0 || bigM == bigN {
		// Every pooled angle sits on one side of the median, typically from
		// massive ties. The statistic degenerates; report no evidence against
		// the null instead of dividing by zero.
		res.Statistic = 0
		res.PValue = 1
		res.Warnings = append(res.Warnings, circular.WarningDegenerateMedian)
		return res
	}

	nf := float64(bigN)
	mf := float64(bigM)
	stat := nf*nf/(mf*(nf-mf))*sumRatio - nf*mf/(nf-mf)
	if stat < 0 {
		stat = 0
	}
	res.Statistic = circular.Float(stat)

	chi2 := distuv.ChiSquared{K: float64(k - 1)}
	p := 1 - chi2.CDF(stat)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	res.PValue = circular.Float(p)
	return res
}
