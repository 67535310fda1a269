package circstat

import (
	"sort"
)

// BenjaminiHochberg applies the Benjamini-Hochberg FDR procedure to a family
// of p-values at level q. It returns monotone adjusted p-values and a
// significance flag per input, both in the original input order.
//
// Sorting is stable, so tied p-values keep their association with the original
// test identity. The significant set is every test at or below the largest
// rank i with p_(i) ≤ (i/m)·q; if no rank qualifies, nothing is significant.
func BenjaminiHochberg(pvals []float64, q float64) (adjusted []float64, significant []bool) {
	m := len(pvals)
	if m == 0 {
		return nil, nil
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return pvals[order[i]] < pvals[order[j]]
	})

	adjusted = make([]float64, m)
	significant = make([]bool, m)

	// Adjusted p-values: running minimum of p_(r)·m/r from the largest rank down.
	running := 1.0
	for r := m; r >= 1; r-- {
		v := pvals[order[r-1]] * float64(m) / float64(r)
		if v < running {
			running = v
		}
		adjusted[order[r-1]] = running
	}

	cutoff := 0
	for r := 1; r <= m; r++ {
		if pvals[order[r-1]] <= float64(r)/float64(m)*q {
			cutoff = r
		}
	}
	for r := 1; r <= cutoff; r++ {
		significant[order[r-1]] = true
	}
	return adjusted, significant
}
