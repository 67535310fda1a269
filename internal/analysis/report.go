package analysis

import (
	"gocirc/domain/circular"
)

// assembleReport joins per-group descriptives, the common-median result and
// the FDR-annotated pairwise set into one population report. Pure
// composition: no statistic is recomputed here. A pairwise result referencing
// a group absent from the descriptive set indicates an upstream inconsistency
// and is flagged on the report rather than silently dropped.
func assembleReport(pop circular.Population, groups []circular.DescriptiveStats, commonMedian circular.CommonMedianResult, pairwise []circular.PairwiseResult) circular.PopulationReport {
	report := circular.PopulationReport{
		Population:   pop,
		Groups:       groups,
		CommonMedian: commonMedian,
		Pairwise:     pairwise,
	}

	described := make(map[circular.Condition]bool, len(groups))
	for _, g := range groups {
		described[g.Group.Condition] = true
	}
	flagged := false
	for i := range pairwise {
		if !described[pairwise[i].ConditionA] || !described[pairwise[i].ConditionB] {
			pairwise[i].Warnings = append(pairwise[i].Warnings, circular.WarningGroupNotDescribed)
			flagged = true
		}
	}
	if flagged {
		report.Warnings = append(report.Warnings, circular.WarningGroupNotDescribed)
	}
	return report
}
