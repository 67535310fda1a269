package circstat

import (
	"testing"

	"gocirc/domain/circular"
)

func degGroup(degrees ...float64) []float64 {
	out := make([]float64, len(degrees))
	for i, d := range degrees {
		out[i] = DegToRad(d)
	}
	return out
}

func TestCommonMedianTest_NotEnoughGroups(t *testing.T) {
	groups := map[circular.Condition][]float64{
		"wt":    degGroup(10, 20, 30),
		"empty": {},
	}
	res := CommonMedianTest("dapi", groups)

	if res.Applicable {
		t.Error("one populated group must not be applicable")
	}
	if res.GroupCount != 1 {
		t.Errorf("GroupCount = %d, want 1", res.GroupCount)
	}
	if !hasWarning(res.Warnings, circular.WarningNotEnoughGroups) {
		t.Errorf("warnings = %v, want NOT_ENOUGH_GROUPS", res.Warnings)
	}
	if res.PValue.IsDefined() {
		t.Error("inapplicable test must carry NaN p-value")
	}
}

func TestCommonMedianTest_IdenticalGroups(t *testing.T) {
	groups := map[circular.Condition][]float64{
		"wt": degGroup(10, 20, 30, 40, 50),
		"ko": degGroup(10, 20, 30, 40, 50),
	}
	res := CommonMedianTest("dapi", groups)

	if !res.Applicable {
		t.Fatal("two populated groups must be applicable")
	}
	if !approxEqual(float64(res.Statistic), 0, 1e-9) {
		t.Errorf("Statistic = %v, want 0 for identical groups", res.Statistic)
	}
	if !approxEqual(float64(res.PValue), 1, 1e-9) {
		t.Errorf("PValue = %v, want 1", res.PValue)
	}
}

func TestCommonMedianTest_SeparatedClusters(t *testing.T) {
	groups := map[circular.Condition][]float64{
		"wt": degGroup(0, 5, 10, 15, 20),
		"ko": degGroup(180, 185, 190, 195),
	}
	res := CommonMedianTest("dapi", groups)

	if !res.Applicable {
		t.Fatal("test must be applicable")
	}
	if float64(res.Statistic) <= 0 {
		t.Errorf("Statistic = %v, want positive for separated clusters", res.Statistic)
	}
	if p := float64(res.PValue); p >= 0.05 {
		t.Errorf("PValue = %v, want < 0.05 for antipodal clusters", p)
	}
}

func TestCommonMedianTest_DegenerateTies(t *testing.T) {
	groups := map[circular.Condition][]float64{
		"wt": degGroup(90, 90, 90),
		"ko": degGroup(90, 90),
	}
	res := CommonMedianTest("dapi", groups)

	if !res.Applicable {
		t.Fatal("test must be applicable")
	}
	if !approxEqual(float64(res.Statistic), 0, 1e-12) {
		t.Errorf("Statistic = %v, want 0", res.Statistic)
	}
	if !approxEqual(float64(res.PValue), 1, 1e-12) {
		t.Errorf("PValue = %v, want 1", res.PValue)
	}
	if !hasWarning(res.Warnings, circular.WarningDegenerateMedian) {
		t.Errorf("warnings = %v, want DEGENERATE_MEDIAN", res.Warnings)
	}
}

func TestCommonMedianTest_TinyGroupWarning(t *testing.T) {
	groups := map[circular.Condition][]float64{
		"wt": degGroup(10, 20, 30),
		"ko": degGroup(200),
	}
	res := CommonMedianTest("dapi", groups)

	if !res.Applicable {
		t.Fatal("a single observation still participates")
	}
	if !hasWarning(res.Warnings, circular.WarningTinyGroup) {
		t.Errorf("warnings = %v, want TINY_GROUP", res.Warnings)
	}
}
