package circular

import (
	"fmt"
	"math"

	"gocirc/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES
// ============================================================================

// Population identifies a cell population or imaging channel. All statistical
// comparisons happen between condition groups inside one population.
type Population string

// Condition identifies an experimental condition group (e.g. a genotype).
type Condition string

// GroupKey uniquely identifies a group of observations. Membership is
// determined solely by key equality.
type GroupKey struct {
	Population Population `json:"population"`
	Condition  Condition  `json:"condition"`
}

func (k GroupKey) String() string {
	return fmt.Sprintf("%s/%s", k.Population, k.Condition)
}

// Observation is a single per-cell orientation measurement. AngleDeg must lie
// in [0, 360); conversion to radians happens inside the engine.
type Observation struct {
	Population Population `json:"population"`
	Condition  Condition  `json:"condition"`
	AngleDeg   float64    `json:"angle_deg"`
}

// Key returns the group key of the observation.
func (o Observation) Key() GroupKey {
	return GroupKey{Population: o.Population, Condition: o.Condition}
}

// Table is the flat input table for one analysis run. DeclaredGroups lets a
// caller register groups that may have zero observations so they still appear
// in the report as "undefined" rather than silently vanishing.
type Table struct {
	Observations   []Observation `json:"observations"`
	DeclaredGroups []GroupKey    `json:"declared_groups,omitempty"`
}

// Validate checks every observation before any statistic is computed. A single
// malformed row fails the whole table: coercing bad data would corrupt every
// downstream result.
func (t Table) Validate() error {
	for i, o := range t.Observations {
		if o.Population == "" || o.Condition == "" {
			return core.NewObservationError(i, core.ErrMissingGroupKey)
		}
		if math.IsNaN(o.AngleDeg) || math.IsInf(o.AngleDeg, 0) {
			return core.NewObservationError(i, core.ErrNonFiniteAngle)
		}
		if o.AngleDeg < 0 || o.AngleDeg >= 360 {
			return core.NewObservationError(i,
				fmt.Errorf("%w: got %v", core.ErrAngleOutOfRange, o.AngleDeg))
		}
	}
	for i, g := range t.DeclaredGroups {
		if g.Population == "" || g.Condition == "" {
			return fmt.Errorf("declared group %d: %w", i, core.ErrMissingGroupKey)
		}
	}
	return nil
}

// AnalysisParams is the engine configuration surface. Zero values are filled
// in by Normalize.
type AnalysisParams struct {
	NSim     int     `json:"n_sim"`     // permutation count (default 1000)
	FDRLevel float64 `json:"fdr_level"` // Benjamini-Hochberg q (default 0.05)
	Alpha    float64 `json:"alpha"`     // reporting significance threshold (default 0.05)
	Seed     int64   `json:"seed"`      // base seed for all RNG streams
	Workers  int     `json:"workers"`   // permutation worker pool size (default 4)
}

// Normalize fills defaults and clamps obviously broken values.
func (p AnalysisParams) Normalize() AnalysisParams {
	if p.NSim <= 0 {
		p.NSim = 1000
	}
	if p.FDRLevel <= 0 || p.FDRLevel >= 1 {
		p.FDRLevel = 0.05
	}
	if p.Alpha <= 0 || p.Alpha >= 1 {
		p.Alpha = 0.05
	}
	if p.Workers <= 0 {
		p.Workers = 4
	}
	return p
}

// ============================================================================
// WARNINGS
// ============================================================================

// WarningCode represents structured warning types carried on results.
type WarningCode string

const (
	WarningEmptyGroup        WarningCode = "EMPTY_GROUP"          // group has no observations
	WarningUndefinedCI       WarningCode = "UNDEFINED_CI"         // R = 0, mean-direction CI has no standard error
	WarningLowResolution     WarningCode = "LOW_RESOLUTION"       // nSim too small for the requested alpha
	WarningPBelowResolution  WarningCode = "P_BELOW_RESOLUTION"   // no permutation reached the observed statistic
	WarningDegenerateMedian  WarningCode = "DEGENERATE_MEDIAN"    // all pooled angles on one side of the common median
	WarningGroupNotDescribed WarningCode = "GROUP_NOT_DESCRIBED"  // pairwise result references a group with no descriptives
	WarningNotEnoughGroups   WarningCode = "NOT_ENOUGH_GROUPS"    // fewer than two groups with data
	WarningTinyGroup         WarningCode = "TINY_GROUP"           // a group entered a test with n = 1
	WarningTestFailed        WarningCode = "TEST_FAILED"          // a pairwise test errored and was skipped
)

// ============================================================================
// RESULTS
// ============================================================================

// DescriptiveStats holds circular descriptive statistics for one group.
// Defined is false when the group is empty; the numeric fields are then NaN
// and serialise as null.
type DescriptiveStats struct {
	Group            GroupKey      `json:"group"`
	N                int           `json:"n"`
	MeanDeg          Float         `json:"mean_deg"`          // in [0, 360)
	ResultantLength  Float         `json:"resultant_length"`  // R in [0, 1]
	CircularVariance Float         `json:"circular_variance"` // 1 - R
	RayleighP        Float         `json:"rayleigh_p"`
	MeanCILowerDeg   Float         `json:"mean_ci_lower_deg"`
	MeanCIUpperDeg   Float         `json:"mean_ci_upper_deg"`
	CIDefined        bool          `json:"ci_defined"`
	Defined          bool          `json:"defined"`
	Warnings         []WarningCode `json:"warnings,omitempty"`
}

// UndefinedStats returns the sentinel descriptives for an empty group.
func UndefinedStats(group GroupKey) DescriptiveStats {
	nan := Float(math.NaN())
	return DescriptiveStats{
		Group:            group,
		N:                0,
		MeanDeg:          nan,
		ResultantLength:  nan,
		CircularVariance: nan,
		RayleighP:        nan,
		MeanCILowerDeg:   nan,
		MeanCIUpperDeg:   nan,
		CIDefined:        false,
		Defined:          false,
		Warnings:         []WarningCode{WarningEmptyGroup},
	}
}

// CommonMedianResult is the outcome of the common-median test across all
// condition groups of one population. Applicable is false when fewer than two
// groups carried data.
type CommonMedianResult struct {
	Population Population    `json:"population"`
	Statistic  Float         `json:"statistic"`
	MedianRad  Float         `json:"median_rad"`
	PValue     Float         `json:"p_value"`
	GroupCount int           `json:"group_count"`
	Applicable bool          `json:"applicable"`
	Warnings   []WarningCode `json:"warnings,omitempty"`
}

// NullSummary describes the Monte-Carlo null distribution of a permutation
// test, for diagnostics and plotting by collaborators.
type NullSummary struct {
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile95 float64 `json:"percentile_95"`
	Percentile99 float64 `json:"percentile_99"`
}

// PairwiseResult is the Kuiper permutation test between two condition groups
// of the same population. PAdjusted and Significant are populated only after
// FDR correction ran over the whole pairwise family (Adjusted = true).
type PairwiseResult struct {
	Population       Population    `json:"population"`
	ConditionA       Condition     `json:"condition_a"`
	ConditionB       Condition     `json:"condition_b"`
	NA               int           `json:"n_a"`
	NB               int           `json:"n_b"`
	Statistic        float64       `json:"statistic"` // observed Kuiper V
	PRaw             float64       `json:"p_raw"`
	PBelowResolution bool          `json:"p_below_resolution"` // PRaw is the bound 1/nSim, not an estimate
	PAdjusted        float64       `json:"p_adjusted"`
	Significant      bool          `json:"significant"`
	Adjusted         bool          `json:"adjusted"`
	NumPermutations  int           `json:"num_permutations"`
	Null             NullSummary   `json:"null"`
	Skipped          bool          `json:"skipped"`
	SkipReason       WarningCode   `json:"skip_reason,omitempty"`
	Warnings         []WarningCode `json:"warnings,omitempty"`
}

// PairKey returns a stable identity for the unordered condition pair.
func (r PairwiseResult) PairKey() string {
	a, b := r.ConditionA, r.ConditionB
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s|%s|%s", r.Population, a, b)
}

// PopulationReport joins everything the engine computed for one population.
type PopulationReport struct {
	Population   Population         `json:"population"`
	Groups       []DescriptiveStats `json:"groups"`
	CommonMedian CommonMedianResult `json:"common_median"`
	Pairwise     []PairwiseResult   `json:"pairwise"`
	Warnings     []WarningCode      `json:"warnings,omitempty"`
}

// AnalysisReport is the full output of one engine invocation.
type AnalysisReport struct {
	RunID        core.RunID         `json:"run_id"`
	Params       AnalysisParams     `json:"params"`
	Observations int                `json:"observations"`
	Populations  []PopulationReport `json:"populations"`
	CreatedAt    core.Timestamp     `json:"created_at"`
}
