package api

import (
	"fmt"

	"gocirc/domain/circular"
)

// AnalyzeRequest is the request body for POST /v1/analyses. Angles arrive as
// pointers so a missing or null angle is caught at the boundary instead of
// silently decoding to zero degrees.
type AnalyzeRequest struct {
	Observations   []ObservationInput   `json:"observations"`
	DeclaredGroups []GroupInput         `json:"declared_groups,omitempty"`
	Params         *AnalysisParamsInput `json:"params,omitempty"`
}

// ObservationInput is a single row of the uploaded observation table.
type ObservationInput struct {
	Population string   `json:"population"`
	Condition  string   `json:"condition"`
	AngleDeg   *float64 `json:"angle_deg"`
}

// GroupInput declares a group that may carry zero observations.
type GroupInput struct {
	Population string `json:"population"`
	Condition  string `json:"condition"`
}

// AnalysisParamsInput overrides server defaults per request. Absent fields
// keep the configured default.
type AnalysisParamsInput struct {
	NSim     *int     `json:"n_sim,omitempty"`
	FDRLevel *float64 `json:"fdr_level,omitempty"`
	Alpha    *float64 `json:"alpha,omitempty"`
	Seed     *int64   `json:"seed,omitempty"`
	Workers  *int     `json:"workers,omitempty"`
}

// ToTable converts the request into a domain observation table.
func (r AnalyzeRequest) ToTable() (circular.Table, error) {
	table := circular.Table{
		Observations: make([]circular.Observation, 0, len(r.Observations)),
	}
	for i, o := range r.Observations {
		if o.AngleDeg == nil {
			return circular.Table{}, fmt.Errorf("observation %d: angle_deg is required", i)
		}
		table.Observations = append(table.Observations, circular.Observation{
			Population: circular.Population(o.Population),
			Condition:  circular.Condition(o.Condition),
			AngleDeg:   *o.AngleDeg,
		})
	}
	for _, g := range r.DeclaredGroups {
		table.DeclaredGroups = append(table.DeclaredGroups, circular.GroupKey{
			Population: circular.Population(g.Population),
			Condition:  circular.Condition(g.Condition),
		})
	}
	return table, nil
}

// ApplyTo merges request overrides onto the server's default parameters.
func (p *AnalysisParamsInput) ApplyTo(defaults circular.AnalysisParams) circular.AnalysisParams {
	if p == nil {
		return defaults
	}
	if p.NSim != nil {
		defaults.NSim = *p.NSim
	}
	if p.FDRLevel != nil {
		defaults.FDRLevel = *p.FDRLevel
	}
	if p.Alpha != nil {
		defaults.Alpha = *p.Alpha
	}
	if p.Seed != nil {
		defaults.Seed = *p.Seed
	}
	if p.Workers != nil {
		defaults.Workers = *p.Workers
	}
	return defaults
}

// ErrorResponse is the JSON error envelope returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
