package ports

import (
	"context"

	"gocirc/domain/circular"
)

// Engine runs a full circular-statistics analysis over an observation table.
// Implementations are stateless and idempotent: the same table, params and
// seed reproduce the same report.
type Engine interface {
	Analyze(ctx context.Context, table circular.Table, params circular.AnalysisParams) (*circular.AnalysisReport, error)
}
