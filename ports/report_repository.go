package ports

import (
	"context"

	"gocirc/domain/circular"
	"gocirc/domain/core"
)

// ReportRepository persists completed analysis reports. Persistence is a
// collaborator concern; the engine itself never touches storage.
type ReportRepository interface {
	Save(ctx context.Context, report *circular.AnalysisReport) error
	GetByRunID(ctx context.Context, runID core.RunID) (*circular.AnalysisReport, error)
	ListRecent(ctx context.Context, limit int) ([]*circular.AnalysisReport, error)
}
