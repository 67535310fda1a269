package memory

import (
	"context"
	"sort"
	"sync"

	"gocirc/domain/circular"
	"gocirc/domain/core"
	"gocirc/ports"
)

// ReportRepository is an in-memory report store used when no database is
// configured, and by tests.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[core.RunID]*circular.AnalysisReport
}

// NewReportRepository creates an empty in-memory report store.
func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[core.RunID]*circular.AnalysisReport)}
}

// Save stores or replaces a report keyed by its run ID.
func (r *ReportRepository) Save(ctx context.Context, report *circular.AnalysisReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.RunID] = report
	return nil
}

// GetByRunID retrieves a stored report.
func (r *ReportRepository) GetByRunID(ctx context.Context, runID core.RunID) (*circular.AnalysisReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.reports[runID]
	if !ok {
		return nil, core.NewNotFoundError("report", runID.String())
	}
	return report, nil
}

// ListRecent returns the most recently created reports, newest first.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]*circular.AnalysisReport, error) {
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*circular.AnalysisReport, 0, len(r.reports))
	for _, report := range r.reports {
		all = append(all, report)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Time().After(all[j].CreatedAt.Time())
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

var _ ports.ReportRepository = (*ReportRepository)(nil)
