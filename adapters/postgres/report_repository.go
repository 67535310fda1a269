package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gocirc/domain/circular"
	"gocirc/domain/core"
	"gocirc/ports"
)

// ReportRepositoryImpl implements ReportRepository for PostgreSQL. Completed
// analysis reports are stored whole as JSONB; the engine never sees this
// layer.
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sqlx.DB) *ReportRepositoryImpl {
	return &ReportRepositoryImpl{db: db}
}

// EnsureSchema creates the backing table if it does not exist.
func (r *ReportRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_reports (
			run_id       TEXT PRIMARY KEY,
			observations INT NOT NULL,
			n_sim        INT NOT NULL,
			seed         BIGINT NOT NULL,
			report       JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// Save upserts a completed analysis report.
func (r *ReportRepositoryImpl) Save(ctx context.Context, report *circular.AnalysisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", report.RunID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analysis_reports (run_id, observations, n_sim, seed, report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id) DO UPDATE SET
			observations = EXCLUDED.observations,
			n_sim = EXCLUDED.n_sim,
			seed = EXCLUDED.seed,
			report = EXCLUDED.report`,
		report.RunID.String(), report.Observations, report.Params.NSim,
		report.Params.Seed, payload, report.CreatedAt.Time())
	return err
}

// GetByRunID retrieves a report by its run identifier.
func (r *ReportRepositoryImpl) GetByRunID(ctx context.Context, runID core.RunID) (*circular.AnalysisReport, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT report FROM analysis_reports WHERE run_id = $1`, runID.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("report", runID.String())
	}
	if err != nil {
		return nil, err
	}

	var report circular.AnalysisReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", runID, err)
	}
	return &report, nil
}

// ListRecent returns the most recently created reports.
func (r *ReportRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*circular.AnalysisReport, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT report FROM analysis_reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*circular.AnalysisReport
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var report circular.AnalysisReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, err
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}

var _ ports.ReportRepository = (*ReportRepositoryImpl)(nil)
