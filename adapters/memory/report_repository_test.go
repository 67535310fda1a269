package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocirc/domain/circular"
	"gocirc/domain/core"
)

func reportAt(t time.Time) *circular.AnalysisReport {
	return &circular.AnalysisReport{
		RunID:     core.NewRunID(),
		CreatedAt: core.NewTimestamp(t),
	}
}

func TestReportRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository()

	report := reportAt(time.Now())
	require.NoError(t, repo.Save(ctx, report))

	got, err := repo.GetByRunID(ctx, report.RunID)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, got.RunID)
}

func TestReportRepository_GetMissing(t *testing.T) {
	repo := NewReportRepository()
	_, err := repo.GetByRunID(context.Background(), core.RunID("missing"))
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
}

func TestReportRepository_ListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository()

	base := time.Now()
	oldest := reportAt(base.Add(-2 * time.Hour))
	middle := reportAt(base.Add(-1 * time.Hour))
	newest := reportAt(base)
	for _, r := range []*circular.AnalysisReport{oldest, middle, newest} {
		require.NoError(t, repo.Save(ctx, r))
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newest.RunID, got[0].RunID)
	assert.Equal(t, middle.RunID, got[1].RunID)
}
