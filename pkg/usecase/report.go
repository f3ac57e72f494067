package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/service/report"
)

type ReportUseCase struct {
	repo interfaces.Repository
}

func NewReportUseCase(repo interfaces.Repository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// DashboardStats is a snapshot of the dispatch pool for the landing view.
type DashboardStats struct {
	TotalProjects int
	ByStatus      map[types.ProjectStatus]int
	ByStage       map[types.ProjectStage]int
	ByUnit        map[string]int
}

// Stats aggregates pool-wide counts.
func (uc *ReportUseCase) Stats(ctx context.Context) (*DashboardStats, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects for stats")
	}

	stats := &DashboardStats{
		TotalProjects: len(projects),
		ByStatus:      make(map[types.ProjectStatus]int),
		ByStage:       make(map[types.ProjectStage]int),
		ByUnit:        make(map[string]int),
	}
	for _, p := range projects {
		stats.ByStatus[p.Status]++
		stats.ByStage[p.Stage]++
		if p.BusinessUnit != "" {
			stats.ByUnit[p.BusinessUnit]++
		}
	}
	return stats, nil
}

// Weekly aggregates one row per project with activity in the
// inclusive [start, end] range.
func (uc *ReportUseCase) Weekly(ctx context.Context, start, end time.Time) ([]report.WeeklyRow, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects for weekly report")
	}
	return report.BuildWeekly(projects, start, end), nil
}

// WeeklyTSV renders the weekly report as tab-separated text for
// clipboard export.
func (uc *ReportUseCase) WeeklyTSV(ctx context.Context, start, end time.Time) (string, error) {
	rows, err := uc.Weekly(ctx, start, end)
	if err != nil {
		return "", err
	}
	return report.RenderTSV(rows), nil
}
