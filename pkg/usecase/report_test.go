package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
)

func TestWeeklyTSV(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)

	p, err := uc.Project.Register(ctx, usecase.RegisterProjectInput{
		Name:    "Marketing 2.0",
		Manager: "Zhang San",
	})
	gt.NoError(t, err)
	_, err = uc.Project.AppendLog(ctx, p.ID, usecase.AppendLogInput{
		Date:    day("2024-05-15"),
		Author:  "Zhang San",
		Content: "migration validated",
	})
	gt.NoError(t, err)

	out, err := uc.Report.WeeklyTSV(ctx, day("2024-05-13"), day("2024-05-19"))
	gt.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	gt.Array(t, lines).Length(2)
	gt.Value(t, lines[0]).Equal("项目名称\t项目阶段\t本周工作内容\t负责人")
	gt.String(t, lines[1]).Contains("Marketing 2.0")
	gt.String(t, lines[1]).Contains("[05-15] migration validated")
	gt.String(t, lines[1]).Contains("Zhang San")
}

func TestWeeklyIncludesUndatedEntry(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t, usecase.WithNow(func() time.Time {
		return day("2024-05-19").Add(14*time.Hour + 30*time.Minute)
	}))

	p, err := uc.Project.Register(ctx, usecase.RegisterProjectInput{
		Name:    "VPP Pilot",
		Manager: "Li Ming",
	})
	gt.NoError(t, err)

	// no date on the entry, so it falls back to today
	_, err = uc.Project.AppendLog(ctx, p.ID, usecase.AppendLogInput{
		Author:  "Li Ming",
		Content: "load test finished",
	})
	gt.NoError(t, err)

	rows, err := uc.Report.Weekly(ctx, day("2024-05-13"), day("2024-05-19"))
	gt.NoError(t, err)
	gt.Array(t, rows).Length(1)
	gt.String(t, rows[0].Work).Contains("[05-19] load test finished")
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)

	for _, name := range []string{"A", "B"} {
		p, err := uc.Project.Register(ctx, usecase.RegisterProjectInput{
			Name:         name,
			BusinessUnit: "Grid Dispatch",
		})
		gt.NoError(t, err)
		if name == "B" {
			_, err = uc.Project.SetStatus(ctx, p.ID, types.ProjectStatusInProgress)
			gt.NoError(t, err)
		}
	}

	stats, err := uc.Report.Stats(ctx)
	gt.NoError(t, err)
	gt.Value(t, stats.TotalProjects).Equal(2)
	gt.Value(t, stats.ByStatus[types.ProjectStatusNew]).Equal(1)
	gt.Value(t, stats.ByStatus[types.ProjectStatusInProgress]).Equal(1)
	gt.Value(t, stats.ByStage[types.ProjectStageOpportunity]).Equal(2)
	gt.Value(t, stats.ByUnit["Grid Dispatch"]).Equal(2)
}
