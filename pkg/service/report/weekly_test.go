package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/service/report"
)

func day(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildWeekly(t *testing.T) {
	start := day("2024-05-13")
	end := day("2024-05-19")

	t.Run("includes boundary dates and orders descending", func(t *testing.T) {
		project := &model.Project{
			ID:      types.NewProjectID(),
			Name:    "ERP Upgrade",
			Stage:   types.ProjectStageImplementation,
			Manager: "Zhao Lei",
			History: []model.LogEntry{
				{ID: types.NewLogID(), Date: day("2024-05-12"), Content: "before range"},
				{ID: types.NewLogID(), Date: day("2024-05-15"), Content: "midweek review"},
				{ID: types.NewLogID(), Date: day("2024-05-19"), Content: "weekly wrapup"},
				{ID: types.NewLogID(), Date: day("2024-05-20"), Content: "after range"},
			},
		}

		rows := report.BuildWeekly([]*model.Project{project}, start, end)
		gt.Array(t, rows).Length(1)
		gt.Value(t, rows[0].Work).Equal("[05-19] weekly wrapup; [05-15] midweek review")
		gt.Value(t, rows[0].ProjectName).Equal("ERP Upgrade")
		gt.Value(t, rows[0].Manager).Equal("Zhao Lei")
	})

	t.Run("omits projects without in-range entries", func(t *testing.T) {
		idle := &model.Project{
			ID:   types.NewProjectID(),
			Name: "Dormant",
			History: []model.LogEntry{
				{ID: types.NewLogID(), Date: day("2024-04-01"), Content: "old"},
			},
		}
		active := &model.Project{
			ID:   types.NewProjectID(),
			Name: "Active",
			History: []model.LogEntry{
				{ID: types.NewLogID(), Date: day("2024-05-14"), Content: "progress"},
			},
		}

		rows := report.BuildWeekly([]*model.Project{idle, active}, start, end)
		gt.Array(t, rows).Length(1)
		gt.Value(t, rows[0].ProjectName).Equal("Active")
	})
}

func TestRenderTSV(t *testing.T) {
	rows := []report.WeeklyRow{
		{ProjectName: "ERP Upgrade", Stage: "实施", Work: "[05-19] wrapup", Manager: "Zhao Lei"},
	}

	out := report.RenderTSV(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	gt.Array(t, lines).Length(2)
	gt.Value(t, lines[0]).Equal("项目名称\t项目阶段\t本周工作内容\t负责人")
	gt.Value(t, lines[1]).Equal("ERP Upgrade\t实施\t[05-19] wrapup\tZhao Lei")
}
