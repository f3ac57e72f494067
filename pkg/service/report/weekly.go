package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
)

// weeklyEntryLayout renders entry dates as month-day inside a row.
const weeklyEntryLayout = "01-02"

var weeklyHeader = []string{"项目名称", "项目阶段", "本周工作内容", "负责人"}

// WeeklyRow is one project's aggregated line in the weekly report.
type WeeklyRow struct {
	ProjectName string
	Stage       string
	Work        string
	Manager     string
}

// BuildWeekly aggregates each project's history entries within the
// inclusive [start, end] range into one row per project. Projects
// without any in-range entry are omitted. Entries are rendered newest
// first as "[MM-DD] content" joined with "; ".
func BuildWeekly(projects []*model.Project, start, end time.Time) []WeeklyRow {
	var rows []WeeklyRow
	for _, p := range projects {
		entries := p.EntriesInRange(start, end)
		if len(entries) == 0 {
			continue
		}

		parts := make([]string, 0, len(entries))
		for _, e := range entries {
			parts = append(parts, fmt.Sprintf("[%s] %s", e.Date.Format(weeklyEntryLayout), e.Content))
		}

		rows = append(rows, WeeklyRow{
			ProjectName: p.Name,
			Stage:       p.Stage.Label(),
			Work:        strings.Join(parts, "; "),
			Manager:     p.Manager,
		})
	}
	return rows
}

// RenderTSV renders rows as tab-separated text with a header line,
// ready for clipboard export into a spreadsheet.
func RenderTSV(rows []WeeklyRow) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(weeklyHeader, "\t"))
	sb.WriteByte('\n')

	for _, r := range rows {
		sb.WriteString(r.ProjectName)
		sb.WriteByte('\t')
		sb.WriteString(r.Stage)
		sb.WriteByte('\t')
		sb.WriteString(r.Work)
		sb.WriteByte('\t')
		sb.WriteString(r.Manager)
		sb.WriteByte('\n')
	}

	return sb.String()
}
