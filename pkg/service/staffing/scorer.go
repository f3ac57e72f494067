package staffing

import (
	"time"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
)

// RecentActivityWindow is how far back log entries count toward an
// architect's workload.
const RecentActivityWindow = 10 * 24 * time.Hour

// CountRecentEntries counts history entries authored by u across
// projects whose date falls within the recent activity window ending
// at now.
func CountRecentEntries(projects []*model.Project, u *model.User, now time.Time) int {
	cutoff := now.Add(-RecentActivityWindow)

	var count int
	for _, p := range projects {
		for _, e := range p.History {
			if e.Date.Before(cutoff) {
				continue
			}
			if e.AuthoredBy(u) {
				count++
			}
		}
	}

	return count
}

// WorkloadScore maps a recent entry count to an availability score.
// Fewer entries means more capacity: 0-1 entries scores 3, 2-4 scores
// 2, and 5 or more scores 1.
func WorkloadScore(recentEntries int) int {
	switch {
	case recentEntries <= 1:
		return 3
	case recentEntries <= 4:
		return 2
	default:
		return 1
	}
}
