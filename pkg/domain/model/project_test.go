package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAddEntry(t *testing.T) {
	p := &model.Project{LastActiveAt: day("2024-05-10")}

	p.AddEntry(model.LogEntry{ID: "e1", Date: day("2024-05-12"), Content: "newer"})
	gt.Array(t, p.History).Length(1)
	gt.Bool(t, p.LastActiveAt.Equal(day("2024-05-12"))).True()

	// A backdated entry is prepended but never rewinds LastActiveAt
	p.AddEntry(model.LogEntry{ID: "e2", Date: day("2024-05-01"), Content: "backdated"})
	gt.Array(t, p.History).Length(2)
	gt.Value(t, p.History[0].ID).Equal(types.LogID("e2"))
	gt.Bool(t, p.LastActiveAt.Equal(day("2024-05-12"))).True()

	// An entry dated exactly at LastActiveAt does not advance it
	p.AddEntry(model.LogEntry{ID: "e3", Date: day("2024-05-12"), Content: "same day"})
	gt.Bool(t, p.LastActiveAt.Equal(day("2024-05-12"))).True()
}

func TestSortHistory(t *testing.T) {
	p := &model.Project{
		History: []model.LogEntry{
			{ID: "a", Date: day("2024-05-01")},
			{ID: "b", Date: day("2024-05-20")},
			{ID: "c", Date: day("2024-05-20")},
			{ID: "d", Date: day("2024-05-10")},
		},
	}
	p.SortHistory()

	gt.Value(t, p.History[0].ID).Equal(types.LogID("b"))
	gt.Value(t, p.History[1].ID).Equal(types.LogID("c")) // equal dates keep order
	gt.Value(t, p.History[2].ID).Equal(types.LogID("d"))
	gt.Value(t, p.History[3].ID).Equal(types.LogID("a"))
}

func TestEntriesInRange(t *testing.T) {
	p := &model.Project{
		History: []model.LogEntry{
			{ID: "before", Date: day("2024-05-12")},
			{ID: "start", Date: day("2024-05-13")},
			{ID: "end", Date: day("2024-05-19")},
			{ID: "after", Date: day("2024-05-20")},
		},
	}

	entries := p.EntriesInRange(day("2024-05-13"), day("2024-05-19"))
	gt.Array(t, entries).Length(2)
	gt.Value(t, entries[0].ID).Equal(types.LogID("end"))
	gt.Value(t, entries[1].ID).Equal(types.LogID("start"))
}

func TestTogglePause(t *testing.T) {
	tests := []struct {
		name    string
		status  types.ProjectStatus
		want    types.ProjectStatus
		toggled bool
	}{
		{"in progress pauses", types.ProjectStatusInProgress, types.ProjectStatusPaused, true},
		{"paused resumes", types.ProjectStatusPaused, types.ProjectStatusInProgress, true},
		{"new is untouched", types.ProjectStatusNew, types.ProjectStatusNew, false},
		{"completed is untouched", types.ProjectStatusCompleted, types.ProjectStatusCompleted, false},
		{"archived is untouched", types.ProjectStatusArchived, types.ProjectStatusArchived, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.Project{Status: tt.status}
			gt.Value(t, p.TogglePause()).Equal(tt.toggled)
			gt.Value(t, p.Status).Equal(tt.want)
		})
	}
}

func TestParseTags(t *testing.T) {
	gt.Array(t, model.ParseTags("Big Data, Oracle->MySQL")).Equal([]string{"Big Data", "Oracle->MySQL"})
	gt.Array(t, model.ParseTags(" a ,, b ,")).Equal([]string{"a", "b"})
	gt.Value(t, model.ParseTags("")).Nil()
	gt.Value(t, model.ParseTags(" , ,")).Nil()
}

func TestAuthoredBy(t *testing.T) {
	u := &model.User{ID: "u1", Name: "Li Ming"}

	t.Run("prefers the ID reference", func(t *testing.T) {
		gt.Bool(t, model.LogEntry{AuthorID: "u1", Author: "someone else"}.AuthoredBy(u)).True()
		gt.Bool(t, model.LogEntry{AuthorID: "u2", Author: "Li Ming"}.AuthoredBy(u)).False()
	})

	t.Run("falls back to display name for legacy entries", func(t *testing.T) {
		gt.Bool(t, model.LogEntry{Author: "Li Ming"}.AuthoredBy(u)).True()
		gt.Bool(t, model.LogEntry{Author: "li ming"}.AuthoredBy(u)).False()
	})

	t.Run("nil user never matches", func(t *testing.T) {
		gt.Bool(t, model.LogEntry{AuthorID: "u1"}.AuthoredBy(nil)).False()
	})
}

func TestRecentHistory(t *testing.T) {
	p := &model.Project{
		History: []model.LogEntry{
			{ID: "old", Date: day("2024-01-01")},
			{ID: "new", Date: day("2024-05-01")},
			{ID: "mid", Date: day("2024-03-01")},
		},
	}

	entries := p.RecentHistory(2)
	gt.Array(t, entries).Length(2)
	gt.Value(t, entries[0].ID).Equal(types.LogID("new"))
	gt.Value(t, entries[1].ID).Equal(types.LogID("mid"))

	// Source order is untouched
	gt.Value(t, p.History[0].ID).Equal(types.LogID("old"))
}
