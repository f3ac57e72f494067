package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

// DateLayout is the day-granularity layout used for all project dates
const DateLayout = "2006-01-02"

// Attachment holds file metadata attached to a history entry.
// Only metadata is modeled; the binary payload lives outside this system.
type Attachment struct {
	ID   types.AttachmentID
	Name string
	Size string // display string, e.g. "2.4 MB"
	Type string // e.g. "pdf", "image", "code"
}

// LogEntry is a dated, authored record of project activity.
// AuthorID is the stable join key to a User; Author keeps the display
// name for legacy entries created before the ID reference existed.
type LogEntry struct {
	ID          types.LogID
	Date        time.Time
	AuthorID    types.UserID
	Author      string
	Content     string
	Category    types.LogCategory
	Attachments []Attachment
}

// FormatLine renders the entry as "[date] CATEGORY: content" for prompts
func (e LogEntry) FormatLine() string {
	return fmt.Sprintf("[%s] %s: %s", e.Date.Format(DateLayout), e.Category, e.Content)
}

// AuthoredBy reports whether the entry was written by the given user.
// It prefers the explicit AuthorID reference and falls back to an exact
// display-name match for entries without one.
func (e LogEntry) AuthoredBy(u *User) bool {
	if u == nil {
		return false
	}
	if e.AuthorID != "" {
		return e.AuthorID == u.ID
	}
	return e.Author == u.Name
}

// Project is a registered engagement in the dispatch pool
type Project struct {
	ID           types.ProjectID
	Code         string
	Name         string
	BusinessUnit string
	Manager      string
	ArchitectID  types.UserID // designated technical architect, optional
	CreatedAt    time.Time
	LastActiveAt time.Time
	Status       types.ProjectStatus
	Stage        types.ProjectStage
	Description  string
	Tags         []string
	History      []LogEntry // newest first
	AISummary    string     // context snapshot, regenerated on demand

	// Revision increments on every repository update. Generation results
	// captured against an older revision are discarded on write.
	Revision int64
}

// AddEntry prepends a history entry and advances LastActiveAt only when
// the entry date is strictly later than the current value.
func (p *Project) AddEntry(e LogEntry) {
	p.History = append([]LogEntry{e}, p.History...)
	if e.Date.After(p.LastActiveAt) {
		p.LastActiveAt = e.Date
	}
}

// SortHistory re-sorts the full history by date descending. Entries with
// equal dates keep their current relative order.
func (p *Project) SortHistory() {
	sort.SliceStable(p.History, func(i, j int) bool {
		return p.History[i].Date.After(p.History[j].Date)
	})
}

// RecentHistory returns up to n entries, most recent first
func (p *Project) RecentHistory(n int) []LogEntry {
	entries := make([]LogEntry, len(p.History))
	copy(entries, p.History)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// EntriesInRange returns history entries whose date falls within the
// inclusive [start, end] range, most recent first.
func (p *Project) EntriesInRange(start, end time.Time) []LogEntry {
	var entries []LogEntry
	for _, e := range p.History {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}

// TogglePause flips the status between PAUSED and IN_PROGRESS. Any other
// status is left unchanged and false is returned.
func (p *Project) TogglePause() bool {
	switch p.Status {
	case types.ProjectStatusPaused:
		p.Status = types.ProjectStatusInProgress
	case types.ProjectStatusInProgress:
		p.Status = types.ProjectStatusPaused
	default:
		return false
	}
	return true
}

// ParseTags splits a comma separated tag string, trimming whitespace and
// discarding empty items.
func ParseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}
