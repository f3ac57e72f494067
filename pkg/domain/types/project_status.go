package types

import "fmt"

// ProjectStatus represents the dispatch status of a project
type ProjectStatus string

const (
	ProjectStatusNew        ProjectStatus = "NEW"
	ProjectStatusAssigned   ProjectStatus = "ASSIGNED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	// ProjectStatusPaused marks intermittent projects waiting on the client side
	ProjectStatusPaused    ProjectStatus = "PAUSED"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

// AllProjectStatuses returns all valid project statuses
func AllProjectStatuses() []ProjectStatus {
	return []ProjectStatus{
		ProjectStatusNew,
		ProjectStatusAssigned,
		ProjectStatusInProgress,
		ProjectStatusPaused,
		ProjectStatusCompleted,
		ProjectStatusArchived,
	}
}

// IsValid checks if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusNew,
		ProjectStatusAssigned,
		ProjectStatusInProgress,
		ProjectStatusPaused,
		ProjectStatusCompleted,
		ProjectStatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation of the project status
func (s ProjectStatus) String() string {
	return string(s)
}

// ParseProjectStatus parses a string into a ProjectStatus
func ParseProjectStatus(s string) (ProjectStatus, error) {
	status := ProjectStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid project status: %s", s)
	}
	return status, nil
}
