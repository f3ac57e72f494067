package types

import "fmt"

// ProjectStage represents where a project sits in the delivery lifecycle
type ProjectStage string

const (
	ProjectStageOpportunity    ProjectStage = "OPPORTUNITY"
	ProjectStageBlueprint      ProjectStage = "BLUEPRINT"
	ProjectStageBidding        ProjectStage = "BIDDING"
	ProjectStageImplementation ProjectStage = "IMPLEMENTATION"
	ProjectStageMaintenance    ProjectStage = "MAINTENANCE"
)

// AllProjectStages returns all valid project stages
func AllProjectStages() []ProjectStage {
	return []ProjectStage{
		ProjectStageOpportunity,
		ProjectStageBlueprint,
		ProjectStageBidding,
		ProjectStageImplementation,
		ProjectStageMaintenance,
	}
}

// IsValid checks if the project stage is valid
func (s ProjectStage) IsValid() bool {
	switch s {
	case ProjectStageOpportunity,
		ProjectStageBlueprint,
		ProjectStageBidding,
		ProjectStageImplementation,
		ProjectStageMaintenance:
		return true
	default:
		return false
	}
}

// Label returns the human readable stage name used in reports
func (s ProjectStage) Label() string {
	switch s {
	case ProjectStageOpportunity:
		return "Opportunity/Presales"
	case ProjectStageBlueprint:
		return "Blueprint Design"
	case ProjectStageBidding:
		return "Bidding/Tender"
	case ProjectStageImplementation:
		return "Implementation/Delivery"
	case ProjectStageMaintenance:
		return "Maintenance/Optimization"
	default:
		return string(s)
	}
}

// String returns the string representation of the project stage
func (s ProjectStage) String() string {
	return string(s)
}

// ParseProjectStage parses a string into a ProjectStage
func ParseProjectStage(s string) (ProjectStage, error) {
	stage := ProjectStage(s)
	if !stage.IsValid() {
		return "", fmt.Errorf("invalid project stage: %s", s)
	}
	return stage, nil
}
