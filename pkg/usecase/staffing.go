package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
	"github.com/archops-lab/dispatchboard/pkg/service/staffing"
)

type StaffingUseCase struct {
	repo      interfaces.Repository
	staffing  *staffing.Service
	llm       *llm.Client
	templates *TemplateUseCase
	now       func() time.Time
}

func NewStaffingUseCase(repo interfaces.Repository, staffingSvc *staffing.Service, llmClient *llm.Client, templates *TemplateUseCase, now func() time.Time) *StaffingUseCase {
	return &StaffingUseCase{
		repo:      repo,
		staffing:  staffingSvc,
		llm:       llmClient,
		templates: templates,
		now:       now,
	}
}

// Recommend ranks architect-eligible users for the given project. An
// empty result means no recommendation is available, not that zero
// candidates are suitable.
func (uc *StaffingUseCase) Recommend(ctx context.Context, projectID types.ProjectID) ([]*staffing.Recommendation, error) {
	if !uc.llm.Enabled() {
		return []*staffing.Recommendation{}, nil
	}

	project, err := uc.repo.Project().Get(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project for recommendation", goerr.V("projectID", projectID))
	}

	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users for recommendation")
	}

	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects for workload")
	}

	now := uc.now()
	workloads := make(map[types.UserID]int)
	var blocks []string
	for _, u := range users {
		if u.Role != types.UserRoleArchitect {
			continue
		}

		score := staffing.WorkloadScore(staffing.CountRecentEntries(projects, u, now))
		workloads[u.ID] = score
		blocks = append(blocks, candidateBlock(u, score))
	}
	if len(blocks) == 0 {
		return []*staffing.Recommendation{}, nil
	}

	tmpl, err := uc.templates.Active(ctx, types.TemplateKeyArchitectRecommendation)
	if err != nil {
		return nil, err
	}

	prompt := llm.Interpolate(tmpl.Template, map[string]string{
		"projectName":        project.Name,
		"projectDescription": project.Description,
		"candidates":         strings.Join(blocks, "\n\n"),
	})

	return uc.staffing.Recommend(ctx, prompt, workloads), nil
}

func candidateBlock(u *model.User, workloadScore int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- id: %s\n  name: %s\n  title: %s\n  workloadScore: %d\n", u.ID, u.Name, u.Title, workloadScore)
	if u.Persona == nil {
		sb.WriteString("  persona: no persona data")
		return sb.String()
	}
	fmt.Fprintf(&sb, "  persona: %s\n  domains: %s", u.Persona.Summary, strings.Join(u.Persona.Domains, ", "))
	return sb.String()
}
