package persona

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
)

// Service synthesizes a work persona for a user from the history
// entries they authored across all projects.
type Service struct {
	llm *llm.Client
}

func New(llmClient *llm.Client) *Service {
	return &Service{llm: llmClient}
}

type personaResponse struct {
	Summary          string   `json:"summary"`
	Domains          []string `json:"domains"`
	WorkStyle        string   `json:"workStyle"`
	ImprovementAreas string   `json:"improvementAreas"`
}

func personaSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "UserPersona",
		Description: "Work persona synthesized from a user's project history",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"summary": {
				Type:        gollem.TypeString,
				Description: "Narrative summary of the user's past project support history",
				Required:    true,
			},
			"domains": {
				Type:        gollem.TypeArray,
				Description: "Project domains the user is strongest in",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeString,
				},
			},
			"workStyle": {
				Type:        gollem.TypeString,
				Description: "How the user prefers to work, inferred from their entries",
				Required:    true,
			},
			"improvementAreas": {
				Type:        gollem.TypeString,
				Description: "Capabilities the user should strengthen",
				Required:    true,
			},
		},
	}
}

// CollectAuthoredEntries gathers the log lines u wrote across
// projects, tagged with the project name, newest first within each
// project.
func CollectAuthoredEntries(projects []*model.Project, u *model.User) []string {
	var lines []string
	for _, p := range projects {
		for _, e := range p.History {
			if e.AuthoredBy(u) {
				lines = append(lines, p.Name+" "+e.FormatLine())
			}
		}
	}
	return lines
}

// Generate builds a persona for u from the given prompt template. It
// returns (nil, nil) when the user has authored no history entries:
// there is nothing to synthesize from, and that is not an error.
func (s *Service) Generate(ctx context.Context, tmpl, workflowContext string, u *model.User, projects []*model.Project) (*model.Persona, error) {
	lines := CollectAuthoredEntries(projects, u)
	if len(lines) == 0 {
		return nil, nil
	}

	prompt := llm.Interpolate(tmpl, map[string]string{
		"name":            u.Name,
		"title":           u.Title,
		"workflowContext": workflowContext,
		"history":         strings.Join(lines, "\n"),
	})

	var resp personaResponse
	if err := s.llm.GenerateStructured(ctx, prompt, personaSchema(), &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to generate persona", goerr.V("userID", u.ID))
	}

	return &model.Persona{
		Summary:          resp.Summary,
		Domains:          resp.Domains,
		WorkStyle:        resp.WorkStyle,
		ImprovementAreas: resp.ImprovementAreas,
	}, nil
}

// Stale reports whether the persona for u should be regenerated: no
// persona yet, or older than maxAge.
func Stale(u *model.User, now time.Time, maxAge time.Duration) bool {
	if u.Persona == nil {
		return true
	}
	return now.Sub(u.PersonaUpdatedAt) > maxAge
}
