package staffing

import (
	"context"
	"sort"

	"github.com/m-mizutani/gollem"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
	"github.com/archops-lab/dispatchboard/pkg/utils/logging"
)

// Service ranks architect candidates for a project using structured
// LLM output combined with locally computed workload scores.
type Service struct {
	llm *llm.Client
}

func New(llmClient *llm.Client) *Service {
	return &Service{llm: llmClient}
}

func recommendationSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "ArchitectRecommendations",
		Description: "Ranked architect recommendations for a project",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"recommendations": {
				Type:     gollem.TypeArray,
				Required: true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"userId": {
							Type:        gollem.TypeString,
							Description: "ID of the recommended architect",
							Required:    true,
						},
						"totalScore": {
							Type:        gollem.TypeInteger,
							Description: "Overall fit score from 0 to 10",
							Required:    true,
						},
						"reason": {
							Type:        gollem.TypeString,
							Description: "Short justification for the recommendation",
							Required:    true,
						},
					},
				},
			},
		},
	}
}

// Recommend sends the prepared prompt to the LLM and merges the
// structured response with workloadByUser. Recommendation generation
// is best effort: any failure yields an empty list, never an error.
// Candidates the model names but workloadByUser does not know keep a
// workload score of zero.
func (s *Service) Recommend(ctx context.Context, prompt string, workloadByUser map[types.UserID]int) []*Recommendation {
	var resp llmResponse
	if err := s.llm.GenerateStructured(ctx, prompt, recommendationSchema(), &resp); err != nil {
		logging.From(ctx).Warn("failed to generate architect recommendations", "error", err)
		return []*Recommendation{}
	}

	recs := make([]*Recommendation, 0, len(resp.Recommendations))
	for _, r := range resp.Recommendations {
		userID := types.UserID(r.UserID)
		workload := workloadByUser[userID]

		recs = append(recs, &Recommendation{
			UserID:        userID,
			TotalScore:    r.TotalScore,
			Reason:        r.Reason,
			WorkloadScore: workload,
			AIScore:       r.TotalScore - workload,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].TotalScore > recs[j].TotalScore
	})

	return recs
}
