package staffing

import "github.com/archops-lab/dispatchboard/pkg/domain/types"

// Recommendation is a ranked staffing suggestion for one architect.
type Recommendation struct {
	UserID        types.UserID `json:"userId"`
	TotalScore    int          `json:"totalScore"`
	Reason        string       `json:"reason"`
	WorkloadScore int          `json:"workloadScore"`
	AIScore       int          `json:"aiScore"`
}

type llmRecommendation struct {
	UserID     string `json:"userId"`
	TotalScore int    `json:"totalScore"`
	Reason     string `json:"reason"`
}

type llmResponse struct {
	Recommendations []llmRecommendation `json:"recommendations"`
}
