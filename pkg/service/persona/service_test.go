package persona_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
	"github.com/archops-lab/dispatchboard/pkg/service/persona"
)

type mockLLMSession struct {
	response string
}

var (
	_ gollem.Session   = (*mockLLMSession)(nil)
	_ gollem.LLMClient = (*mockLLMClient)(nil)
)

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return &gollem.Response{Texts: []string{s.response}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, options ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, options ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) History() (*gollem.History, error) { return nil, nil }

func (s *mockLLMSession) AppendHistory(*gollem.History) error { return nil }

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLMClient struct {
	response string
	sessions int
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	c.sessions++
	return &mockLLMSession{response: c.response}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	user := &model.User{
		ID:    types.NewUserID(),
		Name:  "Chen Jie",
		Title: "Senior Architect",
	}

	t.Run("skips users with no authored entries", func(t *testing.T) {
		mock := &mockLLMClient{}
		svc := persona.New(llm.New(mock))

		p, err := svc.Generate(ctx, "{{name}}: {{history}}", "dept context", user, []*model.Project{
			{
				ID:   types.NewProjectID(),
				Name: "Orion",
				History: []model.LogEntry{
					{
						ID:       types.NewLogID(),
						Date:     time.Now(),
						Author:   "Someone Else",
						Content:  "kickoff",
						Category: types.LogCategoryMeeting,
					},
				},
			},
		})
		gt.NoError(t, err)
		gt.Value(t, p).Nil()
		gt.Value(t, mock.sessions).Equal(0)
	})

	t.Run("builds persona from authored entries", func(t *testing.T) {
		mock := &mockLLMClient{
			response: `{"summary":"Veteran of ERP rollouts","domains":["ERP","Finance"],"workStyle":"Hands-on","improvementAreas":"Cloud-native design"}`,
		}
		svc := persona.New(llm.New(mock))

		p, err := svc.Generate(ctx, "{{name}}: {{history}}", "dept context", user, []*model.Project{
			{
				ID:   types.NewProjectID(),
				Name: "Orion",
				History: []model.LogEntry{
					{
						ID:       types.NewLogID(),
						Date:     time.Now(),
						AuthorID: user.ID,
						Content:  "designed integration layer",
						Category: types.LogCategoryDeliverable,
					},
				},
			},
		})
		gt.NoError(t, err)
		gt.Value(t, p).NotNil()
		gt.Value(t, p.Summary).Equal("Veteran of ERP rollouts")
		gt.Array(t, p.Domains).Length(2)
		gt.Value(t, p.WorkStyle).Equal("Hands-on")
		gt.Value(t, mock.sessions).Equal(1)
	})
}

func TestStale(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	maxAge := 7 * 24 * time.Hour

	gt.Bool(t, persona.Stale(&model.User{}, now, maxAge)).True()

	fresh := &model.User{
		Persona:          &model.Persona{Summary: "x"},
		PersonaUpdatedAt: now.Add(-time.Hour),
	}
	gt.Bool(t, persona.Stale(fresh, now, maxAge)).False()

	old := &model.User{
		Persona:          &model.Persona{Summary: "x"},
		PersonaUpdatedAt: now.Add(-8 * 24 * time.Hour),
	}
	gt.Bool(t, persona.Stale(old, now, maxAge)).True()
}
