package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/repository/memory"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
)

func TestRecommendArchitects(t *testing.T) {
	ctx := context.Background()

	t.Run("empty without credential and no provider call", func(t *testing.T) {
		repo := memory.New()
		mock := &mockLLMClient{response: "unused"}
		uc := usecase.New(repo)
		gt.NoError(t, uc.Template.EnsureDefaults(ctx))

		p, err := uc.Project.Register(ctx, usecase.RegisterProjectInput{Name: "New Build"})
		gt.NoError(t, err)

		recs, err := uc.Staffing.Recommend(ctx, p.ID)
		gt.NoError(t, err)
		gt.Array(t, recs).Length(0)
		gt.Value(t, mock.callCount()).Equal(0)
	})

	t.Run("ranks architect candidates with workload breakdown", func(t *testing.T) {
		repo := memory.New()

		a := seedUser(t, repo, "arch-a", types.UserRoleArchitect)
		b := seedUser(t, repo, "arch-b", types.UserRoleArchitect)
		seedUser(t, repo, "mgr", types.UserRoleManager)

		mock := &mockLLMClient{
			response: fmt.Sprintf(
				`{"recommendations":[{"userId":%q,"totalScore":8,"reason":"domain fit"},{"userId":%q,"totalScore":5,"reason":"busy"}]}`,
				a.ID, b.ID),
		}
		uc := usecase.New(repo, usecase.WithLLM(llm.New(mock)))
		gt.NoError(t, uc.Template.EnsureDefaults(ctx))

		p, err := uc.Project.Register(ctx, usecase.RegisterProjectInput{Name: "AMI Rollout"})
		gt.NoError(t, err)

		recs, err := uc.Staffing.Recommend(ctx, p.ID)
		gt.NoError(t, err)
		gt.Array(t, recs).Length(2)
		gt.Value(t, recs[0].UserID).Equal(a.ID)
		gt.Value(t, recs[0].TotalScore).Equal(8)

		// both architects have no recent entries, so workload score is 3
		gt.Value(t, recs[0].WorkloadScore).Equal(3)
		gt.Value(t, recs[0].AIScore).Equal(5)
		gt.Value(t, recs[1].WorkloadScore).Equal(3)
		gt.Value(t, recs[1].AIScore).Equal(2)
	})

	t.Run("empty with no architect candidates", func(t *testing.T) {
		repo := memory.New()
		seedUser(t, repo, "mgr", types.UserRoleManager)

		mock := &mockLLMClient{response: "unused"}
		uc := usecase.New(repo, usecase.WithLLM(llm.New(mock)))
		gt.NoError(t, uc.Template.EnsureDefaults(ctx))

		p, err := uc.Project.Register(ctx, usecase.RegisterProjectInput{Name: "Solo"})
		gt.NoError(t, err)

		recs, err := uc.Staffing.Recommend(ctx, p.ID)
		gt.NoError(t, err)
		gt.Array(t, recs).Length(0)
		gt.Value(t, mock.callCount()).Equal(0)
	})
}
