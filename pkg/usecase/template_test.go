package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/repository/memory"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
)

func TestEnsureDefaults(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	gt.NoError(t, uc.Template.EnsureDefaults(ctx))

	templates, err := uc.Template.List(ctx)
	gt.NoError(t, err)
	gt.Array(t, templates).Length(len(types.AllTemplateKeys()))

	t.Run("seeding is idempotent", func(t *testing.T) {
		gt.NoError(t, uc.Template.EnsureDefaults(ctx))
		again, err := uc.Template.List(ctx)
		gt.NoError(t, err)
		gt.Array(t, again).Length(len(types.AllTemplateKeys()))
	})

	t.Run("workflow context is system generated", func(t *testing.T) {
		tmpl, err := uc.Template.Active(ctx, types.TemplateKeyWorkflowContext)
		gt.NoError(t, err)
		gt.Bool(t, tmpl.SystemGenerated).True()
	})

	t.Run("summary template carries its placeholders", func(t *testing.T) {
		tmpl, err := uc.Template.Active(ctx, types.TemplateKeyProjectSummary)
		gt.NoError(t, err)
		gt.String(t, tmpl.Template).Contains("{{projectName}}")
		gt.String(t, tmpl.Template).Contains("{{workflowContext}}")
		gt.String(t, tmpl.Template).Contains("{{history}}")
	})
}

func TestUpdateTemplate(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())
	gt.NoError(t, uc.Template.EnsureDefaults(ctx))

	tmpl, err := uc.Template.Active(ctx, types.TemplateKeyDuplicateCheck)
	gt.NoError(t, err)

	updated, err := uc.Template.Update(ctx, tmpl.ID, usecase.UpdateTemplateInput{
		Template: "custom {{newProjectName}} check",
	})
	gt.NoError(t, err)
	gt.Value(t, updated.Template).Equal("custom {{newProjectName}} check")
	gt.Value(t, updated.Key).Equal(types.TemplateKeyDuplicateCheck)
	gt.Value(t, updated.Name).Equal(tmpl.Name)

	// the active template reflects the edit
	active, err := uc.Template.Active(ctx, types.TemplateKeyDuplicateCheck)
	gt.NoError(t, err)
	gt.Value(t, active.Template).Equal("custom {{newProjectName}} check")
}
