package usecase

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

//go:embed prompt/project_summary.md
var defaultProjectSummaryTemplate string

//go:embed prompt/duplicate_check.md
var defaultDuplicateCheckTemplate string

//go:embed prompt/workflow_context.md
var defaultWorkflowContextTemplate string

//go:embed prompt/user_persona.md
var defaultUserPersonaTemplate string

//go:embed prompt/architect_recommendation.md
var defaultArchitectRecommendationTemplate string

type TemplateUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewTemplateUseCase(repo interfaces.Repository, now func() time.Time) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, now: now}
}

type templateDefault struct {
	key             types.TemplateKey
	name            string
	description     string
	template        string
	systemGenerated bool
}

func templateDefaults() []templateDefault {
	return []templateDefault{
		{
			key:         types.TemplateKeyProjectSummary,
			name:        "智能场景回溯 (AI Recall)",
			description: "用于生成项目详情页顶部的上下文快照，分析当前状态和下一步行动。",
			template:    defaultProjectSummaryTemplate,
		},
		{
			key:         types.TemplateKeyDuplicateCheck,
			name:        "项目重名/重复风险检测",
			description: "在派单池新建项目时，检测是否与已有项目重复。",
			template:    defaultDuplicateCheckTemplate,
		},
		{
			key:             types.TemplateKeyWorkflowContext,
			name:            "部门工作职责与流程画像",
			description:     "系统通过扫描所有项目历史自动生成的部门工作习惯描述。此内容将被注入到\"AI Recall\"中以提高建议的准确性。",
			template:        defaultWorkflowContextTemplate,
			systemGenerated: true,
		},
		{
			key:         types.TemplateKeyUserPersona,
			name:        "成员画像生成",
			description: "根据成员撰写的项目日志，生成其工作画像。",
			template:    defaultUserPersonaTemplate,
		},
		{
			key:         types.TemplateKeyArchitectRecommendation,
			name:        "架构师派单推荐",
			description: "结合负载与画像，为项目推荐合适的技术架构师。",
			template:    defaultArchitectRecommendationTemplate,
		},
	}
}

// EnsureDefaults seeds a template for every key that has none yet.
// Existing templates are never overwritten.
func (uc *TemplateUseCase) EnsureDefaults(ctx context.Context) error {
	for _, d := range templateDefaults() {
		_, err := uc.repo.Template().GetByKey(ctx, d.key)
		if err == nil {
			continue
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to look up template", goerr.V("key", d.key))
		}

		tmpl := &model.PromptTemplate{
			ID:              types.NewTemplateID(),
			Key:             d.key,
			Name:            d.name,
			Description:     d.description,
			Template:        strings.TrimRight(d.template, "\n"),
			UpdatedAt:       uc.now(),
			SystemGenerated: d.systemGenerated,
		}
		if err := uc.repo.Template().Put(ctx, tmpl); err != nil {
			return goerr.Wrap(err, "failed to seed template", goerr.V("key", d.key))
		}
	}
	return nil
}

func (uc *TemplateUseCase) List(ctx context.Context) ([]*model.PromptTemplate, error) {
	return uc.repo.Template().List(ctx)
}

func (uc *TemplateUseCase) Get(ctx context.Context, id types.TemplateID) (*model.PromptTemplate, error) {
	tmpl, err := uc.repo.Template().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrTemplateNotFound, "no such template", goerr.V("id", id))
		}
		return nil, err
	}
	return tmpl, nil
}

// Active returns the template consulted by the feature behind key.
func (uc *TemplateUseCase) Active(ctx context.Context, key types.TemplateKey) (*model.PromptTemplate, error) {
	tmpl, err := uc.repo.Template().GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrTemplateNotFound, "no template for key", goerr.V("key", key))
		}
		return nil, err
	}
	return tmpl, nil
}

type UpdateTemplateInput struct {
	Name        string
	Description string
	Template    string
}

// Update edits a template in place. The key and system-generated flag
// are not editable from the outside.
func (uc *TemplateUseCase) Update(ctx context.Context, id types.TemplateID, input UpdateTemplateInput) (*model.PromptTemplate, error) {
	tmpl, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		tmpl.Name = input.Name
	}
	if input.Description != "" {
		tmpl.Description = input.Description
	}
	if input.Template != "" {
		tmpl.Template = input.Template
	}
	tmpl.UpdatedAt = uc.now()

	if err := uc.repo.Template().Put(ctx, tmpl); err != nil {
		return nil, goerr.Wrap(err, "failed to update template", goerr.V("id", id))
	}
	return tmpl, nil
}

// workflowContext returns the standing department workflow narrative
// injected into dependent prompts.
func (uc *TemplateUseCase) workflowContext(ctx context.Context) string {
	tmpl, err := uc.repo.Template().GetByKey(ctx, types.TemplateKeyWorkflowContext)
	if err != nil {
		return ""
	}
	return tmpl.Template
}
