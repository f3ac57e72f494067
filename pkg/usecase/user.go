package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/service/persona"
)

type UserUseCase struct {
	repo      interfaces.Repository
	persona   *persona.Service
	templates *TemplateUseCase
	now       func() time.Time
}

func NewUserUseCase(repo interfaces.Repository, personaSvc *persona.Service, templates *TemplateUseCase, now func() time.Time) *UserUseCase {
	return &UserUseCase{
		repo:      repo,
		persona:   personaSvc,
		templates: templates,
		now:       now,
	}
}

func (uc *UserUseCase) List(ctx context.Context) ([]*model.User, error) {
	return uc.repo.User().List(ctx)
}

func (uc *UserUseCase) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	u, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "no such user", goerr.V("id", id))
		}
		return nil, err
	}
	return u, nil
}

// RefreshPersona regenerates the user's work persona from the history
// entries they authored. Users with no authored entries are returned
// unchanged. The persona is persisted only if the user record has not
// moved since generation was dispatched.
func (uc *UserUseCase) RefreshPersona(ctx context.Context, id types.UserID) (*model.User, error) {
	u, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects for persona")
	}

	tmpl, err := uc.templates.Active(ctx, types.TemplateKeyUserPersona)
	if err != nil {
		return nil, err
	}

	p, err := uc.persona.Generate(ctx, tmpl.Template, uc.templates.workflowContext(ctx), u, projects)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// Nothing authored, nothing to synthesize
		return u, nil
	}

	if err := uc.repo.User().SetPersona(ctx, u.ID, p, uc.now(), u.Revision); err != nil {
		if errors.Is(err, interfaces.ErrStaleRevision) {
			return uc.Get(ctx, id)
		}
		return nil, goerr.Wrap(err, "failed to store persona", goerr.V("userID", id))
	}

	return uc.Get(ctx, id)
}
