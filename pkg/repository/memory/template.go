package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

type templateRepository struct {
	mu        sync.RWMutex
	templates map[types.TemplateID]*model.PromptTemplate
	order     []types.TemplateID
}

func newTemplateRepository() *templateRepository {
	return &templateRepository{
		templates: make(map[types.TemplateID]*model.PromptTemplate),
	}
}

func copyTemplate(t *model.PromptTemplate) *model.PromptTemplate {
	copied := *t
	return &copied
}

func (r *templateRepository) Put(ctx context.Context, t *model.PromptTemplate) error {
	if err := t.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid template")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[t.ID]; !exists {
		r.order = append(r.order, t.ID)
	}
	r.templates[t.ID] = copyTemplate(t)
	return nil
}

func (r *templateRepository) Get(ctx context.Context, id types.TemplateID) (*model.PromptTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.templates[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "template not found", goerr.V("id", id))
	}

	return copyTemplate(t), nil
}

func (r *templateRepository) GetByKey(ctx context.Context, key types.TemplateKey) (*model.PromptTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// First match by key is the active template
	for _, id := range r.order {
		if r.templates[id].Key == key {
			return copyTemplate(r.templates[id]), nil
		}
	}

	return nil, goerr.Wrap(interfaces.ErrNotFound, "template not found", goerr.V("key", key))
}

func (r *templateRepository) List(ctx context.Context) ([]*model.PromptTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	templates := make([]*model.PromptTemplate, 0, len(r.order))
	for _, id := range r.order {
		templates = append(templates, copyTemplate(r.templates[id]))
	}

	return templates, nil
}
