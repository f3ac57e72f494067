package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

type templateRepository struct {
	client *firestore.Client
}

func newTemplateRepository(client *firestore.Client) *templateRepository {
	return &templateRepository{client: client}
}

func (r *templateRepository) Put(ctx context.Context, tmpl *model.PromptTemplate) error {
	if err := tmpl.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid template")
	}

	if _, err := r.client.Collection(templatesCollection).Doc(tmpl.ID.String()).Set(ctx, tmpl); err != nil {
		return goerr.Wrap(err, "failed to put template", goerr.V("id", tmpl.ID))
	}

	return nil
}

func (r *templateRepository) Get(ctx context.Context, id types.TemplateID) (*model.PromptTemplate, error) {
	docSnap, err := r.client.Collection(templatesCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "template not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get template", goerr.V("id", id))
	}

	var tmpl model.PromptTemplate
	if err := docSnap.DataTo(&tmpl); err != nil {
		return nil, goerr.Wrap(err, "failed to decode template", goerr.V("id", id))
	}

	return &tmpl, nil
}

func (r *templateRepository) GetByKey(ctx context.Context, key types.TemplateKey) (*model.PromptTemplate, error) {
	// Document IDs are UUIDv7, so DocumentID order matches creation order
	// and the first match is the active template for the key.
	iter := r.client.Collection(templatesCollection).
		Where("Key", "==", key.String()).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "template not found", goerr.V("key", key))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query template by key", goerr.V("key", key))
	}

	var tmpl model.PromptTemplate
	if err := docSnap.DataTo(&tmpl); err != nil {
		return nil, goerr.Wrap(err, "failed to decode template")
	}

	return &tmpl, nil
}

func (r *templateRepository) List(ctx context.Context) ([]*model.PromptTemplate, error) {
	iter := r.client.Collection(templatesCollection).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var templates []*model.PromptTemplate
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate templates")
		}

		var tmpl model.PromptTemplate
		if err := docSnap.DataTo(&tmpl); err != nil {
			return nil, goerr.Wrap(err, "failed to decode template", goerr.V("doc", docSnap.Ref.ID))
		}
		templates = append(templates, &tmpl)
	}

	return templates, nil
}
