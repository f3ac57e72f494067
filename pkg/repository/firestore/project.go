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

type projectRepository struct {
	client *firestore.Client
}

func newProjectRepository(client *firestore.Client) *projectRepository {
	return &projectRepository{client: client}
}

func (r *projectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid project")
	}

	created := *p
	created.Revision = 1

	if _, err := r.client.Collection(projectsCollection).Doc(created.ID.String()).Create(ctx, &created); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.New("project already exists", goerr.V("id", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create project", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *projectRepository) Get(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	docSnap, err := r.client.Collection(projectsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "project not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("id", id))
	}

	var p model.Project
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project", goerr.V("id", id))
	}

	return &p, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	// UUIDv7 document IDs sort by creation time, so document-ID order
	// preserves registration order.
	iter := r.client.Collection(projectsCollection).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var projects []*model.Project
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects")
		}

		var p model.Project
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode project", goerr.V("doc", docSnap.Ref.ID))
		}
		projects = append(projects, &p)
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	docRef := r.client.Collection(projectsCollection).Doc(p.ID.String())

	updated := *p
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "project not found", goerr.V("id", p.ID))
			}
			return goerr.Wrap(err, "failed to get project")
		}

		var existing model.Project
		if err := docSnap.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode project")
		}

		updated.Revision = existing.Revision + 1
		return tx.Set(docRef, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *projectRepository) SetSummary(ctx context.Context, id types.ProjectID, summary string, rev int64) error {
	docRef := r.client.Collection(projectsCollection).Doc(id.String())

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "project not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get project")
		}

		var existing model.Project
		if err := docSnap.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode project")
		}

		if existing.Revision != rev {
			return goerr.Wrap(interfaces.ErrStaleRevision, "project changed since generation started",
				goerr.V("id", id),
				goerr.V("expected", rev),
				goerr.V("actual", existing.Revision),
			)
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "AISummary", Value: summary},
			{Path: "Revision", Value: existing.Revision + 1},
		})
	})
}
