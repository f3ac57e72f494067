package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

type userRepository struct {
	client *firestore.Client
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if err := u.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user")
	}

	created := *u
	created.Revision = 1

	if _, err := r.client.Collection(usersCollection).Doc(created.ID.String()).Create(ctx, &created); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.New("user already exists", goerr.V("id", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	docSnap, err := r.client.Collection(usersCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var u model.User
	if err := docSnap.DataTo(&u); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("id", id))
	}

	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.client.Collection(usersCollection).
		Where("Email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user by email")
	}

	var u model.User
	if err := docSnap.DataTo(&u); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user")
	}

	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	iter := r.client.Collection(usersCollection).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var users []*model.User
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users")
		}

		var u model.User
		if err := docSnap.DataTo(&u); err != nil {
			return nil, goerr.Wrap(err, "failed to decode user", goerr.V("doc", docSnap.Ref.ID))
		}
		users = append(users, &u)
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) (*model.User, error) {
	docRef := r.client.Collection(usersCollection).Doc(u.ID.String())

	updated := *u
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", u.ID))
			}
			return goerr.Wrap(err, "failed to get user")
		}

		var existing model.User
		if err := docSnap.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode user")
		}

		updated.Revision = existing.Revision + 1
		return tx.Set(docRef, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *userRepository) SetPersona(ctx context.Context, id types.UserID, persona *model.Persona, updatedAt time.Time, rev int64) error {
	docRef := r.client.Collection(usersCollection).Doc(id.String())

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get user")
		}

		var existing model.User
		if err := docSnap.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode user")
		}

		if existing.Revision != rev {
			return goerr.Wrap(interfaces.ErrStaleRevision, "user changed since generation started",
				goerr.V("id", id),
				goerr.V("expected", rev),
				goerr.V("actual", existing.Revision),
			)
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "Persona", Value: persona},
			{Path: "PersonaUpdatedAt", Value: updatedAt},
			{Path: "Revision", Value: existing.Revision + 1},
		})
	})
}
