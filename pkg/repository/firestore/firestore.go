package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model/auth"
)

const (
	projectsCollection  = "projects"
	usersCollection     = "users"
	templatesCollection = "prompt_templates"
	tokensCollection    = "tokens"
)

// Firestore is the persistent repository backend
type Firestore struct {
	client   *firestore.Client
	project  *projectRepository
	user     *userRepository
	template *templateRepository
}

var _ interfaces.Repository = &Firestore{}

// New creates a Firestore repository. databaseID may be empty to use the
// default database.
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		)
	}

	return &Firestore{
		client:   client,
		project:  newProjectRepository(client),
		user:     newUserRepository(client),
		template: newTemplateRepository(client),
	}, nil
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Template() interfaces.TemplateRepository {
	return f.template
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) PutToken(ctx context.Context, token *auth.Token) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token")
	}

	docRef := f.client.Collection(tokensCollection).Doc(token.ID.String())
	if _, err := docRef.Set(ctx, token); err != nil {
		return goerr.Wrap(err, "failed to put token")
	}
	return nil
}

func (f *Firestore) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	if err := tokenID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid token ID")
	}

	docSnap, err := f.client.Collection(tokensCollection).Doc(tokenID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "token not found")
		}
		return nil, goerr.Wrap(err, "failed to get token")
	}

	var token auth.Token
	if err := docSnap.DataTo(&token); err != nil {
		return nil, goerr.Wrap(err, "failed to decode token")
	}
	return &token, nil
}

func (f *Firestore) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	if err := tokenID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token ID")
	}

	if _, err := f.client.Collection(tokensCollection).Doc(tokenID.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete token")
	}
	return nil
}
