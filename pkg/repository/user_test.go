package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/repository/firestore"
	"github.com/archops-lab/dispatchboard/pkg/repository/memory"
)

func newTestUser(name, email string) *model.User {
	return &model.User{
		ID:    types.NewUserID(),
		Email: email,
		Name:  name,
		Role:  types.UserRoleArchitect,
		Title: "Solution Architect",
	}
}

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u := newTestUser("Zhang San", "zhang.san@example.com")
		_, err := repo.User().Create(ctx, u)
		gt.NoError(t, err).Required()

		retrieved, err := repo.User().Get(ctx, u.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Name).Equal("Zhang San")
		gt.Value(t, retrieved.Role).Equal(types.UserRoleArchitect)
		gt.Value(t, retrieved.Persona).Nil()
	})

	t.Run("GetByEmail resolves login identity", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u := newTestUser("Li Si", "li.si@example.com")
		_, err := repo.User().Create(ctx, u)
		gt.NoError(t, err).Required()

		retrieved, err := repo.User().GetByEmail(ctx, "li.si@example.com")
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.ID).Equal(u.ID)

		_, err = repo.User().GetByEmail(ctx, "nobody@example.com")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Update bumps revision", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u := newTestUser("Wang Lei", "wang.lei@example.com")
		_, err := repo.User().Create(ctx, u)
		gt.NoError(t, err).Required()

		u.Title = "Department Head"
		_, err = repo.User().Update(ctx, u)
		gt.NoError(t, err).Required()

		retrieved, err := repo.User().Get(ctx, u.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Title).Equal("Department Head")
		gt.Bool(t, retrieved.Revision > 0).True()
	})

	t.Run("SetPersona writes against current revision", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u := newTestUser("Zhao Liu", "zhao.liu@example.com")
		_, err := repo.User().Create(ctx, u)
		gt.NoError(t, err).Required()

		current, err := repo.User().Get(ctx, u.ID)
		gt.NoError(t, err).Required()

		persona := &model.Persona{
			Summary:          "Supported two VPP pilots",
			Domains:          []string{"VPP", "IoT"},
			WorkStyle:        "detail oriented",
			ImprovementAreas: "customer facing presentations",
		}
		updatedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		gt.NoError(t, repo.User().SetPersona(ctx, u.ID, persona, updatedAt, current.Revision))

		retrieved, err := repo.User().Get(ctx, u.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Persona).NotNil()
		gt.Value(t, retrieved.Persona.Summary).Equal("Supported two VPP pilots")
		gt.Array(t, retrieved.Persona.Domains).Length(2)
	})

	t.Run("SetPersona rejects stale revision", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u := newTestUser("Sun Qi", "sun.qi@example.com")
		_, err := repo.User().Create(ctx, u)
		gt.NoError(t, err).Required()

		current, err := repo.User().Get(ctx, u.ID)
		gt.NoError(t, err).Required()
		staleRev := current.Revision

		current.Title = "Principal Architect"
		_, err = repo.User().Update(ctx, current)
		gt.NoError(t, err).Required()

		err = repo.User().SetPersona(ctx, u.ID, &model.Persona{Summary: "stale"}, time.Now(), staleRev)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrStaleRevision)).True()

		retrieved, err := repo.User().Get(ctx, u.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Persona).Nil()
	})
}

func TestUserRepository_Memory(t *testing.T) {
	runUserRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestUserRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runUserRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
