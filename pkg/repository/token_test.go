package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model/auth"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/repository/firestore"
	"github.com/archops-lab/dispatchboard/pkg/repository/memory"
)

func runTokenStoreTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token := auth.NewToken(types.NewUserID(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
		gt.NoError(t, repo.PutToken(ctx, token))

		retrieved, err := repo.GetToken(ctx, token.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Secret).Equal(token.Secret)
		gt.Value(t, retrieved.UserID).Equal(token.UserID)
		gt.Bool(t, retrieved.ExpiresAt.Equal(token.ExpiresAt)).True()
	})

	t.Run("Get returns ErrNotFound for unknown token", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.GetToken(ctx, auth.TokenID("no-such-token"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Delete revokes the token", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token := auth.NewToken(types.NewUserID(), time.Now())
		gt.NoError(t, repo.PutToken(ctx, token))
		gt.NoError(t, repo.DeleteToken(ctx, token.ID))

		_, err := repo.GetToken(ctx, token.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestTokenStore_Memory(t *testing.T) {
	runTokenStoreTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestTokenStore_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runTokenStoreTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
