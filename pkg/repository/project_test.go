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

func newTestProject(name string) *model.Project {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return &model.Project{
		ID:           types.NewProjectID(),
		Code:         "TST-001",
		Name:         name,
		BusinessUnit: "Grid Dispatch",
		Manager:      "Wang Lei",
		CreatedAt:    now,
		LastActiveAt: now,
		Status:       types.ProjectStatusNew,
		Stage:        types.ProjectStageOpportunity,
		Tags:         []string{"pilot"},
	}
}

func runProjectRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := newTestProject("Load Forecasting Platform")
		created, err := repo.Project().Create(ctx, p)
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).Equal(p.ID)

		retrieved, err := repo.Project().Get(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Name).Equal("Load Forecasting Platform")
		gt.Value(t, retrieved.Status).Equal(types.ProjectStatusNew)
		gt.Array(t, retrieved.Tags).Length(1)
	})

	t.Run("Get returns ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Project().Get(ctx, types.NewProjectID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("List returns projects in insertion order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := newTestProject("First Registered")
		second := newTestProject("Second Registered")
		_, err := repo.Project().Create(ctx, first)
		gt.NoError(t, err).Required()
		_, err = repo.Project().Create(ctx, second)
		gt.NoError(t, err).Required()

		projects, err := repo.Project().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, projects).Length(2)
		gt.Value(t, projects[0].Name).Equal("First Registered")
		gt.Value(t, projects[1].Name).Equal("Second Registered")
	})

	t.Run("Update bumps revision", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := newTestProject("Revision Check")
		_, err := repo.Project().Create(ctx, p)
		gt.NoError(t, err).Required()

		p.Description = "updated description"
		updated, err := repo.Project().Update(ctx, p)
		gt.NoError(t, err).Required()

		retrieved, err := repo.Project().Get(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Description).Equal("updated description")
		gt.Bool(t, retrieved.Revision > 0).True()
		gt.Value(t, retrieved.Revision).Equal(updated.Revision)
	})

	t.Run("SetSummary writes against current revision", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := newTestProject("Summary Target")
		_, err := repo.Project().Create(ctx, p)
		gt.NoError(t, err).Required()

		current, err := repo.Project().Get(ctx, p.ID)
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Project().SetSummary(ctx, p.ID, "snapshot text", current.Revision))

		retrieved, err := repo.Project().Get(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.AISummary).Equal("snapshot text")
	})

	t.Run("SetSummary rejects stale revision", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := newTestProject("Stale Summary")
		_, err := repo.Project().Create(ctx, p)
		gt.NoError(t, err).Required()

		current, err := repo.Project().Get(ctx, p.ID)
		gt.NoError(t, err).Required()
		staleRev := current.Revision

		// Concurrent edit moves the revision forward
		current.Description = "edited while generating"
		_, err = repo.Project().Update(ctx, current)
		gt.NoError(t, err).Required()

		err = repo.Project().SetSummary(ctx, p.ID, "stale snapshot", staleRev)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrStaleRevision)).True()

		retrieved, err := repo.Project().Get(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.AISummary).Equal("")
	})

	t.Run("history entries survive the roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := newTestProject("History Holder")
		p.AddEntry(model.LogEntry{
			ID:       types.NewLogID(),
			Date:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Author:   "Li Ming",
			Content:  "kickoff",
			Category: types.LogCategoryNote,
			Attachments: []model.Attachment{
				{ID: types.NewAttachmentID(), Name: "kickoff.pdf", Size: "1.2 MB", Type: "pdf"},
			},
		})
		_, err := repo.Project().Create(ctx, p)
		gt.NoError(t, err).Required()

		retrieved, err := repo.Project().Get(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, retrieved.History).Length(1)
		gt.Value(t, retrieved.History[0].Content).Equal("kickoff")
		gt.Array(t, retrieved.History[0].Attachments).Length(1)
		gt.Value(t, retrieved.History[0].Attachments[0].Name).Equal("kickoff.pdf")
	})
}

func TestProjectRepository_Memory(t *testing.T) {
	runProjectRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestProjectRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runProjectRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
