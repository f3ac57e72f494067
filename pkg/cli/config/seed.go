package config

import (
	"context"
	_ "embed"
	"errors"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/utils/logging"
)

//go:embed seed/seed.toml
var defaultSeed []byte

// Seed holds CLI flags for seeding the repository at startup
type Seed struct {
	enabled bool
	path    string
}

type seedFile struct {
	Users    []seedUser    `toml:"users"`
	Projects []seedProject `toml:"projects"`
}

type seedUser struct {
	Email     string `toml:"email"`
	Name      string `toml:"name"`
	Role      string `toml:"role"`
	Title     string `toml:"title"`
	JoinDate  string `toml:"join_date"`
	AvatarURL string `toml:"avatar_url"`
}

type seedProject struct {
	Code         string    `toml:"code"`
	Name         string    `toml:"name"`
	BusinessUnit string    `toml:"business_unit"`
	Manager      string    `toml:"manager"`
	CreatedAt    string    `toml:"created_at"`
	Status       string    `toml:"status"`
	Stage        string    `toml:"stage"`
	Description  string    `toml:"description"`
	Tags         []string  `toml:"tags"`
	Logs         []seedLog `toml:"logs"`
}

type seedLog struct {
	Date        string           `toml:"date"`
	Author      string           `toml:"author"`
	Content     string           `toml:"content"`
	Category    string           `toml:"category"`
	Attachments []seedAttachment `toml:"attachments"`
}

type seedAttachment struct {
	Name string `toml:"name"`
	Size string `toml:"size"`
	Type string `toml:"type"`
}

// Flags returns CLI flags for seed configuration
func (s *Seed) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "seed",
			Usage:       "Seed the repository with default users and projects at startup",
			Sources:     cli.EnvVars("DISPATCHBOARD_SEED"),
			Destination: &s.enabled,
		},
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "Path to a TOML seed file (default: built-in seed data)",
			Sources:     cli.EnvVars("DISPATCHBOARD_SEED_FILE"),
			Destination: &s.path,
		},
	}
}

// Enabled reports whether seeding was requested
func (s *Seed) Enabled() bool {
	return s.enabled || s.path != ""
}

func (s *Seed) load() (*seedFile, error) {
	data := defaultSeed
	if s.path != "" {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read seed file", goerr.V("path", s.path))
		}
		data = raw
	}

	var f seedFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seed file")
	}
	return &f, nil
}

// Apply inserts seed users and projects that do not exist yet. Users
// are matched by email and projects by code, so re-running against a
// populated repository is a no-op.
func (s *Seed) Apply(ctx context.Context, repo interfaces.Repository) error {
	f, err := s.load()
	if err != nil {
		return err
	}

	var createdUsers, createdProjects int

	for _, su := range f.Users {
		if _, err := repo.User().GetByEmail(ctx, su.Email); err == nil {
			continue
		} else if !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to check seed user", goerr.V("email", su.Email))
		}

		role, err := types.ParseUserRole(su.Role)
		if err != nil {
			return goerr.Wrap(err, "invalid seed user role", goerr.V("email", su.Email))
		}

		u := &model.User{
			ID:        types.NewUserID(),
			Email:     su.Email,
			Name:      su.Name,
			Role:      role,
			Title:     su.Title,
			JoinDate:  su.JoinDate,
			AvatarURL: su.AvatarURL,
		}
		if _, err := repo.User().Create(ctx, u); err != nil {
			return goerr.Wrap(err, "failed to create seed user", goerr.V("email", su.Email))
		}
		createdUsers++
	}

	existing, err := repo.Project().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list projects before seeding")
	}
	byCode := make(map[string]bool, len(existing))
	for _, p := range existing {
		byCode[p.Code] = true
	}

	for _, sp := range f.Projects {
		if sp.Code != "" && byCode[sp.Code] {
			continue
		}

		p, err := buildSeedProject(sp)
		if err != nil {
			return err
		}
		if _, err := repo.Project().Create(ctx, p); err != nil {
			return goerr.Wrap(err, "failed to create seed project", goerr.V("code", sp.Code))
		}
		createdProjects++
	}

	logging.Default().Info("Seed data applied",
		"users", createdUsers,
		"projects", createdProjects,
	)
	return nil
}

func buildSeedProject(sp seedProject) (*model.Project, error) {
	createdAt, err := time.Parse(model.DateLayout, sp.CreatedAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid seed project date", goerr.V("code", sp.Code))
	}

	status, err := types.ParseProjectStatus(sp.Status)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid seed project status", goerr.V("code", sp.Code))
	}
	stage, err := types.ParseProjectStage(sp.Stage)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid seed project stage", goerr.V("code", sp.Code))
	}

	p := &model.Project{
		ID:           types.NewProjectID(),
		Code:         sp.Code,
		Name:         sp.Name,
		BusinessUnit: sp.BusinessUnit,
		Manager:      sp.Manager,
		CreatedAt:    createdAt,
		LastActiveAt: createdAt,
		Status:       status,
		Stage:        stage,
		Description:  sp.Description,
		Tags:         sp.Tags,
	}

	// Seed logs are listed oldest first; AddEntry prepends so the
	// resulting history ends up newest first.
	for _, sl := range sp.Logs {
		date, err := time.Parse(model.DateLayout, sl.Date)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid seed log date", goerr.V("code", sp.Code))
		}

		category := types.LogCategoryNote
		if sl.Category != "" {
			category, err = types.ParseLogCategory(sl.Category)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid seed log category", goerr.V("code", sp.Code))
			}
		} else if len(sl.Attachments) > 0 {
			category = types.LogCategoryDeliverable
		}

		entry := model.LogEntry{
			ID:       types.NewLogID(),
			Date:     date,
			Author:   sl.Author,
			Content:  sl.Content,
			Category: category,
		}
		for _, sa := range sl.Attachments {
			entry.Attachments = append(entry.Attachments, model.Attachment{
				ID:   types.NewAttachmentID(),
				Name: sa.Name,
				Size: sa.Size,
				Type: sa.Type,
			})
		}
		p.AddEntry(entry)
	}
	p.SortHistory()

	return p, nil
}
