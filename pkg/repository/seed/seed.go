package seed

import (
	"context"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
)

// File is a TOML fixture of frameworks, briefs and their responses
type File struct {
	Frameworks []model.Framework `toml:"framework"`
	Briefs     []Brief           `toml:"brief"`
	Projects   []Project         `toml:"project"`
}

type Brief struct {
	ID                     string         `toml:"id"`
	Title                  string         `toml:"title"`
	Framework              string         `toml:"framework"`
	Lot                    string         `toml:"lot"`
	Status                 string         `toml:"status"`
	Owner                  string         `toml:"owner"`
	EssentialRequirements  []string       `toml:"essential_requirements"`
	NiceToHaveRequirements []string       `toml:"nice_to_have_requirements"`
	RequirementsLength     string         `toml:"requirements_length"`
	PublishedAt            time.Time      `toml:"published_at"`
	ApplicationsClosedAt   time.Time      `toml:"applications_closed_at"`
	Answers                map[string]any `toml:"answers"`
	Responses              []Response     `toml:"response"`
}

type Response struct {
	ID      string         `toml:"id"`
	Status  string         `toml:"status"`
	Answers map[string]any `toml:"answers"`
}

type Project struct {
	ID       string    `toml:"id"`
	Owner    string    `toml:"owner"`
	Name     string    `toml:"name"`
	LockedAt time.Time `toml:"locked_at"`
}

// Load reads a fixture file
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seed file", goerr.V("path", path))
	}
	return &f, nil
}

// Apply writes every record of f into repo
func Apply(ctx context.Context, repo interfaces.Repository, f *File) error {
	for i := range f.Frameworks {
		fw := &f.Frameworks[i]
		if !fw.Status.IsValid() {
			return goerr.New("invalid framework status", goerr.V("slug", fw.Slug), goerr.V("status", fw.Status))
		}
		if err := repo.Framework().Put(ctx, fw); err != nil {
			return goerr.Wrap(err, "failed to seed framework", goerr.V("slug", fw.Slug))
		}
	}

	for _, b := range f.Briefs {
		status := types.BriefStatusDraft
		if b.Status != "" {
			parsed, err := types.ParseBriefStatus(b.Status)
			if err != nil {
				return goerr.Wrap(err, "invalid brief in seed file", goerr.V(model.BriefIDKey, b.ID))
			}
			status = parsed
		}

		created, err := repo.Brief().Create(ctx, &model.Brief{
			ID:                     b.ID,
			Title:                  b.Title,
			FrameworkSlug:          b.Framework,
			LotSlug:                b.Lot,
			Status:                 status,
			OwnerID:                b.Owner,
			EssentialRequirements:  b.EssentialRequirements,
			NiceToHaveRequirements: b.NiceToHaveRequirements,
			RequirementsLength:     b.RequirementsLength,
			PublishedAt:            b.PublishedAt,
			ApplicationsClosedAt:   b.ApplicationsClosedAt,
			Answers:                b.Answers,
		})
		if err != nil {
			return goerr.Wrap(err, "failed to seed brief", goerr.V(model.BriefIDKey, b.ID))
		}

		for _, r := range b.Responses {
			respStatus := types.BriefResponseStatusSubmitted
			if r.Status != "" {
				parsed, err := types.ParseBriefResponseStatus(r.Status)
				if err != nil {
					return goerr.Wrap(err, "invalid brief response in seed file", goerr.V(model.ResponseIDKey, r.ID))
				}
				respStatus = parsed
			}

			if _, err := repo.BriefResponse().Create(ctx, &model.BriefResponse{
				ID:      r.ID,
				BriefID: created.ID,
				Status:  respStatus,
				Answers: r.Answers,
			}); err != nil {
				return goerr.Wrap(err, "failed to seed brief response",
					goerr.V(model.BriefIDKey, created.ID),
					goerr.V(model.ResponseIDKey, r.ID))
			}
		}
	}

	for _, p := range f.Projects {
		if _, err := repo.DirectAwardProject().Create(ctx, &model.DirectAwardProject{
			ID:       p.ID,
			OwnerID:  p.Owner,
			Name:     p.Name,
			LockedAt: p.LockedAt,
		}); err != nil {
			return goerr.Wrap(err, "failed to seed direct award project", goerr.V("project_id", p.ID))
		}
	}

	return nil
}
