package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/repository/dataapi"
	"github.com/marketplace-labs/briefdesk/pkg/repository/firestore"
	"github.com/marketplace-labs/briefdesk/pkg/repository/memory"
	"github.com/marketplace-labs/briefdesk/pkg/repository/seed"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend    string
	projectID  string
	databaseID string
	apiURL     string
	apiToken   string
	seedPath   string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (memory, firestore or api)",
			Category:    "Repository",
			Value:       "memory",
			Sources:     cli.EnvVars("BRIEFDESK_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("BRIEFDESK_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("BRIEFDESK_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "data-api-url",
			Usage:       "Marketplace data API base URL (required when using api backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("BRIEFDESK_DATA_API_URL"),
			Destination: &r.apiURL,
		},
		&cli.StringFlag{
			Name:        "data-api-token",
			Usage:       "Marketplace data API token",
			Category:    "Repository",
			Sources:     cli.EnvVars("BRIEFDESK_DATA_API_TOKEN"),
			Destination: &r.apiToken,
		},
		&cli.StringFlag{
			Name:        "seed",
			Usage:       "TOML fixture loaded into the repository at startup",
			Category:    "Repository",
			Sources:     cli.EnvVars("BRIEFDESK_SEED"),
			Destination: &r.seedPath,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("project_id", r.projectID),
		slog.String("database_id", r.databaseID),
		slog.String("api_url", r.apiURL),
		slog.String("seed", r.seedPath),
	)
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	repo, err := r.open(ctx)
	if err != nil {
		return nil, err
	}

	if r.seedPath != "" {
		f, err := seed.Load(r.seedPath)
		if err != nil {
			_ = repo.Close()
			return nil, err
		}
		if err := seed.Apply(ctx, repo, f); err != nil {
			_ = repo.Close()
			return nil, goerr.Wrap(err, "failed to apply seed", goerr.V("path", r.seedPath))
		}
		logging.Default().Info("Seed applied",
			"path", r.seedPath,
			"frameworks", len(f.Frameworks),
			"briefs", len(f.Briefs))
	}

	return repo, nil
}

func (r *Repository) open(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrMissingSetting, "firestore-project-id is required when using firestore backend",
				goerr.V(FlagKey, "firestore-project-id"))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case "api":
		if r.apiURL == "" {
			return nil, goerr.Wrap(ErrMissingSetting, "data-api-url is required when using api backend",
				goerr.V(FlagKey, "data-api-url"))
		}
		repo, err := dataapi.New(r.apiURL, r.apiToken)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize data API repository")
		}
		logging.Default().Info("Using data API repository", "url", r.apiURL)
		return repo, nil

	case "", "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid repository backend",
			goerr.V(FlagKey, "repository-backend"), goerr.V(ValueKey, r.backend))
	}
}
