package interfaces

import (
	"context"

	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

// BriefRepository defines the interface for Brief data access
type BriefRepository interface {
	// Create stores a new brief with a generated ID
	Create(ctx context.Context, b *model.Brief) (*model.Brief, error)

	// Get retrieves a brief by ID
	Get(ctx context.Context, id string) (*model.Brief, error)

	// ListByOwner returns a buyer's briefs, optionally restricted to statuses
	ListByOwner(ctx context.Context, ownerID string, statuses ...types.BriefStatus) ([]*model.Brief, error)

	// Update replaces an existing brief
	Update(ctx context.Context, b *model.Brief) (*model.Brief, error)

	// Delete removes a brief by ID
	Delete(ctx context.Context, id string) error
}

// BriefResponseRepository defines the interface for supplier response access
type BriefResponseRepository interface {
	Create(ctx context.Context, r *model.BriefResponse) (*model.BriefResponse, error)

	Get(ctx context.Context, id string) (*model.BriefResponse, error)

	// ListByBrief returns responses to a brief in creation order, optionally
	// restricted to statuses
	ListByBrief(ctx context.Context, briefID string, statuses ...types.BriefResponseStatus) ([]*model.BriefResponse, error)

	Update(ctx context.Context, r *model.BriefResponse) (*model.BriefResponse, error)
}

type DirectAwardProjectRepository interface {
	Create(ctx context.Context, p *model.DirectAwardProject) (*model.DirectAwardProject, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*model.DirectAwardProject, error)
}
