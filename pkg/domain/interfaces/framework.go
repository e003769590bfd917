package interfaces

import (
	"context"

	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
)

type FrameworkRepository interface {
	// Get returns the framework with slug, ErrNotFound if absent
	Get(ctx context.Context, slug string) (*model.Framework, error)

	List(ctx context.Context) ([]*model.Framework, error)

	// Put creates or replaces a framework
	Put(ctx context.Context, f *model.Framework) error
}
