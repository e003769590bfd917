package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
)

type frameworkRepository struct {
	mu         sync.RWMutex
	frameworks map[string]*model.Framework
}

func newFrameworkRepository() *frameworkRepository {
	return &frameworkRepository{
		frameworks: make(map[string]*model.Framework),
	}
}

func (r *frameworkRepository) Get(ctx context.Context, slug string) (*model.Framework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.frameworks[slug]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "framework not found", goerr.V("slug", slug))
	}
	return f.Clone(), nil
}

func (r *frameworkRepository) List(ctx context.Context) ([]*model.Framework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	frameworks := make([]*model.Framework, 0, len(r.frameworks))
	for _, f := range r.frameworks {
		frameworks = append(frameworks, f.Clone())
	}
	sort.Slice(frameworks, func(i, j int) bool {
		return frameworks[i].Slug < frameworks[j].Slug
	})
	return frameworks, nil
}

func (r *frameworkRepository) Put(ctx context.Context, f *model.Framework) error {
	if f.Slug == "" {
		return goerr.New("framework slug is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.frameworks[f.Slug] = f.Clone()
	return nil
}
