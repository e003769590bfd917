package memory

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

type briefRepository struct {
	mu     sync.RWMutex
	briefs map[string]*model.Brief
	order  []string
	nextID int64
}

func newBriefRepository() *briefRepository {
	return &briefRepository{
		briefs: make(map[string]*model.Brief),
		nextID: 1,
	}
}

func (r *briefRepository) Create(ctx context.Context, b *model.Brief) (*model.Brief, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := b.Clone()
	if created.ID == "" {
		created.ID = strconv.FormatInt(r.nextID, 10)
		r.nextID++
	}
	if _, exists := r.briefs[created.ID]; exists {
		return nil, goerr.New("brief already exists", goerr.V(model.BriefIDKey, created.ID))
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	created.UpdatedAt = now

	r.briefs[created.ID] = created
	r.order = append(r.order, created.ID)
	return created.Clone(), nil
}

func (r *briefRepository) Get(ctx context.Context, id string) (*model.Brief, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.briefs[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "brief not found", goerr.V(model.BriefIDKey, id))
	}
	return b.Clone(), nil
}

func (r *briefRepository) ListByOwner(ctx context.Context, ownerID string, statuses ...types.BriefStatus) ([]*model.Brief, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	briefs := []*model.Brief{}
	for _, id := range r.order {
		b := r.briefs[id]
		if b.OwnerID != ownerID {
			continue
		}
		if len(statuses) > 0 && !slices.Contains(statuses, b.Status) {
			continue
		}
		briefs = append(briefs, b.Clone())
	}
	return briefs, nil
}

func (r *briefRepository) Update(ctx context.Context, b *model.Brief) (*model.Brief, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.briefs[b.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "brief not found", goerr.V(model.BriefIDKey, b.ID))
	}

	updated := b.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.briefs[b.ID] = updated
	return updated.Clone(), nil
}

func (r *briefRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.briefs[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "brief not found", goerr.V(model.BriefIDKey, id))
	}
	delete(r.briefs, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}
