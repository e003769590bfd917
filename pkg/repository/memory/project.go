package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
)

type projectRepository struct {
	mu       sync.RWMutex
	projects []*model.DirectAwardProject
}

func newProjectRepository() *projectRepository {
	return &projectRepository{}
}

func (r *projectRepository) Create(ctx context.Context, p *model.DirectAwardProject) (*model.DirectAwardProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *p
	if created.ID == "" {
		created.ID = strconv.Itoa(len(r.projects) + 1)
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	r.projects = append(r.projects, &created)

	out := created
	return &out, nil
}

func (r *projectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.DirectAwardProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := []*model.DirectAwardProject{}
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			c := *p
			projects = append(projects, &c)
		}
	}
	return projects, nil
}
