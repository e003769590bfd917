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

type briefResponseRepository struct {
	mu        sync.RWMutex
	responses map[string]*model.BriefResponse
	byBrief   map[string][]string
	nextID    int64
}

func newBriefResponseRepository() *briefResponseRepository {
	return &briefResponseRepository{
		responses: make(map[string]*model.BriefResponse),
		byBrief:   make(map[string][]string),
		nextID:    1,
	}
}

func (r *briefResponseRepository) Create(ctx context.Context, resp *model.BriefResponse) (*model.BriefResponse, error) {
	if resp.BriefID == "" {
		return nil, goerr.New("brief ID is required for a response")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := resp.Clone()
	if created.ID == "" {
		created.ID = strconv.FormatInt(r.nextID, 10)
		r.nextID++
	}
	if _, exists := r.responses[created.ID]; exists {
		return nil, goerr.New("brief response already exists", goerr.V(model.ResponseIDKey, created.ID))
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.responses[created.ID] = created
	r.byBrief[created.BriefID] = append(r.byBrief[created.BriefID], created.ID)
	return created.Clone(), nil
}

func (r *briefResponseRepository) Get(ctx context.Context, id string) (*model.BriefResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resp, exists := r.responses[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "brief response not found", goerr.V(model.ResponseIDKey, id))
	}
	return resp.Clone(), nil
}

func (r *briefResponseRepository) ListByBrief(ctx context.Context, briefID string, statuses ...types.BriefResponseStatus) ([]*model.BriefResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	responses := []*model.BriefResponse{}
	for _, id := range r.byBrief[briefID] {
		resp := r.responses[id]
		if len(statuses) > 0 && !slices.Contains(statuses, resp.Status) {
			continue
		}
		responses = append(responses, resp.Clone())
	}
	return responses, nil
}

func (r *briefResponseRepository) Update(ctx context.Context, resp *model.BriefResponse) (*model.BriefResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.responses[resp.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "brief response not found", goerr.V(model.ResponseIDKey, resp.ID))
	}
	if existing.BriefID != resp.BriefID {
		return nil, goerr.New("brief response cannot move between briefs",
			goerr.V(model.ResponseIDKey, resp.ID),
			goerr.V(model.BriefIDKey, resp.BriefID))
	}

	updated := resp.Clone()
	updated.CreatedAt = existing.CreatedAt
	r.responses[resp.ID] = updated
	return updated.Clone(), nil
}
