package firestore

import (
	"context"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type briefResponseRepository struct {
	client *firestore.Client
	prefix collectionPrefix
}

func (r *briefResponseRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.prefix.name(CollectionBriefResponses))
}

func (r *briefResponseRepository) Create(ctx context.Context, resp *model.BriefResponse) (*model.BriefResponse, error) {
	if resp.BriefID == "" {
		return nil, goerr.New("brief ID is required for a response")
	}

	created := resp.Clone()
	if created.ID == "" {
		id, err := nextID(ctx, r.client, r.prefix, "brief_response_counter")
		if err != nil {
			return nil, err
		}
		created.ID = id
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(created.ID).Create(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create brief response", goerr.V(model.ResponseIDKey, created.ID))
	}
	return created, nil
}

func (r *briefResponseRepository) Get(ctx context.Context, id string) (*model.BriefResponse, error) {
	doc, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "brief response not found", goerr.V(model.ResponseIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get brief response", goerr.V(model.ResponseIDKey, id))
	}

	var resp model.BriefResponse
	if err := doc.DataTo(&resp); err != nil {
		return nil, goerr.Wrap(err, "failed to decode brief response", goerr.V(model.ResponseIDKey, id))
	}
	return &resp, nil
}

func (r *briefResponseRepository) ListByBrief(ctx context.Context, briefID string, statuses ...types.BriefResponseStatus) ([]*model.BriefResponse, error) {
	iter := r.collection().
		Where("brief_id", "==", briefID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	responses := []*model.BriefResponse{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate brief responses", goerr.V(model.BriefIDKey, briefID))
		}

		var resp model.BriefResponse
		if err := doc.DataTo(&resp); err != nil {
			return nil, goerr.Wrap(err, "failed to decode brief response", goerr.V("doc_id", doc.Ref.ID))
		}
		if len(statuses) > 0 && !slices.Contains(statuses, resp.Status) {
			continue
		}
		responses = append(responses, &resp)
	}
	return responses, nil
}

func (r *briefResponseRepository) Update(ctx context.Context, resp *model.BriefResponse) (*model.BriefResponse, error) {
	ref := r.collection().Doc(resp.ID)

	var updated *model.BriefResponse
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "brief response not found", goerr.V(model.ResponseIDKey, resp.ID))
			}
			return goerr.Wrap(err, "failed to check brief response existence", goerr.V(model.ResponseIDKey, resp.ID))
		}

		var existing model.BriefResponse
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode brief response", goerr.V(model.ResponseIDKey, resp.ID))
		}
		if existing.BriefID != resp.BriefID {
			return goerr.New("brief response cannot move between briefs",
				goerr.V(model.ResponseIDKey, resp.ID),
				goerr.V(model.BriefIDKey, resp.BriefID))
		}

		updated = resp.Clone()
		updated.CreatedAt = existing.CreatedAt
		return tx.Set(ref, updated)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update brief response", goerr.V(model.ResponseIDKey, resp.ID))
	}
	return updated, nil
}
