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

type briefRepository struct {
	client *firestore.Client
	prefix collectionPrefix
}

func (r *briefRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.prefix.name(CollectionBriefs))
}

func (r *briefRepository) Create(ctx context.Context, b *model.Brief) (*model.Brief, error) {
	created := b.Clone()
	if created.ID == "" {
		id, err := nextID(ctx, r.client, r.prefix, "brief_counter")
		if err != nil {
			return nil, err
		}
		created.ID = id
	}

	now := time.Now().UTC()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	created.UpdatedAt = now

	if _, err := r.collection().Doc(created.ID).Create(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create brief", goerr.V(model.BriefIDKey, created.ID))
	}
	return created, nil
}

func (r *briefRepository) Get(ctx context.Context, id string) (*model.Brief, error) {
	doc, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "brief not found", goerr.V(model.BriefIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get brief", goerr.V(model.BriefIDKey, id))
	}

	var b model.Brief
	if err := doc.DataTo(&b); err != nil {
		return nil, goerr.Wrap(err, "failed to decode brief", goerr.V(model.BriefIDKey, id))
	}
	return &b, nil
}

func (r *briefRepository) ListByOwner(ctx context.Context, ownerID string, statuses ...types.BriefStatus) ([]*model.Brief, error) {
	iter := r.collection().
		Where("owner_id", "==", ownerID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	briefs := []*model.Brief{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate briefs", goerr.V("owner_id", ownerID))
		}

		var b model.Brief
		if err := doc.DataTo(&b); err != nil {
			return nil, goerr.Wrap(err, "failed to decode brief", goerr.V("doc_id", doc.Ref.ID))
		}
		if len(statuses) > 0 && !slices.Contains(statuses, b.Status) {
			continue
		}
		briefs = append(briefs, &b)
	}
	return briefs, nil
}

func (r *briefRepository) Update(ctx context.Context, b *model.Brief) (*model.Brief, error) {
	ref := r.collection().Doc(b.ID)

	var updated *model.Brief
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "brief not found", goerr.V(model.BriefIDKey, b.ID))
			}
			return goerr.Wrap(err, "failed to check brief existence", goerr.V(model.BriefIDKey, b.ID))
		}

		var existing model.Brief
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode brief", goerr.V(model.BriefIDKey, b.ID))
		}

		updated = b.Clone()
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		return tx.Set(ref, updated)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update brief", goerr.V(model.BriefIDKey, b.ID))
	}
	return updated, nil
}

func (r *briefRepository) Delete(ctx context.Context, id string) error {
	ref := r.collection().Doc(id)

	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "brief not found", goerr.V(model.BriefIDKey, id))
		}
		return goerr.Wrap(err, "failed to check brief existence", goerr.V(model.BriefIDKey, id))
	}

	if _, err := ref.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete brief", goerr.V(model.BriefIDKey, id))
	}
	return nil
}
