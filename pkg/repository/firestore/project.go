package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type projectRepository struct {
	client *firestore.Client
	prefix collectionPrefix
}

func (r *projectRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.prefix.name(CollectionDirectAwardProjects))
}

func (r *projectRepository) Create(ctx context.Context, p *model.DirectAwardProject) (*model.DirectAwardProject, error) {
	created := *p
	if created.ID == "" {
		id, err := nextID(ctx, r.client, r.prefix, "direct_award_project_counter")
		if err != nil {
			return nil, err
		}
		created.ID = id
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(created.ID).Create(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create direct award project", goerr.V("project_id", created.ID))
	}
	return &created, nil
}

func (r *projectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.DirectAwardProject, error) {
	iter := r.collection().Where("owner_id", "==", ownerID).Documents(ctx)
	defer iter.Stop()

	projects := []*model.DirectAwardProject{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate direct award projects", goerr.V("owner_id", ownerID))
		}

		var p model.DirectAwardProject
		if err := doc.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode direct award project", goerr.V("doc_id", doc.Ref.ID))
		}
		projects = append(projects, &p)
	}
	return projects, nil
}
