package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type frameworkRepository struct {
	client *firestore.Client
	prefix collectionPrefix
}

func (r *frameworkRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.prefix.name(CollectionFrameworks))
}

func (r *frameworkRepository) Get(ctx context.Context, slug string) (*model.Framework, error) {
	doc, err := r.collection().Doc(slug).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "framework not found", goerr.V("slug", slug))
		}
		return nil, goerr.Wrap(err, "failed to get framework", goerr.V("slug", slug))
	}

	var f model.Framework
	if err := doc.DataTo(&f); err != nil {
		return nil, goerr.Wrap(err, "failed to decode framework", goerr.V("slug", slug))
	}
	return &f, nil
}

func (r *frameworkRepository) List(ctx context.Context) ([]*model.Framework, error) {
	iter := r.collection().OrderBy("slug", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	frameworks := []*model.Framework{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate frameworks")
		}

		var f model.Framework
		if err := doc.DataTo(&f); err != nil {
			return nil, goerr.Wrap(err, "failed to decode framework", goerr.V("doc_id", doc.Ref.ID))
		}
		frameworks = append(frameworks, &f)
	}
	return frameworks, nil
}

func (r *frameworkRepository) Put(ctx context.Context, f *model.Framework) error {
	if f.Slug == "" {
		return goerr.New("framework slug is required")
	}
	if _, err := r.collection().Doc(f.Slug).Set(ctx, f); err != nil {
		return goerr.Wrap(err, "failed to put framework", goerr.V("slug", f.Slug))
	}
	return nil
}
