package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
)

type Firestore struct {
	client    *firestore.Client
	framework *frameworkRepository
	brief     *briefRepository
	response  *briefResponseRepository
	project   *projectRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, used to isolate tests
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.framework.prefix = collectionPrefix(prefix)
		f.brief.prefix = collectionPrefix(prefix)
		f.response.prefix = collectionPrefix(prefix)
		f.project.prefix = collectionPrefix(prefix)
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID))
	}

	f := &Firestore{
		client:    client,
		framework: &frameworkRepository{client: client},
		brief:     &briefRepository{client: client},
		response:  &briefResponseRepository{client: client},
		project:   &projectRepository{client: client},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Framework() interfaces.FrameworkRepository {
	return f.framework
}

func (f *Firestore) Brief() interfaces.BriefRepository {
	return f.brief
}

func (f *Firestore) BriefResponse() interfaces.BriefResponseRepository {
	return f.response
}

func (f *Firestore) DirectAwardProject() interfaces.DirectAwardProjectRepository {
	return f.project
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

type collectionPrefix string

func (p collectionPrefix) name(collection string) string {
	if p != "" {
		return string(p) + "_" + collection
	}
	return collection
}

// Collection names, shared with the index migration
const (
	CollectionFrameworks          = "frameworks"
	CollectionBriefs              = "briefs"
	CollectionBriefResponses      = "brief_responses"
	CollectionDirectAwardProjects = "direct_award_projects"
	collectionCounters            = "counters"
)
