// Package archive keeps copies of generated supplier response reports.
package archive

import (
	"context"
	"path"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
)

// Key returns a unique object key for a report of a brief
func Key(briefID, filename string) string {
	return path.Join("reports", briefID, uuid.NewString(), filename)
}

// GCS stores reports in a Cloud Storage bucket
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ReportArchive = &GCS{}

type Option func(*GCS)

// WithPrefix places every object under prefix
func WithPrefix(prefix string) Option {
	return func(g *GCS) {
		g.prefix = prefix
	}
}

func New(ctx context.Context, bucket string, opts ...Option) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	g := &GCS{client: client, bucket: bucket}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *GCS) Put(ctx context.Context, key, contentType string, data []byte) error {
	name := path.Join(g.prefix, key)

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write report object",
			goerr.V("bucket", g.bucket),
			goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize report object",
			goerr.V("bucket", g.bucket),
			goerr.V("object", name))
	}
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

// Object is one archived report held by Memory
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// Memory is a process-local archive for development and tests
type Memory struct {
	mu      sync.Mutex
	objects []Object
}

var _ interfaces.ReportArchive = &Memory{}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Put(_ context.Context, key, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = append(m.objects, Object{
		Key:         key,
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
	})
	return nil
}

// Objects returns a snapshot of everything stored so far
func (m *Memory) Objects() []Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Object(nil), m.objects...)
}
