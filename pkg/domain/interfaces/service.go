package interfaces

import (
	"context"

	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
)

// ContentLoader provides framework content manifests
type ContentLoader interface {
	// Manifest returns the named manifest of a framework. A missing manifest
	// is ErrNotFound.
	Manifest(framework, name string) (*model.Manifest, error)
}

// ReportArchive keeps a copy of every downloaded report
type ReportArchive interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}
