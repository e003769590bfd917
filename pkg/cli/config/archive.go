package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/service/archive"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Archive configures where downloaded reports are copied
type Archive struct {
	bucket string
	prefix string
}

func (a *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket receiving a copy of every downloaded report",
			Category:    "Archive",
			Sources:     cli.EnvVars("BRIEFDESK_ARCHIVE_BUCKET"),
			Destination: &a.bucket,
		},
		&cli.StringFlag{
			Name:        "archive-prefix",
			Usage:       "Object name prefix inside the archive bucket",
			Category:    "Archive",
			Sources:     cli.EnvVars("BRIEFDESK_ARCHIVE_PREFIX"),
			Destination: &a.prefix,
		},
	}
}

// Configure returns nil when no bucket is set. The returned func releases
// the storage client.
func (a *Archive) Configure(ctx context.Context) (interfaces.ReportArchive, func(), error) {
	if a.bucket == "" {
		logging.Default().Info("Report archive disabled")
		return nil, func() {}, nil
	}

	gcs, err := archive.New(ctx, a.bucket, archive.WithPrefix(a.prefix))
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize report archive", goerr.V("bucket", a.bucket))
	}
	logging.Default().Info("Report archive enabled", "bucket", a.bucket, "prefix", a.prefix)

	return gcs, func() {
		if err := gcs.Close(); err != nil {
			logging.Default().Error("failed to close archive client", "error", err.Error())
		}
	}, nil
}
