package cli

import (
	"context"
	"time"

	"github.com/marketplace-labs/briefdesk/pkg/cli/config"
	"github.com/marketplace-labs/briefdesk/pkg/utils/errutil"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Run executes the briefdesk command line. Every flag can also be set
// through its BRIEFDESK_* environment variable.
func Run(ctx context.Context, args []string, version string) error {
	var (
		loggerCfg config.Logger
		closeLog  func()
		startedAt time.Time
	)

	app := &cli.Command{
		Name:    "briefdesk",
		Usage:   "Buyer-side brief management for the digital marketplace",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closeLog = f
			startedAt = time.Now()

			logging.Default().Debug("briefdesk starting",
				"command", c.Args().First(),
				"version", version,
				"logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if !startedAt.IsZero() {
				logging.Default().Debug("briefdesk finished",
					"command", c.Args().First(),
					"elapsed", time.Since(startedAt))
			}
			if closeLog != nil {
				closeLog()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(version),
			cmdExport(),
			cmdValidate(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		errutil.Handle(ctx, err, "briefdesk command failed")
		return err
	}

	return nil
}
