package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Sentry configures error reporting. Without a DSN nothing is sent.
type Sentry struct {
	dsn         string
	environment string
}

func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting",
			Category:    "Sentry",
			Sources:     cli.EnvVars("BRIEFDESK_SENTRY_DSN"),
			Destination: &s.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Category:    "Sentry",
			Value:       "development",
			Sources:     cli.EnvVars("BRIEFDESK_SENTRY_ENV"),
			Destination: &s.environment,
		},
	}
}

// Configure initialises the Sentry client. The returned func flushes
// pending events.
func (s *Sentry) Configure(release string) (func(), error) {
	if s.dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.dsn,
		Environment: s.environment,
		Release:     release,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry", goerr.V("environment", s.environment))
	}
	logging.Default().Info("Sentry enabled", "environment", s.environment)

	return func() { sentry.Flush(2 * time.Second) }, nil
}
