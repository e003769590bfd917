package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Report configures supplier response reports
type Report struct {
	cutover string
}

func (r *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "evidence-cutover",
			Usage:       "Briefs published on or after this date (YYYY-MM-DD) collect essential requirement evidence",
			Category:    "Report",
			Value:       "2016-12-01",
			Sources:     cli.EnvVars("BRIEFDESK_EVIDENCE_CUTOVER"),
			Destination: &r.cutover,
		},
	}
}

// Cutover parses the configured date as midnight UTC
func (r *Report) Cutover() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, r.cutover)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrInvalidConfig, "evidence cutover must be YYYY-MM-DD",
			goerr.V(FlagKey, "evidence-cutover"), goerr.V(ValueKey, r.cutover))
	}
	return t, nil
}
