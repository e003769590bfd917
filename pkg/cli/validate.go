package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

// ErrInvalidContent is returned when any manifest fails to load
var ErrInvalidContent = goerr.New("content validation failed")

func cmdValidate() *cli.Command {
	var contentCfg config.Content

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate content manifests",
		Flags:   contentCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			results, err := contentCfg.Configure().Validate()
			if err != nil {
				return goerr.Wrap(err, "failed to read content", goerr.V("dir", contentCfg.Dir()))
			}

			ok := color.New(color.FgGreen).SprintFunc()
			ng := color.New(color.FgRed, color.Bold).SprintFunc()
			w := c.Root().Writer

			failed := 0
			for _, r := range results {
				name := r.Framework + "/" + r.Manifest
				if r.Err != nil {
					failed++
					fmt.Fprintf(w, "%s %s: %s\n", ng("NG"), name, r.Err.Error())
					continue
				}
				fmt.Fprintf(w, "%s %s (%d sections, %d questions)\n", ok("OK"), name, r.Sections, r.Questions)
			}

			if len(results) == 0 {
				return goerr.Wrap(ErrInvalidContent, "no manifests found", goerr.V("dir", contentCfg.Dir()))
			}
			if failed > 0 {
				return goerr.Wrap(ErrInvalidContent, "some manifests are invalid",
					goerr.V("failed", failed),
					goerr.V("total", len(results)))
			}
			return nil
		},
	}
}
