package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/cli/config"
	"github.com/marketplace-labs/briefdesk/pkg/usecase"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// cmdExport writes the supplier response report of one brief to disk,
// with the same gating as the download endpoint
func cmdExport() *cli.Command {
	var (
		buyerID   string
		framework string
		lot       string
		briefID   string
		outDir    string
	)
	var repoCfg config.Repository
	var contentCfg config.Content
	var reportCfg config.Report

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "buyer-id",
			Usage:       "Owner of the brief",
			Required:    true,
			Destination: &buyerID,
		},
		&cli.StringFlag{
			Name:        "framework",
			Usage:       "Framework slug",
			Value:       "digital-outcomes-and-specialists",
			Destination: &framework,
		},
		&cli.StringFlag{
			Name:        "lot",
			Usage:       "Lot slug",
			Required:    true,
			Destination: &lot,
		},
		&cli.StringFlag{
			Name:        "brief-id",
			Usage:       "Brief ID",
			Required:    true,
			Destination: &briefID,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "Output directory",
			Value:       ".",
			Destination: &outDir,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, contentCfg.Flags()...)
	flags = append(flags, reportCfg.Flags()...)

	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Write the supplier response report of a closed brief to a file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cutover, err := reportCfg.Cutover()
			if err != nil {
				return err
			}

			logging.Default().Info("Exporting supplier responses",
				"brief_id", briefID,
				"lot", lot,
				"repository", repoCfg,
				"content_dir", contentCfg.Dir(),
				"evidence_cutover", cutover.Format(time.DateOnly))

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo,
				usecase.WithContent(contentCfg.Configure()),
				usecase.WithEvidenceCutover(cutover))

			doc, err := uc.Response.DownloadResponses(ctx, usecase.BriefRef{
				Framework: framework,
				Lot:       lot,
				BriefID:   briefID,
				BuyerID:   buyerID,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to export responses", goerr.V("brief_id", briefID))
			}

			path := filepath.Join(outDir, doc.Filename)
			if err := os.WriteFile(path, doc.Body, 0o600); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("path", path))
			}

			logging.Default().Info("Report exported",
				"path", path,
				"format", doc.Format.String(),
				"rows", doc.Rows)
			return nil
		},
	}
}
