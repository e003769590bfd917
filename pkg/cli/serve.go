package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/cli/config"
	httpctrl "github.com/marketplace-labs/briefdesk/pkg/controller/http"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/usecase"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var repoCfg config.Repository
	var contentCfg config.Content
	var reportCfg config.Report
	var archiveCfg config.Archive
	var authCfg config.Auth
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("BRIEFDESK_ADDR"),
			Destination: &addr,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, contentCfg.Flags()...)
	flags = append(flags, reportCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			authUC, err := authCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			cutover, err := reportCfg.Cutover()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			reportArchive, closeArchive, err := archiveCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeArchive()

			ucOpts := []usecase.Option{
				usecase.WithAuth(authUC),
				usecase.WithContent(contentCfg.Configure()),
				usecase.WithEvidenceCutover(cutover),
			}
			if reportArchive != nil {
				ucOpts = append(ucOpts, usecase.WithArchive(reportArchive))
			}
			uc := usecase.New(repo, ucOpts...)

			var httpOpts []httpctrl.Options
			if pinger, ok := repo.(interfaces.Pinger); ok {
				httpOpts = append(httpOpts, httpctrl.WithPinger(pinger))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"repository", repoCfg,
					"evidence_cutover", cutover.Format(time.DateOnly))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
