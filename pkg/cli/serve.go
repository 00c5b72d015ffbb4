package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/cli/config"
	controller "github.com/m-mizutani/roboto/pkg/controller/http"
	"github.com/m-mizutani/roboto/pkg/controller/poller"
	gitinfra "github.com/m-mizutani/roboto/pkg/infra/git"
	githubinfra "github.com/m-mizutani/roboto/pkg/infra/github"
	recipeinfra "github.com/m-mizutani/roboto/pkg/infra/recipe"
	"github.com/m-mizutani/roboto/pkg/usecase"
	"github.com/m-mizutani/roboto/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		pollerCfg config.Poller
		toolsCfg  config.Tools
		sentryCfg config.Sentry
	)

	flags := serverCfg.Flags()
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, pollerCfg.Flags()...)
	flags = append(flags, toolsCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the notification poller and health endpoint",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			logger.Info("Starting roboto",
				slog.String("addr", serverCfg.Addr),
				slog.String("bot_name", githubCfg.BotName),
				slog.Duration("poll_interval", pollerCfg.Interval),
			)

			ghClient, err := githubinfra.NewClient(githubCfg.Token,
				githubinfra.WithBaseURL(githubCfg.BaseURL),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			showReqs := usecase.NewShowRequirements(
				ghClient,
				gitinfra.NewCloner(toolsCfg.GitPath, toolsCfg.ExecTimeout),
				recipeinfra.NewRenderer(toolsCfg.CondaPath, toolsCfg.ExecTimeout),
				recipeinfra.NewDownloader(toolsCfg.ExecTimeout),
				recipeinfra.NewGenerator(toolsCfg.GrayskullPath, toolsCfg.Strict, toolsCfg.ExecTimeout),
			)

			dispatcher := usecase.NewDispatcher(ghClient)
			if err := dispatcher.Register(usecase.ShowRequirementsPattern(githubCfg.BotName), showReqs); err != nil {
				return err
			}

			server := controller.NewServer(ctx, controller.WithAddr(serverCfg.Addr))
			async.Run(ctx, "http-server", func(ctx context.Context) error {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "HTTP server error")
				}
				return nil
			})

			notifyPoller := poller.New(ghClient, dispatcher, pollerCfg.Interval)
			pollerDone := async.Run(ctx, "notification-poller", notifyPoller.Run)

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case <-pollerDone:
				logger.Info("Poller exited, shutting down...")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
