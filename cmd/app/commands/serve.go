package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Service is a server with a blocking Start and a graceful Shutdown.
type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Runner is a background worker that returns once ctx is done.
type Runner interface {
	Run(ctx context.Context) error
}

// RunServices starts every service and runner and blocks until ctx is done or
// one of them fails. Services are then shut down within shutdownTimeout.
func RunServices(
	ctx context.Context,
	logger *slog.Logger,
	shutdownTimeout time.Duration,
	services []Service,
	runners ...Runner,
) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, service := range services {
		g.Go(func() error {
			return service.Start(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := service.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		})
	}

	for _, runner := range runners {
		g.Go(func() error {
			return runner.Run(gctx)
		})
	}

	err := g.Wait()
	if err != nil {
		logger.Error("service error, shut down", slog.Any("error", err))
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// RunWatch feeds the system clipboard into the history until ctx is done.
// The local API and metrics server run alongside when given.
func RunWatch(
	ctx context.Context,
	watcher Runner,
	services []Service,
	logger *slog.Logger,
	shutdownTimeout time.Duration,
) error {
	logger.Info("watching clipboard", slog.Int("services", len(services)))
	return RunServices(ctx, logger, shutdownTimeout, services, watcher)
}
