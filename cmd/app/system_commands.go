package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/celox/clipvault/cmd/app/commands"
	"github.com/celox/clipvault/internal/app"
)

const shutdownTimeout = 10 * time.Second

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Run the storage migration and apply the database schema",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					migration, err := container.MigrationUseCase()
					if err != nil {
						return err
					}
					keystore, err := container.Keystore()
					if err != nil {
						return err
					}

					if err := commands.RunMigrate(
						ctx,
						migration,
						keystore,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("format"),
					); err != nil {
						return err
					}

					// Opening the database applies the schema.
					_, err = container.Database()
					return err
				})
			},
		},
		{
			Name:  "server",
			Usage: "Serve the local API",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					gin.SetMode(container.Config().GetGinMode())
					container.Logger().Info("starting server", slog.String("version", version))

					ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer cancel()

					services, err := servicesOf(ctx, container, true)
					if err != nil {
						return err
					}

					return commands.RunServices(ctx, container.Logger(), shutdownTimeout, services)
				})
			},
		},
		{
			Name:  "watch",
			Usage: "Record the system clipboard into the history",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "serve",
					Usage: "Also serve the local API",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					gin.SetMode(container.Config().GetGinMode())

					ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer cancel()

					if err := runAutoCleanup(ctx, container); err != nil {
						container.Logger().Warn("auto-cleanup failed", slog.Any("error", err))
					}

					watcher, err := container.ClipboardWatcher()
					if err != nil {
						return err
					}

					services, err := servicesOf(ctx, container, cmd.Bool("serve"))
					if err != nil {
						return err
					}

					return commands.RunWatch(ctx, watcher, services, container.Logger(), shutdownTimeout)
				})
			},
		},
	}
}

// servicesOf returns the local API server when withAPI is set and the metrics server when enabled.
func servicesOf(ctx context.Context, container *app.Container, withAPI bool) ([]commands.Service, error) {
	var services []commands.Service

	if withAPI {
		server, err := container.HTTPServer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize HTTP server: %w", err)
		}
		services = append(services, server)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		services = append(services, metricsServer)
	}

	return services, nil
}

// runAutoCleanup applies the stored auto-cleanup retention once.
func runAutoCleanup(ctx context.Context, container *app.Container) error {
	clips, err := container.ClipUseCase()
	if err != nil {
		return err
	}
	prefs, err := container.Preferences()
	if err != nil {
		return err
	}
	return commands.RunCleanup(ctx, clips, prefs, container.Logger(), io.Discard, commands.CleanupOptions{Format: "text"})
}
