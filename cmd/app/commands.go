package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/celox/clipvault/cmd/app/commands"
	"github.com/celox/clipvault/internal/app"
	"github.com/celox/clipvault/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getClipCommands()...)
	cmds = append(cmds, getBackupCommands()...)
	cmds = append(cmds, getLockCommands())
	return cmds
}

// withContainer loads and validates the configuration, builds the container,
// and shuts it down once fn returns.
func withContainer(ctx context.Context, fn func(container *app.Container) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	container := app.NewContainer(cfg)
	defer commands.CloseContainer(container, container.Logger())

	return fn(container)
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}
