package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/celox/clipvault/cmd/app/commands"
	"github.com/celox/clipvault/internal/app"
)

func passwordFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   usage + " (prompted for when omitted)",
		Sources: cli.EnvVars("CLIPVAULT_BACKUP_PASSWORD"),
	}
}

func getBackupCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "export",
			Usage:     "Export the history into a password-protected .cvbk file",
			ArgsUsage: "[path]",
			Flags:     []cli.Flag{passwordFlag("Backup password"), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					backups, err := container.BackupUseCase()
					if err != nil {
						return err
					}
					return commands.RunExport(
						ctx,
						backups,
						container.Logger(),
						commands.DefaultIO(),
						cmd.Args().First(),
						cmd.String("password"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:      "import",
			Usage:     "Import the clips of a .cvbk file that are not yet in the history",
			ArgsUsage: "<path>",
			Flags:     []cli.Flag{passwordFlag("Backup password"), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					backups, err := container.BackupUseCase()
					if err != nil {
						return err
					}
					return commands.RunImport(
						ctx,
						backups,
						container.Logger(),
						commands.DefaultIO(),
						cmd.Args().First(),
						cmd.String("password"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
