package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/celox/clipvault/cmd/app/commands"
	"github.com/celox/clipvault/internal/app"
	applockUseCase "github.com/celox/clipvault/internal/applock/usecase"
)

// withAppLock runs fn with the app lock use case of a fresh container.
func withAppLock(ctx context.Context, fn func(appLock applockUseCase.AppLockUseCase) error) error {
	return withContainer(ctx, func(container *app.Container) error {
		appLock, err := container.AppLockUseCase()
		if err != nil {
			return err
		}
		return fn(appLock)
	})
}

func lockPasswordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   "App lock password (prompted for when omitted)",
	}
}

func getLockCommands() *cli.Command {
	return &cli.Command{
		Name:  "lock",
		Usage: "Manage the app lock",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the app lock state",
				Flags: []cli.Flag{formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withAppLock(ctx, func(appLock applockUseCase.AppLockUseCase) error {
						return commands.RunLockStatus(
							ctx,
							appLock,
							commands.DefaultIO().Writer,
							cmd.String("format"),
							time.Now(),
						)
					})
				},
			},
			{
				Name:  "enable",
				Usage: "Enable the app lock",
				Flags: []cli.Flag{
					lockPasswordFlag(),
					&cli.BoolFlag{
						Name:  "generate",
						Usage: "Generate a random password and print it once",
					},
					&cli.BoolFlag{
						Name:  "biometric",
						Usage: "Allow biometric unlock",
					},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withAppLock(ctx, func(appLock applockUseCase.AppLockUseCase) error {
						return commands.RunLockEnable(
							ctx,
							appLock,
							commands.DefaultIO(),
							cmd.String("password"),
							cmd.Bool("generate"),
							cmd.Bool("biometric"),
							cmd.String("format"),
						)
					})
				},
			},
			{
				Name:  "disable",
				Usage: "Disable the app lock",
				Flags: []cli.Flag{lockPasswordFlag(), formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withAppLock(ctx, func(appLock applockUseCase.AppLockUseCase) error {
						return commands.RunLockDisable(
							ctx,
							appLock,
							commands.DefaultIO(),
							cmd.String("password"),
							cmd.String("format"),
						)
					})
				},
			},
			{
				Name:  "unlock",
				Usage: "Verify the app lock password",
				Flags: []cli.Flag{lockPasswordFlag(), formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withAppLock(ctx, func(appLock applockUseCase.AppLockUseCase) error {
						return commands.RunLockUnlock(
							ctx,
							appLock,
							commands.DefaultIO(),
							cmd.String("password"),
							cmd.String("format"),
						)
					})
				},
			},
			{
				Name:  "password",
				Usage: "Change the app lock password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "old",
						Usage: "Current password (prompted for when omitted)",
					},
					&cli.StringFlag{
						Name:  "new",
						Usage: "New password (prompted for when omitted)",
					},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withAppLock(ctx, func(appLock applockUseCase.AppLockUseCase) error {
						return commands.RunLockChangePassword(
							ctx,
							appLock,
							commands.DefaultIO(),
							cmd.String("old"),
							cmd.String("new"),
							cmd.String("format"),
						)
					})
				},
			},
		},
	}
}
