package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/celox/clipvault/cmd/app/commands"
	"github.com/celox/clipvault/internal/app"
)

func getClipCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "add",
			Usage:     "Add text to the history (reads stdin when no text is given)",
			ArgsUsage: "[text]",
			Flags:     []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					clips, err := container.ClipUseCase()
					if err != nil {
						return err
					}
					return commands.RunAdd(
						ctx,
						clips,
						container.Logger(),
						commands.DefaultIO(),
						cmd.Args().First(),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "list",
			Usage: "List the history, pinned clips first",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "query",
					Aliases: []string{"q"},
					Usage:   "Only list clips containing this text",
				},
				&cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"l"},
					Value:   50,
					Usage:   "Maximum number of clips (0 lists all)",
				},
				&cli.IntFlag{
					Name:  "offset",
					Usage: "Number of clips to skip",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					clips, err := container.ClipUseCase()
					if err != nil {
						return err
					}
					return commands.RunList(
						ctx,
						clips,
						commands.DefaultIO().Writer,
						cmd.String("query"),
						int(cmd.Int("limit")),
						int(cmd.Int("offset")),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:      "delete",
			Usage:     "Delete a clip (undo restores it)",
			ArgsUsage: "<id>",
			Flags:     []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				ids, err := parseIDs(cmd.Args().Slice())
				if err != nil {
					return err
				}
				if len(ids) != 1 {
					return fmt.Errorf("delete takes exactly one clip id")
				}
				return withContainer(ctx, func(container *app.Container) error {
					clips, err := container.ClipUseCase()
					if err != nil {
						return err
					}
					secrets, err := container.SecretStore()
					if err != nil {
						return err
					}
					return commands.RunDelete(
						ctx,
						clips,
						secrets,
						container.Logger(),
						commands.DefaultIO().Writer,
						ids[0],
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "undo",
			Usage: "Restore the last deleted clip",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					clips, err := container.ClipUseCase()
					if err != nil {
						return err
					}
					secrets, err := container.SecretStore()
					if err != nil {
						return err
					}
					return commands.RunUndo(ctx, clips, secrets, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
		{
			Name:      "pin",
			Usage:     "Toggle the pin of a clip, or set it on several clips with --set",
			ArgsUsage: "<id> [id...]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "set",
					Usage: "Pin (--set) or unpin (--set=false) every given clip instead of toggling",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				ids, err := parseIDs(cmd.Args().Slice())
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					return fmt.Errorf("at least one clip id is required")
				}
				if !cmd.IsSet("set") && len(ids) > 1 {
					return fmt.Errorf("toggling takes exactly one clip id; use --set for several")
				}
				return withContainer(ctx, func(container *app.Container) error {
					clips, err := container.ClipUseCase()
					if err != nil {
						return err
					}
					writer := commands.DefaultIO().Writer
					if cmd.IsSet("set") {
						return commands.RunSetPinned(ctx, clips, writer, ids, cmd.Bool("set"), cmd.String("format"))
					}
					return commands.RunTogglePin(ctx, clips, writer, ids[0], cmd.String("format"))
				})
			},
		},
		{
			Name:  "clear",
			Usage: "Delete every unpinned clip",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					clips, err := container.ClipUseCase()
					if err != nil {
						return err
					}
					return commands.RunClear(
						ctx,
						clips,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "cleanup",
			Usage: "Delete unpinned clips older than the auto-cleanup retention",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "days",
					Aliases: []string{"d"},
					Usage:   "Store a new retention in days before cleaning up (0 disables auto-cleanup)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					clips, err := container.ClipUseCase()
					if err != nil {
						return err
					}
					prefs, err := container.Preferences()
					if err != nil {
						return err
					}
					return commands.RunCleanup(
						ctx,
						clips,
						prefs,
						container.Logger(),
						commands.DefaultIO().Writer,
						commands.CleanupOptions{
							Days:    int(cmd.Int("days")),
							DaysSet: cmd.IsSet("days"),
							Format:  cmd.String("format"),
							Now:     time.Now,
						},
					)
				})
			},
		},
	}
}

// parseIDs converts positional arguments into positive clip ids.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid clip id %q: must be a positive integer", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
