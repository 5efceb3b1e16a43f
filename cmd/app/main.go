// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/awnumar/memguard"
	"github.com/urfave/cli/v3"

	apperrors "github.com/celox/clipvault/internal/errors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:     "clipvault",
		Usage:    "Encrypted clipboard history",
		Version:  version,
		Commands: getCommands(version),
	}

	err := cmd.Run(context.Background(), os.Args)
	// Wipe key material held in memguard enclaves before leaving.
	memguard.Purge()
	if err != nil {
		slog.Error("command failed", slog.String("code", apperrors.Code(err)), slog.Any("error", err))
		os.Exit(1)
	}
}
