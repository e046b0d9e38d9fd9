package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "npced",
		Usage: "Inspect, normalize, and version NPC spawn command files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Directory containing npced.cfg.json",
				Value:   ".",
				Sources: cli.EnvVars("NPCED_CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Command file to operate on (defaults to dataFile from config)",
				Sources: cli.EnvVars("NPCED_DATA_FILE"),
			},
		},
		Commands: []*cli.Command{
			fmtCommand(),
			listCommand(),
			treeCommand(),
			statsCommand(),
			historyCommand(),
			watchCommand(),
			workspaceCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("npced error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
