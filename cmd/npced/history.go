package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/bhrm-tools/npced/internal/config"
	"github.com/bhrm-tools/npced/internal/history"
	"github.com/bhrm-tools/npced/internal/logging"
	"github.com/bhrm-tools/npced/internal/parser"
	"github.com/bhrm-tools/npced/internal/storage"
)

func openHistory() (*history.Store, error) {
	if !config.GetBool("history.enabled") {
		return nil, fmt.Errorf("history is disabled in config")
	}

	manager := history.NewManager(logging.NewComponentLogger("history", os.Stderr))
	if err := manager.Connect(); err != nil {
		return nil, err
	}

	store := history.NewStore(manager)
	if err := store.Init(); err != nil {
		return nil, err
	}
	return store, nil
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Record, inspect, and restore command file revisions",
		Commands: []*cli.Command{
			{
				Name:  "record",
				Usage: "Snapshot the current command file as a new revision",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := setup(cmd)
					if err != nil {
						return err
					}
					defer a.close()

					if err := a.loadSession(); err != nil {
						return err
					}

					store, err := openHistory()
					if err != nil {
						return err
					}

					rev, err := store.Record(a.sess.File(), a.sess.Points())
					if err != nil {
						return err
					}
					if _, err := store.Prune(a.sess.File(), config.GetInt("history.keep")); err != nil {
						a.logger.Warn("failed to prune revisions", "error", err)
					}

					fmt.Printf("recorded revision %d (%d points)\n", rev.ID, rev.PointCount)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List revisions for the current command file",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := setup(cmd)
					if err != nil {
						return err
					}
					defer a.close()

					store, err := openHistory()
					if err != nil {
						return err
					}

					revs, err := store.List(a.dataFile, config.GetInt("history.keep"))
					if err != nil {
						return err
					}
					for _, rev := range revs {
						fmt.Printf("%5d  %s  %4d points  %3d raw\n",
							rev.ID, rev.CreatedAt.Format("2006-01-02 15:04:05"),
							rev.PointCount, rev.RawCount)
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "Print one revision as command file text",
				ArgsUsage: "<revision-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := setup(cmd)
					if err != nil {
						return err
					}
					defer a.close()

					id, err := revisionArg(cmd)
					if err != nil {
						return err
					}

					store, err := openHistory()
					if err != nil {
						return err
					}

					rev, err := store.Get(id)
					if err != nil {
						return err
					}
					points, err := rev.Points()
					if err != nil {
						return err
					}
					fmt.Print(parser.Serialize(points))
					return nil
				},
			},
			{
				Name:      "restore",
				Usage:     "Overwrite the command file with a stored revision",
				ArgsUsage: "<revision-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := setup(cmd)
					if err != nil {
						return err
					}
					defer a.close()

					id, err := revisionArg(cmd)
					if err != nil {
						return err
					}

					store, err := openHistory()
					if err != nil {
						return err
					}

					rev, err := store.Get(id)
					if err != nil {
						return err
					}
					points, err := rev.Points()
					if err != nil {
						return err
					}

					if err := storage.WriteCommandFile(a.dataFile, parser.Serialize(points)); err != nil {
						return err
					}
					a.logger.Info("revision restored",
						"revision", rev.ID, "file", a.dataFile, "points", len(points))
					fmt.Printf("restored revision %d to %s\n", rev.ID, a.dataFile)
					return nil
				},
			},
		},
	}
}

func revisionArg(cmd *cli.Command) (uint, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("revision id required")
	}
	var id uint
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid revision id %q", arg)
	}
	return id, nil
}
