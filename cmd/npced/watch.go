package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/bhrm-tools/npced/internal/watcher"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Follow the command file and report parse stats on every change",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.loadSession(); err != nil {
				return err
			}
			printStats(a)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watcher.Watch(ctx, a.sess.File(), a.logger, func() {
				if _, err := a.sess.Reload(); err != nil {
					a.logger.Error("reload failed", "error", err)
					return
				}
				printStats(a)
			})
		},
	}
}

func printStats(a *app) {
	stats := a.sess.LastStats()
	fmt.Printf("%s: %d spawns, %d raw, %d near misses\n",
		a.sess.File(), stats.Spawns, stats.Raws, stats.NearMisses)
}
