package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/bhrm-tools/npced/internal/config"
	"github.com/bhrm-tools/npced/internal/geo"
	"github.com/bhrm-tools/npced/internal/logging"
	"github.com/bhrm-tools/npced/internal/model"
	"github.com/bhrm-tools/npced/internal/parser"
	"github.com/bhrm-tools/npced/internal/scene"
	"github.com/bhrm-tools/npced/internal/storage"
	"github.com/bhrm-tools/npced/internal/telemetry"
	"github.com/bhrm-tools/npced/internal/util"
)

func fmtCommand() *cli.Command {
	return &cli.Command{
		Name:  "fmt",
		Usage: "Rewrite the command file in canonical form",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Exit non-zero if the file is not canonical, without writing",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.loadSession(); err != nil {
				return err
			}

			canonical := parser.Serialize(a.sess.Points())
			a.metrics.RecordSerialize(ctx, a.sess.File())

			if cmd.Bool("check") {
				current, err := storage.ReadCommandFile(a.sess.File())
				if err != nil {
					return err
				}
				if current != canonical {
					return fmt.Errorf("%s is not canonically formatted", a.sess.File())
				}
				fmt.Println("ok")
				return nil
			}

			if err := a.sess.Save(); err != nil {
				return err
			}
			fmt.Printf("formatted %s\n", a.sess.File())
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all records with their indices",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Include raw passthrough lines",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.loadSession(); err != nil {
				return err
			}

			for i, pt := range a.sess.Points() {
				if pt.IsRaw() && !cmd.Bool("raw") {
					continue
				}
				fmt.Printf("%4d  %-20s %s\n", i, displayPath(pt.Path), parser.FormatCommandLine(pt))
			}
			return nil
		},
	}
}

func treeCommand() *cli.Command {
	return &cli.Command{
		Name:  "tree",
		Usage: "Show the folder tree with point counts",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.loadSession(); err != nil {
				return err
			}

			points := a.sess.Points()
			root := scene.BuildTree(points)
			printNode(root, points, 0)
			return nil
		},
	}
}

func printNode(n *scene.Node, points []model.Point, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Name != "" {
		fmt.Printf("%s%s/ (%d)\n", indent, n.Name, n.PointCount())
		indent += "  "
	}
	for _, ref := range n.Points {
		pt := points[ref.Index]
		if pt.IsRaw() {
			fmt.Printf("%s- %s\n", indent, pt.Raw)
			continue
		}
		fmt.Printf("%s- %s %s\n", indent, pt.Type, util.FormatFloat(pt.Position.X)+","+
			util.FormatFloat(pt.Position.Y)+","+util.FormatFloat(pt.Position.Z))
	}
	for _, child := range n.Children {
		printNode(child, points, depth+1)
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Print parse statistics, type breakdown, and world extents",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			stats, err := a.sess.Load(a.dataFile)
			if err != nil {
				return err
			}
			points := a.sess.Points()

			a.metrics.RecordParse(ctx, a.sess.File(),
				stats.Lines, stats.Spawns, stats.Raws, stats.NearMisses)

			fmt.Printf("file:        %s\n", a.sess.File())
			fmt.Printf("lines:       %d\n", stats.Lines)
			fmt.Printf("directives:  %d\n", stats.Directives)
			fmt.Printf("spawns:      %d\n", stats.Spawns)
			fmt.Printf("raw lines:   %d\n", stats.Raws)
			fmt.Printf("near misses: %d\n", stats.NearMisses)

			counts := map[string]int{}
			for _, pt := range points {
				if pt.IsSpawn() {
					counts[pt.Type]++
				}
			}
			fmt.Println("types:")
			for _, typ := range scene.UniqueTypes(points) {
				fmt.Printf("  %-20s %d\n", typ, counts[typ])
			}

			env, err := geo.Footprint(points)
			if err != nil {
				a.logger.Warn("world extent unavailable", "error", err)
			} else if lo, hi, ok := env.MinMaxXYs(); ok {
				fmt.Printf("extent:      x %s..%s  z %s..%s\n",
					util.FormatFloat(lo.X), util.FormatFloat(hi.X),
					util.FormatFloat(lo.Y), util.FormatFloat(hi.Y))
			}

			if config.GetBool("influx.enabled") {
				influx := telemetry.NewInfluxManager(
					logging.NewComponentLogger("influx", os.Stderr),
					filepath.Join(config.GetString("logsDir"), "influx_backup.gz"),
				)
				if err := influx.Connect(); err == nil {
					defer influx.Close()
					if err := influx.WriteSessionStats(a.sess.File(),
						stats.Spawns, stats.Raws, stats.NearMisses); err != nil {
						a.logger.Warn("failed to write session stats", "error", err)
					}
				}
			}
			return nil
		},
	}
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
