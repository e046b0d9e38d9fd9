package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/bhrm-tools/npced/internal/config"
	"github.com/bhrm-tools/npced/internal/workspace"
)

func workspaceCommand() *cli.Command {
	return &cli.Command{
		Name:  "workspace",
		Usage: "Inspect and initialize the editor workspace file",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the current workspace",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := setup(cmd)
					if err != nil {
						return err
					}
					defer a.close()

					w, err := workspace.Load(config.GetString("workspaceFile"))
					if err != nil {
						return err
					}
					data, err := json.MarshalIndent(w, "", "  ")
					if err != nil {
						return err
					}
					fmt.Println(string(data))
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "Write a fresh workspace pointing at the selected command file",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := setup(cmd)
					if err != nil {
						return err
					}
					defer a.close()

					w := workspace.Default()
					w.MapFile = a.dataFile
					if err := w.Validate(); err != nil {
						return err
					}

					path := config.GetString("workspaceFile")
					if err := workspace.Save(path, w); err != nil {
						return err
					}
					fmt.Printf("workspace written to %s\n", path)
					return nil
				},
			},
		},
	}
}
