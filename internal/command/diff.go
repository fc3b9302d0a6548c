// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/differ"
	"github.com/tfctl/clstrctl/internal/log"
	"github.com/tfctl/clstrctl/internal/meta"
)

// diffCommandAction compares two cluster reports. Semantic inequality is
// returned as a silent cli.Exit carrying differ.ExitDifferent.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	config.Config.Namespace = "diff"

	if cmd.NArg() != 2 {
		return cli.Exit("Usage: "+cmd.UsageText, differ.ExitError)
	}
	pathA, pathB := cmd.Args().Get(0), cmd.Args().Get(1)
	if err := stdinOnce(pathA, pathB); err != nil {
		return err
	}
	log.Debugf("diff: a=%s b=%s limit=%d delta=%t", pathA, pathB, cmd.Int("limit"), cmd.Bool("delta"))

	opts := differ.RunOptions{
		Limit: cmd.Int("limit"),
		Delta: cmd.Bool("delta"),
		Color: cmd.Bool("color"),
	}
	if code := differ.Run(ctx, m.Opener.Open, pathA, pathB, m.Stdout, m.Stderr, opts); code != differ.ExitEqual {
		return cli.Exit("", code)
	}
	return nil
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two cluster reports as partitions",
		UsageText: "clstrctl diff <orig.clstr> <new.clstr>",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "color the delta",
				Value:   false,
			},
			&cli.BoolFlag{
				Name:    "delta",
				Aliases: []string{"d"},
				Usage:   "append a structural delta of the differing clusters",
				Value:   false,
			},
			NewLimitFlag(),
		},
		Action: diffCommandAction,
	}
}
