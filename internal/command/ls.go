// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/clstr"
	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/log"
	"github.com/tfctl/clstrctl/internal/meta"
	"github.com/tfctl/clstrctl/internal/output"
	"github.com/tfctl/clstrctl/internal/source"
)

// ClusterRow is one cluster as listed by ls.
type ClusterRow struct {
	Cluster        int    `json:"cluster"`
	Size           int    `json:"size"`
	Representative string `json:"representative"`
	Members        string `json:"members"`
}

var lsColumns = []string{"cluster", "size", "representative", "members"}

// clusterRows numbers clusters by discovery order. Members are joined with
// commas.
func clusterRows(p clstr.Partition) []ClusterRow {
	rows := make([]ClusterRow, 0, len(p))
	for i, c := range p {
		row := ClusterRow{Cluster: i, Size: len(c), Members: strings.Join(c, ",")}
		if len(c) > 0 {
			row.Representative = c[0]
		}
		rows = append(rows, row)
	}
	return rows
}

// lsCommandAction lists the clusters of one report, reading stdin when no
// file is named.
func lsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	config.Config.Namespace = "ls"

	if cmd.NArg() > 1 {
		return cli.Exit("Usage: "+cmd.UsageText, 2)
	}
	name := source.Stdin
	if cmd.NArg() == 1 {
		name = cmd.Args().First()
	}

	p, _, err := readPartition(ctx, m, name)
	if err != nil {
		return err
	}
	log.Debugf("ls: input=%s clusters=%d", name, len(p))

	opts := output.OptionsFromCommand(cmd)
	opts.Header = fmt.Sprintf("Clusters in %s:", name)
	if !opts.Titles {
		opts.Header = ""
	}
	return spitRows(m, clusterRows(p), lsColumns, opts)
}

// lsCommandBuilder constructs the "ls" subcommand.
func lsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list the clusters of a report",
		UsageText: "clstrctl ls [file.clstr]",
		Metadata:  map[string]any{"meta": meta},
		Flags:     NewOutputFlags("ls"),
		Action:    lsCommandAction,
	}
}
