// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/clstr"
	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/log"
	"github.com/tfctl/clstrctl/internal/meta"
	"github.com/tfctl/clstrctl/internal/output"
)

// StatsRow summarizes one report.
type StatsRow struct {
	File       string `json:"file"`
	Clusters   int    `json:"clusters"`
	Members    int    `json:"members"`
	Singletons int    `json:"singletons"`
	Largest    int    `json:"largest"`
	Bytes      int64  `json:"bytes"`
}

var statsColumns = []string{"file", "clusters", "members", "singletons", "largest", "bytes"}

func summarize(file string, p clstr.Partition, n int64) StatsRow {
	row := StatsRow{File: file, Clusters: len(p), Bytes: n}
	for _, c := range p {
		row.Members += len(c)
		if len(c) == 1 {
			row.Singletons++
		}
		row.Largest = max(row.Largest, len(c))
	}
	return row
}

// humanizeStats rewrites counts and sizes for the text table.
func humanizeStats(rows []map[string]interface{}) {
	for _, row := range rows {
		for _, col := range []string{"clusters", "members", "singletons", "largest"} {
			if v, ok := row[col].(float64); ok {
				row[col] = humanize.Comma(int64(v))
			}
		}
		if v, ok := row["bytes"].(float64); ok {
			row["bytes"] = humanize.Bytes(uint64(v))
		}
	}
}

// statsCommandAction summarizes each named report. The first unreadable
// input aborts the command.
func statsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	config.Config.Namespace = "stats"

	if cmd.NArg() == 0 {
		return cli.Exit("Usage: "+cmd.UsageText, 2)
	}

	if err := stdinOnce(cmd.Args().Slice()...); err != nil {
		return err
	}

	rows := make([]StatsRow, 0, cmd.NArg())
	for _, name := range cmd.Args().Slice() {
		p, n, err := readPartition(ctx, m, name)
		if err != nil {
			return err
		}
		rows = append(rows, summarize(name, p, n))
		log.Debugf("stats: input=%s clusters=%d bytes=%d", name, len(p), n)
	}

	opts := output.OptionsFromCommand(cmd)
	return spitRows(m, rows, statsColumns, opts, humanizeStats)
}

// statsCommandBuilder constructs the "stats" subcommand.
func statsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "summarize cluster reports",
		UsageText: "clstrctl stats <file.clstr>...",
		Metadata:  map[string]any{"meta": meta},
		Flags:     NewOutputFlags("stats"),
		Action:    statsCommandAction,
	}
}
