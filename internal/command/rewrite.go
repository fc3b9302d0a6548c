// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/clstr"
	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/fasta"
	"github.com/tfctl/clstrctl/internal/log"
	"github.com/tfctl/clstrctl/internal/meta"
	"github.com/tfctl/clstrctl/internal/source"
)

// indexed is a partition flattened to the Writer's inputs: a header table
// of distinct identifiers and per-cluster indices into it.
type indexed struct {
	headers []string
	members [][]int
}

func indexPartition(p clstr.Partition) indexed {
	var (
		ix   = indexed{members: make([][]int, len(p))}
		seen = make(map[string]int)
	)
	for ci, c := range p {
		for _, id := range c {
			idx, ok := seen[id]
			if !ok {
				idx = len(ix.headers)
				seen[id] = idx
				ix.headers = append(ix.headers, id)
			}
			ix.members[ci] = append(ix.members[ci], idx)
		}
	}
	return ix
}

// lengthsFor aligns FASTA lengths with headers. Every header must have a
// length.
func lengthsFor(headers []string, byID map[string]uint32, fastaName string) ([]uint32, error) {
	lengths := make([]uint32, len(headers))
	for i, h := range headers {
		l, ok := byID[h]
		if !ok {
			return nil, fmt.Errorf("no sequence for %q in %s", h, fastaName)
		}
		lengths[i] = l
	}
	return lengths, nil
}

func readLengths(ctx context.Context, m meta.Meta, name string) (map[string]uint32, error) {
	rc, err := m.Opener.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	defer rc.Close()

	byID, err := fasta.Lengths(rc)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	return byID, nil
}

// rewriteCommandAction re-emits a report with sequential cluster ids,
// optionally annotating members with FASTA lengths.
func rewriteCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	config.Config.Namespace = "rewrite"

	if cmd.NArg() != 2 {
		return cli.Exit("Usage: "+cmd.UsageText, 2)
	}
	in, out := cmd.Args().Get(0), cmd.Args().Get(1)
	if err := stdinOnce(in, cmd.String("fasta")); err != nil {
		return err
	}

	unit, err := clstr.ParseUnit(cmd.String("unit"))
	if err != nil {
		return err
	}

	p, _, err := readPartition(ctx, m, in)
	if err != nil {
		return err
	}
	ix := indexPartition(p)

	var lengths []uint32
	if name := cmd.String("fasta"); name != "" {
		byID, err := readLengths(ctx, m, name)
		if err != nil {
			return err
		}
		if lengths, err = lengthsFor(ix.headers, byID, name); err != nil {
			return err
		}
	}
	log.Debugf("rewrite: in=%s out=%s clusters=%d headers=%d unit=%s lengths=%t",
		in, out, len(p), len(ix.headers), unit, lengths != nil)

	return writeIndexed(m, out, ix, lengths, unit)
}

func writeIndexed(m meta.Meta, out string, ix indexed, lengths []uint32, unit clstr.Unit) error {
	var w *clstr.Writer
	if out == source.Stdin {
		w = clstr.NewWriter(m.Stdout)
	} else {
		var err error
		if w, err = clstr.Create(out); err != nil {
			return err
		}
	}

	for id, members := range ix.members {
		if err := w.WriteCluster(id, members, ix.headers, lengths, unit); err != nil {
			_ = w.Finish()
			return err
		}
	}
	return w.Finish()
}

// rewriteCommandBuilder constructs the "rewrite" subcommand.
func rewriteCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "re-emit a report with sequential cluster ids",
		UsageText: "clstrctl rewrite <in.clstr> <out.clstr>",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "fasta",
				Aliases: []string{"f"},
				Usage:   "FASTA file supplying member lengths",
			},
			NewUnitFlag(),
		},
		Action: rewriteCommandAction,
	}
}
