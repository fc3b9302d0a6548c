// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/clstr"
	"github.com/tfctl/clstrctl/internal/differ"
	"github.com/tfctl/clstrctl/internal/meta"
	"github.com/tfctl/clstrctl/internal/output"
	"github.com/tfctl/clstrctl/internal/source"
)

// readPartition parses the named input through the command's opener,
// returning the byte count read alongside the partition.
func readPartition(ctx context.Context, m meta.Meta, name string) (clstr.Partition, int64, error) {
	rc, err := m.Opener.Open(ctx, name)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading %s: %w", name, err)
	}
	defer rc.Close()

	cr := &source.CountingReader{R: rc}
	p, err := clstr.Parse(cr)
	if err != nil {
		return nil, cr.N, fmt.Errorf("error reading %s: %w", name, err)
	}
	return p, cr.N, nil
}

// spitRows marshals rows and hands them to output.Spit.
func spitRows(m meta.Meta, rows any, columns []string, opts output.Options, postProcess ...func([]map[string]interface{})) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	return output.Spit(raw, columns, opts, m.Stdout, postProcess...)
}

// stdinOnce rejects naming "-" for more than one input, since standard
// input can only be read once.
func stdinOnce(names ...string) error {
	n := 0
	for _, name := range names {
		if name == source.Stdin {
			n++
		}
	}
	if n > 1 {
		return cli.Exit("Error: standard input (-) can be read only once", differ.ExitError)
	}
	return nil
}
