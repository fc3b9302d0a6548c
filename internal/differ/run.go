// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"fmt"
	"io"
)

// RunOptions tunes the report Run prints.
type RunOptions struct {
	// Limit caps the clusters listed per side; <= 0 lists all.
	Limit int
	// Delta appends a structural delta of the differing clusters.
	Delta bool
	// Color colors the delta.
	Color bool
}

// Run compares pathA and pathB and reports on stdout and stderr, returning
// the process exit code: ExitEqual, ExitDifferent or ExitError.
func Run(ctx context.Context, open OpenFunc, pathA, pathB string, stdout, stderr io.Writer, opts RunOptions) int {
	r, err := Files(ctx, open, pathA, pathB)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}

	if r.Equal() {
		fmt.Fprintln(stdout, EqualMessage)
		return ExitEqual
	}

	if err := r.WriteText(stderr, opts.Limit); err != nil {
		return ExitError
	}
	if opts.Delta {
		if err := r.WriteDelta(stderr, opts.Color); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}
	}
	return ExitDifferent
}
