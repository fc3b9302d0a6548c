// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"fmt"
	"io"

	"github.com/tfctl/clstrctl/clstr"
	"github.com/tfctl/clstrctl/internal/log"
)

// Exit codes shared by clstr-diff and clstrctl diff.
const (
	ExitEqual     = 0
	ExitDifferent = 1
	ExitError     = 2
)

// DefaultLimit is how many clusters per side a text report lists.
const DefaultLimit = 10

// EqualMessage is printed to stdout when the partitions match.
const EqualMessage = "OK: cluster partitions are semantically equal."

// OpenFunc opens a named input for reading.
type OpenFunc func(ctx context.Context, name string) (io.ReadCloser, error)

// Report holds the clusters found on only one side of a comparison.
type Report struct {
	A, B         Canonical
	OnlyA, OnlyB []Set
}

// Equal reports whether the two partitions have the same member sets.
func (r Report) Equal() bool {
	return len(r.OnlyA) == 0 && len(r.OnlyB) == 0
}

// Compare canonicalizes both partitions and computes the directed
// differences.
func Compare(a, b clstr.Partition) Report {
	ca, cb := Canonicalize(a), Canonicalize(b)
	r := Report{A: ca, B: cb}
	if ca.Equal(cb) {
		return r
	}
	r.OnlyA = ca.Difference(cb)
	r.OnlyB = cb.Difference(ca)
	return r
}

// Files reads pathA then pathB with open and compares them. The first read
// failure is returned, naming its path, and nothing is compared.
func Files(ctx context.Context, open OpenFunc, pathA, pathB string) (Report, error) {
	a, err := readPartition(ctx, open, pathA)
	if err != nil {
		return Report{}, err
	}
	b, err := readPartition(ctx, open, pathB)
	if err != nil {
		return Report{}, err
	}

	r := Compare(a, b)
	log.Debugf("compared: a=%s clusters=%d b=%s clusters=%d onlyA=%d onlyB=%d",
		pathA, r.A.Len(), pathB, r.B.Len(), len(r.OnlyA), len(r.OnlyB))
	return r, nil
}

func readPartition(ctx context.Context, open OpenFunc, path string) (clstr.Partition, error) {
	rc, err := open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	defer rc.Close()

	p, err := clstr.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return p, nil
}

// WriteText writes the difference report, listing at most limit clusters
// per side (limit <= 0 lists all).
func (r Report) WriteText(w io.Writer, limit int) error {
	if _, err := fmt.Fprintln(w, "Differences found."); err != nil {
		return err
	}
	if err := writeSide(w, "---", "A", r.OnlyA, limit); err != nil {
		return err
	}
	return writeSide(w, "+++", "B", r.OnlyB, limit)
}

func writeSide(w io.Writer, marker, side string, sets []Set, limit int) error {
	if len(sets) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s present only in %s (%d clusters):\n", marker, side, len(sets)); err != nil {
		return err
	}

	shown := sets
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for i, s := range shown {
		if _, err := fmt.Fprintf(w, "  [%d] %s\n", i, s); err != nil {
			return err
		}
	}
	if more := len(sets) - len(shown); more > 0 {
		if _, err := fmt.Fprintf(w, "  ... (%d more)\n", more); err != nil {
			return err
		}
	}
	return nil
}
