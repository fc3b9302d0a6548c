// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package clstr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrFinished is returned by a Writer after Finish has been called.
var ErrFinished = errors.New("clstr writer already finished")

// Unit selects the length annotation printed in front of each member.
type Unit int

const (
	// UnitNone omits the length segment entirely.
	UnitNone Unit = iota
	// UnitNucleotide prints lengths as "150nt, ".
	UnitNucleotide
	// UnitAminoAcid prints lengths as "300aa, ".
	UnitAminoAcid
)

// String returns the suffix used in the report, or "none".
func (u Unit) String() string {
	switch u {
	case UnitNucleotide:
		return "nt"
	case UnitAminoAcid:
		return "aa"
	default:
		return "none"
	}
}

// annotates reports whether u prints a length segment.
func (u Unit) annotates() bool {
	return u == UnitNucleotide || u == UnitAminoAcid
}

// ParseUnit maps "nt", "aa" and "none" (case-insensitive, "" meaning none)
// to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nt":
		return UnitNucleotide, nil
	case "aa":
		return UnitAminoAcid, nil
	case "", "none":
		return UnitNone, nil
	}
	return UnitNone, fmt.Errorf("unknown length unit %q: must be one of [nt aa none]", s)
}

// Writer emits .clstr blocks to a buffered destination. It keeps no cluster
// state between calls. Finish must be called to flush the output.
type Writer struct {
	out      *bufio.Writer
	closer   io.Closer
	name     string
	finished bool
}

// Create truncates or creates path and returns a Writer that owns it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return &Writer{
		out:    bufio.NewWriter(f),
		closer: f,
		name:   path,
	}, nil
}

// NewWriter returns a Writer over w. Finish flushes w but does not close it.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		out:  bufio.NewWriter(w),
		name: "stream",
	}
}

// WriteCluster appends one block. id is printed verbatim; members are
// indices into headers (and lengths), representative first. A length is
// printed only when lengths has an entry at the index and unit is
// UnitNucleotide or UnitAminoAcid. Indices outside headers panic.
func (w *Writer) WriteCluster(id int, members []int, headers []string, lengths []uint32, unit Unit) error {
	if w.finished {
		return ErrFinished
	}

	line := make([]byte, 0, 64)
	line = append(line, clusterPrefix...)
	line = append(line, ' ')
	line = strconv.AppendInt(line, int64(id), 10)
	line = append(line, '\n')

	for pos, idx := range members {
		line = strconv.AppendInt(line, int64(pos), 10)
		line = append(line, '\t')

		if idx < len(lengths) && unit.annotates() {
			line = strconv.AppendUint(line, uint64(lengths[idx]), 10)
			line = append(line, unit.String()...)
			line = append(line, ", "...)
		}

		line = append(line, memberMarker)
		line = append(line, headers[idx]...)
		line = append(line, idTerminator...)
		if pos == 0 {
			line = append(line, " *"...)
		}
		line = append(line, '\n')
	}

	if _, err := w.out.Write(line); err != nil {
		return fmt.Errorf("failed to write cluster %d to %s: %w", id, w.name, err)
	}
	return nil
}

// Finish flushes buffered output and closes a destination opened by Create.
// The Writer cannot be used afterwards.
func (w *Writer) Finish() error {
	if w.finished {
		return ErrFinished
	}
	w.finished = true

	err := w.out.Flush()
	if err != nil {
		err = fmt.Errorf("failed to flush %s: %w", w.name, err)
	}

	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", w.name, cerr)
		}
	}
	return err
}
