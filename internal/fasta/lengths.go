// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package fasta extracts per-record sequence lengths from FASTA input, which
// is all the clstr writer needs to annotate members.
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Lengths maps each record ID (the first whitespace-separated field of the
// header) to its residue count. Whitespace inside sequence lines is not
// counted. A repeated ID keeps its first length.
func Lengths(r io.Reader) (map[string]uint32, error) {
	br := bufio.NewReader(r)
	lengths := make(map[string]uint32)

	var (
		id      string
		n       uint64
		inRec   bool
		lineNum int
	)

	flush := func() error {
		if !inRec {
			return nil
		}
		if n > uint64(^uint32(0)) {
			return fmt.Errorf("record %s: length %d overflows uint32", id, n)
		}
		if _, dup := lengths[id]; !dup {
			lengths[id] = uint32(n)
		}
		return nil
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read fasta: %w", err)
		}
		eof := err != nil
		lineNum++

		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, ">") {
			if ferr := flush(); ferr != nil {
				return nil, ferr
			}
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("line %d: empty fasta header", lineNum)
			}
			id, n, inRec = fields[0], 0, true
		} else if inRec {
			for _, f := range strings.Fields(line) {
				n += uint64(len(f))
			}
		}

		if eof {
			break
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return lengths, nil
}
