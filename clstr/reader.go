// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package clstr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	clusterPrefix = ">Cluster"
	idTerminator  = "..."
	memberMarker  = '>'
)

// Cluster is the ordered member list of one block. Index 0 is the
// representative by convention; the parser does not check it.
type Cluster []string

// Partition is every cluster of one report in the order they were found.
// Cluster numbers from the header lines are not kept.
type Partition []Cluster

// Parse reads a .clstr report from r. It only fails when r does; malformed
// text yields a best-effort (possibly empty) Partition.
func Parse(r io.Reader) (Partition, error) {
	br := bufio.NewReader(r)

	var (
		clusters Partition
		current  Cluster
	)

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read cluster report: %w", err)
		}
		eof := err != nil

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		switch {
		case line == "":
		case strings.HasPrefix(line, clusterPrefix):
			if len(current) > 0 {
				clusters = append(clusters, current)
				current = nil
			}
		default:
			if id, ok := memberID(line); ok {
				current = append(current, id)
			}
		}

		if eof {
			break
		}
	}

	if len(current) > 0 {
		clusters = append(clusters, current)
	}

	return clusters, nil
}

// ReadFile parses the report stored at path.
func ReadFile(path string) (Partition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// memberID extracts the identifier from a member line such as
// "1\t140nt, >seqB..." and reports false when the line has no '>'.
func memberID(line string) (string, bool) {
	start := strings.IndexByte(line, memberMarker)
	if start < 0 {
		return "", false
	}

	id := line[start+1:]
	if end := strings.Index(id, idTerminator); end >= 0 {
		id = id[:end]
	}

	return strings.TrimRight(strings.TrimSpace(id), ","), true
}
