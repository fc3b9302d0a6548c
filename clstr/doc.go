// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package clstr reads and writes CD-HIT compatible .clstr cluster reports.
//
// A report is a sequence of blocks, each introduced by a ">Cluster N" header
// and followed by one member line per sequence:
//
//	>Cluster 0
//	0	150nt, >seqA... *
//	1	140nt, >seqB...
//
// The first member of a block is the representative and carries the " *"
// marker. The length segment ("150nt, ") is optional.
//
// Parsing is deliberately tolerant. The identifier of a member line is the
// text after its first '>' up to the first "..." (or end of line). Anything
// else on the line is ignored, and lines that fit no rule are dropped rather
// than reported.
package clstr
