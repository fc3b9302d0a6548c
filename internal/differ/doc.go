// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two cluster partitions by membership only. Each
// partition is reduced to a set of member sets, so cluster order, numbering,
// member order, length annotations and the representative marker have no
// effect. Clusters present on one side only are reported whole; there is no
// fuzzy matching of near-identical clusters.
package differ
