// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output sorts and renders the row datasets produced by the listing
// commands as text tables, JSON or YAML.
package output
