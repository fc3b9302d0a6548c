// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the clstrctl command set. It wires flags,
// validators and actions for the diff, ls, stats and rewrite subcommands.
package command
