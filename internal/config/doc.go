// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for clstrctl's user
// configuration, a YAML document found at $CLSTRCTL_CFG_FILE or in the
// platform user configuration directory as clstrctl.yaml:
//   - Linux: $XDG_CONFIG_HOME/clstrctl.yaml or $HOME/.config/clstrctl.yaml
//   - macOS: $HOME/Library/Application Support/clstrctl.yaml
//   - Windows: %AppData%/clstrctl.yaml
//
// A missing file is not an error; every key then reads as absent.
package config
