// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other clstrctl packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the module version stamped by the go tool. Local builds report
// "dev", suffixed with the short VCS revision when one was recorded.
var Version = fromBuildInfo(debug.ReadBuildInfo())

func fromBuildInfo(info *debug.BuildInfo, ok bool) string {
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return "dev+" + s.Value[:7]
		}
	}
	return "dev"
}
