// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"io"

	"github.com/tfctl/clstrctl/internal/source"
)

// Meta contains runtime state shared by commands: the input opener and the
// output streams.
type Meta struct {
	Opener *source.Opener
	Stdout io.Writer
	Stderr io.Writer
}
