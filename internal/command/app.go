// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/log"
	"github.com/tfctl/clstrctl/internal/meta"
	"github.com/tfctl/clstrctl/internal/source"
	"github.com/tfctl/clstrctl/internal/version"
)

// InitApp builds the clstrctl root command. Nil streams default to the
// process's stdout and stderr.
func InitApp(stdout, stderr io.Writer) *cli.Command {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	// A missing config file just means every key falls back to its default.
	if _, err := config.Load(); err != nil {
		log.Debugf("no config: err=%v", err)
	}

	m := meta.Meta{
		Opener: &source.Opener{},
		Stdout: stdout,
		Stderr: stderr,
	}

	app := &cli.Command{
		Name:      "clstrctl",
		Usage:     "CD-HIT cluster report control",
		Version:   version.Version,
		Writer:    stdout,
		ErrWriter: stderr,
		// Exit codes are mapped by the caller.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	app.Commands = append(app.Commands,
		diffCommandBuilder(m),
		lsCommandBuilder(m),
		rewriteCommandBuilder(m),
		statsCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}

// GetMeta returns the Meta stored on a subcommand by its builder.
func GetMeta(cmd *cli.Command) meta.Meta {
	return cmd.Metadata["meta"].(meta.Meta)
}

// StdinSafeArgs rewrites a subcommand invocation that names "-" as a
// positional argument so the parser keeps it: flags and their values are
// moved ahead of a "--" and every positional follows it in order. Other
// invocations are returned unchanged.
func StdinSafeArgs(app *cli.Command, args []string) []string {
	if len(args) < 3 {
		return args
	}
	sub := app.Command(args[1])
	if sub == nil {
		return args
	}

	var (
		flags       []string
		positionals []string
		stdin       bool
	)
	for i := 2; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			positionals = append(positionals, args[i+1:]...)
			i = len(args)
		case len(a) > 1 && strings.HasPrefix(a, "-"):
			flags = append(flags, a)
			name := strings.TrimLeft(a, "-")
			if !strings.Contains(name, "=") && takesValue(sub, name) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			positionals = append(positionals, a)
		}
	}
	for _, p := range positionals {
		stdin = stdin || p == source.Stdin
	}
	if !stdin {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[:2]...)
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, positionals...)
}

// takesValue reports whether the named flag of cmd consumes the following
// argument. Unknown flags are left for the parser to reject.
func takesValue(cmd *cli.Command, name string) bool {
	for _, f := range cmd.Flags {
		for _, n := range f.Names() {
			if n != name {
				continue
			}
			_, isBool := f.(*cli.BoolFlag)
			return !isBool
		}
	}
	return false
}
