// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// clstr-diff compares two CD-HIT cluster reports as partitions of sequence
// identifiers. It exits 0 when they are equal, 1 when they differ and 2 on
// usage or read errors. It takes no flags and reads no configuration.
package main

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/internal/differ"
	"github.com/tfctl/clstrctl/internal/log"
	"github.com/tfctl/clstrctl/internal/source"
)

const usage = "Usage: clstr-diff <orig.clstr> <new.clstr>"

func main() {
	os.Exit(realMain(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func realMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log.InitLoggerTo(stderr, "")

	code := differ.ExitError
	app := &cli.Command{
		Name:      "clstr-diff",
		UsageText: usage,
		Writer:    stdout,
		ErrWriter: stderr,
		// Paths beginning with "-" are paths.
		SkipFlagParsing: true,
		HideHelp:        true,
		HideVersion:     true,
		ExitErrHandler:  func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				io.WriteString(stderr, usage+"\n")
				return nil
			}
			code = differ.Run(ctx, openPath, cmd.Args().Get(0), cmd.Args().Get(1), stdout, stderr,
				differ.RunOptions{Limit: differ.DefaultLimit})
			return nil
		},
	}

	if err := app.Run(ctx, args); err != nil {
		log.Debugf("clstr-diff run err: err=%v", err)
		io.WriteString(stderr, usage+"\n")
		return differ.ExitError
	}
	return code
}

// openPath opens local files only; "-" and s3:// names are ordinary paths
// here.
func openPath(_ context.Context, name string) (io.ReadCloser, error) {
	return source.OpenFile(name)
}
