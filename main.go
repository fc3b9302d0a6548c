// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/internal/command"
	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/differ"
	"github.com/tfctl/clstrctl/internal/log"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// expandSets replaces the first @name argument after the subcommand with
// the whitespace-split entries of the <subcommand>.<name> string list.
func expandSets(args []string, lookup func(key string) []string) []string {
	if len(args) < 3 {
		return args
	}

	for i := 2; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "@") || len(args[i]) == 1 {
			continue
		}

		var expanded []string
		for _, entry := range lookup(args[1] + "." + args[i][1:]) {
			expanded = append(expanded, strings.Fields(entry)...)
		}

		out := make([]string, 0, len(args)-1+len(expanded))
		out = append(out, args[:i]...)
		out = append(out, expanded...)
		return append(out, args[i+1:]...)
	}
	return args
}

func configSet(key string) []string {
	set, _ := config.GetStringSlice(key)
	return set
}

// exitCode maps an app error to the process exit code, reporting any
// message on stderr.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return ec.ExitCode()
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return differ.ExitError
}

func realMain() int {
	log.InitLogger(os.Getenv(log.EnvLevel))

	args := handleNakedCommand(os.Args)
	args = expandSets(args, configSet)
	log.Debugf("args captured: args=%v", args)

	app := command.InitApp(os.Stdout, os.Stderr)
	err := app.Run(ctx, command.StdinSafeArgs(app, args))
	if err != nil {
		log.Debugf("app run err: err=%v", err)
	}
	return exitCode(err, os.Stderr)
}
