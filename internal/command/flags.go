// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/clstr"
	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/differ"
)

// NewOutputFlags returns the flags shared by the listing commands. ns is the
// config namespace consulted for a default sort.
func NewOutputFlags(ns string) (flags []cli.Flag) {
	sortFlag := &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "comma-separated list of columns to sort the results by",
	}
	NameSpacedValueChainFromConfigFile(ns, sortFlag.Name, &sortFlag.Sources)

	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to rows",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
		},
		sortFlag,
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewLimitFlag constructs the diff --limit flag, settable from the
// environment or the diff.limit config key.
func NewLimitFlag() *cli.IntFlag {
	flag := &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"l"},
		Usage:   "clusters listed per side of a difference report (0 lists all)",
		Value:   differ.DefaultLimit,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CLSTRCTL_DIFF_LIMIT"),
		),
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
	NameSpacedValueChainFromConfigFile("diff", flag.Name, &flag.Sources)
	return flag
}

// NewUnitFlag constructs the rewrite --unit flag, settable from the
// rewrite.unit config key.
func NewUnitFlag() *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "unit",
		Aliases: []string{"u"},
		Usage:   "length unit written after each member (nt, aa, none)",
		Value:   clstr.UnitNucleotide.String(),
		Validator: func(value string) error {
			return FlagValidators(value, UnitValidator)
		},
	}
	NameSpacedValueChainFromConfigFile("rewrite", flag.Name, &flag.Sources)
	return flag
}

// NameSpacedValueChainFromConfigFile appends the namespaced and then the
// bare config file key for name to chain. It does nothing when no config
// file was loaded.
func NameSpacedValueChainFromConfigFile(ns string, name string, chain *cli.ValueSourceChain) {
	path := config.Config.Source
	if path == "" {
		return
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
}
