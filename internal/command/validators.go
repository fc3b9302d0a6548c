// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tfctl/clstrctl/clstr"
	"github.com/tfctl/clstrctl/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func UnitValidator(value any) error {
	s, _ := value.(string)
	_, err := clstr.ParseUnit(s)
	return err
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}
