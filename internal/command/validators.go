// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/output"
	"github.com/Snogren/testpadapi/internal/store"
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

// StoreFlagsValidator checks that the flags the chosen store needs are set.
func StoreFlagsValidator(_ context.Context, c *cli.Command) error {
	if c.String("store") == store.TypeS3 && c.String("bucket") == "" {
		return configErrorf("--bucket is required with --store %s", store.TypeS3)
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, output.Formats)
}

func StoreValidator(value any) error {
	return oneOf(value, []string{store.TypeLocal, store.TypeS3})
}

func oneOf(value any, valid []string) error {
	s, ok := value.(string)
	if !ok || !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
